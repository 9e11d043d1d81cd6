package heap

import "github.com/aeon-lang/aeonvm/object"

// Bucket is one generation's worth of blocks: the blocks currently owned by
// this allocator and a cursor to the one currently being bump-allocated
// from. Grounded on the teacher's `mspan` bookkeeping in mheap.go,
// generalized here to "a generation is a list of blocks".
type Bucket struct {
	global *GlobalAllocator
	blocks []*block
	kind   object.Kind
}

func newBucket(global *GlobalAllocator, kind object.Kind) *Bucket {
	return &Bucket{global: global, kind: kind}
}

// allocate bump-allocates one object slot, requesting a fresh block from
// the global allocator when the current one is full.
func (bk *Bucket) allocate() object.Pointer {
	if len(bk.blocks) == 0 || bk.blocks[len(bk.blocks)-1].full() {
		bk.blocks = append(bk.blocks, bk.global.requestBlock())
	}

	current := bk.blocks[len(bk.blocks)-1]
	return object.New(current.bumpAllocate(), bk.kind)
}

// BlockCount reports how many blocks this bucket currently owns.
func (bk *Bucket) BlockCount() int {
	return len(bk.blocks)
}

// thresholdExceeded reports whether this bucket owns at least threshold
// blocks, the signal the process uses to decide whether to schedule a
// collection.
func (bk *Bucket) thresholdExceeded(threshold int) bool {
	return len(bk.blocks) >= threshold
}

// incrementAges ages every block this bucket owns by one young collection
// survived. Called once per young collection cycle, on the young bucket
// only.
func (bk *Bucket) incrementAges() {
	for _, b := range bk.blocks {
		b.age++
	}
}

// takeBlocks detaches every block this bucket owns, leaving it empty, and
// returns them for a collector to walk. Used only during evacuation: the
// bucket is repopulated by allocate() calls as survivors are copied back
// in.
func (bk *Bucket) takeBlocks() []*block {
	taken := bk.blocks
	bk.blocks = nil
	return taken
}

// releaseBlocks resets and returns drained blocks to the global allocator.
func (bk *Bucket) releaseBlocks(blocks []*block) {
	for _, b := range blocks {
		bk.global.releaseBlock(b)
	}
}
