package heap

import "github.com/aeon-lang/aeonvm/object"

// BlockObjects is the number of object slots carved out of one block. Real
// Immix blocks bump-allocate over raw bytes; since this runtime's payload
// is always one object.Object, a block here is simply a fixed-capacity
// object pool with a bump cursor, which preserves the allocator's
// contract (fast bump path, block-granularity age tracking, block-at-a-time
// promotion) without modeling byte-level line marking, which is explicitly
// out of this repository's scope (spec.md §1).
const BlockObjects = 128

// block is one fixed-size allocation unit. Objects are bump-allocated from
// free until it reaches len(slots); age counts the young collections this
// block has survived, used to decide when its survivors should be
// promoted to the mature generation.
type block struct {
	slots [BlockObjects]object.Object
	free  int
	age   int
}

func newBlock() *block {
	return &block{}
}

// full reports whether the block has no remaining bump-allocation room.
func (b *block) full() bool {
	return b.free >= BlockObjects
}

// bumpAllocate reserves the next slot in the block and returns a pointer to
// it. Callers must have checked full() first.
func (b *block) bumpAllocate() *object.Object {
	slot := &b.slots[b.free]
	*slot = object.Object{}
	b.free++
	return slot
}

// reset clears the block for reuse, dropping all objects it held. Called
// once a block's contents have been fully evacuated elsewhere.
func (b *block) reset() {
	b.free = 0
	b.age = 0
	for i := range b.slots {
		b.slots[i] = object.Object{}
	}
}
