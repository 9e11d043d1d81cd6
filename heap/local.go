package heap

import "github.com/aeon-lang/aeonvm/object"

// Default thresholds, expressed in blocks owned by a generation. Chosen to
// be small enough that tests can trip a collection deterministically
// without allocating thousands of objects.
const (
	DefaultYoungBlockThreshold  = 8
	DefaultMatureBlockThreshold = 32
	DefaultPromotionAge         = 6
)

// LocalAllocator is a process's private heap: a young generation and a
// mature generation, both backed by the same GlobalAllocator.
type LocalAllocator struct {
	young  *Bucket
	mature *Bucket

	youngThreshold  int
	matureThreshold int
	promotionAge    int
}

// NewLocalAllocator returns a LocalAllocator pulling blocks from global,
// using the given thresholds.
func NewLocalAllocator(global *GlobalAllocator, youngThreshold, matureThreshold, promotionAge int) *LocalAllocator {
	return &LocalAllocator{
		young:           newBucket(global, object.Young),
		mature:          newBucket(global, object.Mature),
		youngThreshold:  youngThreshold,
		matureThreshold: matureThreshold,
		promotionAge:    promotionAge,
	}
}

// AllocateEmpty allocates a bare object with no prototype or value in the
// young generation.
func (l *LocalAllocator) AllocateEmpty() object.Pointer {
	return l.young.allocate()
}

// AllocateWithPrototype allocates value rooted at proto in the young
// generation.
func (l *LocalAllocator) AllocateWithPrototype(value object.Value, proto object.Pointer) object.Pointer {
	p := l.young.allocate()
	*p.Get() = *object.NewWithPrototype(value, proto)
	return p
}

// YoungExceeded reports whether the young generation has grown past its
// allocation threshold and should be collected.
func (l *LocalAllocator) YoungExceeded() bool {
	return l.young.thresholdExceeded(l.youngThreshold)
}

// MatureExceeded reports whether the mature generation has grown past its
// allocation threshold and should be collected.
func (l *LocalAllocator) MatureExceeded() bool {
	return l.mature.thresholdExceeded(l.matureThreshold)
}

// IncrementYoungAges ages every block in the young generation by one
// survived collection. The garbage collector calls this once per young
// collection cycle before deciding what gets promoted.
func (l *LocalAllocator) IncrementYoungAges() {
	l.young.incrementAges()
}

// MatureGeneration returns the mature bucket, the collector's iteration
// target for a mature collection.
func (l *LocalAllocator) MatureGeneration() *Bucket {
	return l.mature
}

// YoungGeneration returns the young bucket, the collector's iteration
// target for a young collection.
func (l *LocalAllocator) YoungGeneration() *Bucket {
	return l.young
}

// PromotionAge returns the block-age threshold at which a young object's
// block promotes its survivors into the mature generation.
func (l *LocalAllocator) PromotionAge() int {
	return l.promotionAge
}
