package heap

import "github.com/aeon-lang/aeonvm/object"

// PermanentAllocator is the process-wide heap for globals and long-lived
// prototypes. It is never collected: deliberately, it has no Collect
// method at all, rather than an empty one — the absence of the method is
// the invariant, not a runtime check.
type PermanentAllocator struct {
	bucket *Bucket
}

// NewPermanentAllocator returns a PermanentAllocator pulling blocks from
// global.
func NewPermanentAllocator(global *GlobalAllocator) *PermanentAllocator {
	return &PermanentAllocator{bucket: newBucket(global, object.Permanent)}
}

// AllocateEmpty allocates a bare permanent object.
func (p *PermanentAllocator) AllocateEmpty() object.Pointer {
	return p.bucket.allocate()
}

// AllocateWithPrototype allocates a permanent object carrying value, rooted
// at proto.
func (p *PermanentAllocator) AllocateWithPrototype(value object.Value, proto object.Pointer) object.Pointer {
	ptr := p.bucket.allocate()
	*ptr.Get() = *object.NewWithPrototype(value, proto)
	return ptr
}
