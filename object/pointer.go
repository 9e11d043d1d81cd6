package object

// Pointer is a tagged heap address: a plain value type, cheap to copy, with
// equality defined by address. Dereferencing follows forwarding set up by
// the collector during evacuation.
type Pointer struct {
	raw *Object
	tag Kind
}

// Null is the zero Pointer; it addresses nothing.
var Null = Pointer{}

// New wraps raw as a pointer of the given generation.
func New(raw *Object, tag Kind) Pointer {
	return Pointer{raw: raw, tag: tag}
}

// IsNull reports whether p addresses nothing.
func (p Pointer) IsNull() bool {
	return p.raw == nil
}

// IsPermanent reports whether p was allocated on the permanent heap.
func (p Pointer) IsPermanent() bool {
	return p.tag == Permanent
}

// IsYoung reports whether p was allocated in a young generation.
func (p Pointer) IsYoung() bool {
	return p.tag == Young
}

// IsMature reports whether p has been promoted to a mature generation.
func (p Pointer) IsMature() bool {
	return p.tag == Mature
}

// IsLocal reports whether p is tagged young or mature, as opposed to
// permanent. Objects in a mailbox heap are tagged young, so they count as
// local too.
func (p Pointer) IsLocal() bool {
	return p.tag == Young || p.tag == Mature
}

// Kind returns the pointer's generation tag.
func (p Pointer) Kind() Kind {
	return p.tag
}

// Get dereferences p, following at most one forwarding indirection (an
// evacuated object's forward pointer is never itself forwarded, since
// evacuation completes a slot's rewrite before moving on).
func (p Pointer) Get() *Object {
	if p.raw == nil {
		return nil
	}
	if fwd, ok := p.raw.Forwarded(); ok {
		return fwd
	}
	return p.raw
}

// RawObject returns the object p addresses without following forwarding.
// It exists for the collector, which needs the pre-move identity of an
// object to key its seen-set during evacuation; ordinary callers should
// use Get instead.
func (p Pointer) RawObject() *Object {
	return p.raw
}

// Retag returns a copy of p classified under a new Kind, used when an
// object is promoted or evacuated into a different generation.
func (p Pointer) Retag(tag Kind) Pointer {
	return Pointer{raw: p.raw, tag: tag}
}

// Equal compares two pointers by address; forwarding is not followed, since
// two live pointers to the same (possibly-forwarded) object still compare
// equal by raw identity before evacuation rewrites them.
func (p Pointer) Equal(other Pointer) bool {
	return p.raw == other.raw
}

// PointerPointer identifies a *slot* holding a Pointer — a Binding local, a
// Register entry, or a Binding's self field — so the collector can rewrite
// the slot in place after copying the object it addresses.
type PointerPointer struct {
	slot *Pointer
}

// NewPointerPointer wraps a slot.
func NewPointerPointer(slot *Pointer) PointerPointer {
	return PointerPointer{slot: slot}
}

// Get reads the current value of the slot.
func (pp PointerPointer) Get() Pointer {
	return *pp.slot
}

// Set rewrites the slot, e.g. to the forwarding address a collector copied
// the object to.
func (pp PointerPointer) Set(p Pointer) {
	*pp.slot = p
}
