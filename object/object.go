// Package object defines the heap value addressed by every pointer in the
// runtime: a tagged object header plus a closed set of primitive payloads.
package object

// Kind classifies the generation an Object's backing block belongs to.
// Classification is a property of the block, not of the Object itself, but
// it is cached on the Pointer so the collector can branch on it in O(1)
// without dereferencing.
type Kind uint8

const (
	// Permanent objects live on the process-wide permanent heap and are
	// never collected.
	Permanent Kind = iota
	// Young objects live in a process's young generation.
	Young
	// Mature objects have survived enough young collections to be
	// promoted into the mature generation.
	Mature
)

func (k Kind) String() string {
	switch k {
	case Permanent:
		return "permanent"
	case Young:
		return "young"
	case Mature:
		return "mature"
	default:
		return "unknown"
	}
}

// ValueKind tags the closed set of primitive payloads an Object may carry.
type ValueKind uint8

const (
	NoValue ValueKind = iota
	IntegerValue
	FloatValue
	StringValue
	ArrayValue
	CompiledCodeValue
)

// Value is the object's primitive payload, modeled as a tagged union
// collapsed onto a single field rather than a Go interface: the set of
// primitives is closed and extended only by adding a new ValueKind and
// teaching the interpreter's dispatch about it, never by adding a new
// dynamic implementation.
type Value struct {
	Kind    ValueKind
	Integer int64
	Float   float64
	String  string
	Array   []Pointer
	Code    interface{} // holds *code.Object; untyped here to avoid an import cycle
}

// Object is the thing a Pointer addresses.
type Object struct {
	Prototype  Pointer
	Attributes map[string]Pointer
	Value      Value

	// forward is set during evacuation: once non-nil, this Object has
	// been copied elsewhere and every access should follow it.
	forward *Object
}

// NewEmpty returns an Object with no prototype, attributes, or value.
func NewEmpty() *Object {
	return &Object{}
}

// NewWithPrototype returns an Object carrying value and rooted at proto.
func NewWithPrototype(value Value, proto Pointer) *Object {
	return &Object{Prototype: proto, Value: value}
}

// Attribute looks up a named attribute, returning the zero Pointer and
// false if it is unset or no attribute map has been allocated yet.
func (o *Object) Attribute(name string) (Pointer, bool) {
	if o.Attributes == nil {
		return Pointer{}, false
	}
	p, ok := o.Attributes[name]
	return p, ok
}

// SetAttribute assigns a named attribute, allocating the attribute map on
// first write.
func (o *Object) SetAttribute(name string, value Pointer) {
	if o.Attributes == nil {
		o.Attributes = make(map[string]Pointer)
	}
	o.Attributes[name] = value
}

// Forward marks o as having been evacuated to dst. Every subsequent
// dereference of a Pointer to o must resolve to dst instead.
func (o *Object) Forward(dst *Object) {
	o.forward = dst
}

// Forwarded reports whether o has been evacuated, and to where.
func (o *Object) Forwarded() (*Object, bool) {
	if o.forward == nil {
		return nil, false
	}
	return o.forward, true
}
