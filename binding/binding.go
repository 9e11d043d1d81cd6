// Package binding implements the lexical environment an ExecutionContext
// evaluates in: a dense, grow-on-write set of local slots, a self pointer,
// and an optional parent binding for lexical capture.
package binding

import (
	"strconv"

	"github.com/aeon-lang/aeonvm/object"
)

// Binding is an environment: locals indexed by position, self, and an
// optional parent lexical scope. Once created, a local slot's index never
// changes; growing the slice only appends, never moves existing entries.
type Binding struct {
	locals []object.Pointer
	self   object.Pointer
	parent *Binding
}

// New returns a Binding with no parent, rooted at self.
func New(self object.Pointer) *Binding {
	return &Binding{self: self}
}

// WithParent returns a Binding rooted at self with the given lexical
// parent.
func WithParent(self object.Pointer, parent *Binding) *Binding {
	return &Binding{self: self, parent: parent}
}

// Self returns the binding's self object.
func (b *Binding) Self() object.Pointer {
	return b.self
}

// Parent returns the lexical parent binding, or nil if there is none.
func (b *Binding) Parent() *Binding {
	return b.parent
}

// LocalExists reports whether index lies inside the slot table: it has
// been written, or a write to a higher index grew the table over it.
func (b *Binding) LocalExists(index int) bool {
	return index >= 0 && index < len(b.locals)
}

// GetLocal reads local index. Reading an index beyond the slot table is an
// error; a slot that was grown over but never written reads as the zero
// Pointer.
func (b *Binding) GetLocal(index int) (object.Pointer, error) {
	if !b.LocalExists(index) {
		return object.Pointer{}, &UndefinedLocalError{Index: index}
	}
	return b.locals[index], nil
}

// SetLocal writes local index, growing the slot table if necessary.
// Newly-created intermediate slots are left as the zero Pointer, which is
// itself a valid (null) value rather than "undefined" — LocalExists
// becomes true for them as soon as the table grows to cover them, matching
// the teacher's convention that a grown register slot, not a local slot,
// is the one that tracks explicit "unset" state (see register.Register).
func (b *Binding) SetLocal(index int, value object.Pointer) {
	if index >= len(b.locals) {
		grown := make([]object.Pointer, index+1)
		copy(grown, b.locals)
		b.locals = grown
	}
	b.locals[index] = value
}

// PushPointers appends a slot handle for self and for every local in this
// binding, then recurses into the parent chain exactly once. No
// deduplication happens across calls: process.Process.Roots calls it once
// per context, so a Binding shared as the lexical parent of several
// contexts is walked once for each of them.
func (b *Binding) PushPointers(out *[]object.PointerPointer) {
	*out = append(*out, object.NewPointerPointer(&b.self))

	for i := range b.locals {
		*out = append(*out, object.NewPointerPointer(&b.locals[i]))
	}

	if b.parent != nil {
		b.parent.PushPointers(out)
	}
}

// UndefinedLocalError is returned by GetLocal for an index beyond the slot
// table.
type UndefinedLocalError struct {
	Index int
}

func (e *UndefinedLocalError) Error() string {
	return "undefined object in local " + strconv.Itoa(e.Index)
}
