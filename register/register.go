// Package register implements the sparse numbered working set an
// ExecutionContext uses to hold intermediate values during one activation.
package register

import (
	"strconv"

	"github.com/aeon-lang/aeonvm/object"
)

// Register is a grow-on-write mapping from small integer indices to
// object.Pointer. Unlike a Binding local, reading an index that was grown
// over but never explicitly set is an error: registers model the
// interpreter's working set, where reading an unset register indicates a
// bytecode bug, not a legitimate "null" value.
type Register struct {
	slots []object.Pointer
	set   []bool
}

// New returns an empty Register.
func New() Register {
	return Register{}
}

// Get reads register index. Reading an index beyond the current length, or
// one that was grown over but never set, is an error.
func (r *Register) Get(index int) (object.Pointer, error) {
	if index < 0 || index >= len(r.slots) || !r.set[index] {
		return object.Pointer{}, &UndefinedRegisterError{Index: index}
	}
	return r.slots[index], nil
}

// Set writes register index, growing the backing slices if necessary.
// Slots skipped over by the growth are left unset.
func (r *Register) Set(index int, value object.Pointer) {
	if index >= len(r.slots) {
		grownSlots := make([]object.Pointer, index+1)
		grownSet := make([]bool, index+1)
		copy(grownSlots, r.slots)
		copy(grownSet, r.set)
		r.slots = grownSlots
		r.set = grownSet
	}
	r.slots[index] = value
	r.set[index] = true
}

// PushPointers appends a slot handle for every set register.
func (r *Register) PushPointers(out *[]object.PointerPointer) {
	for i := range r.slots {
		if r.set[i] {
			*out = append(*out, object.NewPointerPointer(&r.slots[i]))
		}
	}
}

// UndefinedRegisterError is returned by Get for an index that was never
// set.
type UndefinedRegisterError struct {
	Index int
}

func (e *UndefinedRegisterError) Error() string {
	return "undefined object in register " + strconv.Itoa(e.Index)
}
