// Package execctx implements one activation record in a process's call
// stack: a register file, a shared binding, a compiled-code handle, the
// resume point, and a link to the caller's context.
package execctx

import (
	"github.com/aeon-lang/aeonvm/binding"
	"github.com/aeon-lang/aeonvm/code"
	"github.com/aeon-lang/aeonvm/object"
	"github.com/aeon-lang/aeonvm/register"
)

// NoReturnRegister marks a context whose result is discarded by the
// caller — used in place of an Option<usize> wrapper, since it is the
// common case in the hottest struct in the interpreter's inner loop.
const NoReturnRegister = -1

// ExecutionContext is one activation: its own Register, a shared Binding
// (self + lexical locals), a handle to the CompiledCode it runs, the
// instruction index to resume at, an optional return register, and an
// owning link to the parent context that called it.
type ExecutionContext struct {
	Register register.Register
	Binding  *binding.Binding
	Code     *code.Object

	Parent *ExecutionContext

	InstructionIndex int
	ReturnRegister   int
}

// New returns a context evaluating code in binding, with results deposited
// into returnRegister (NoReturnRegister if the caller discards them).
func New(b *binding.Binding, c *code.Object, returnRegister int) *ExecutionContext {
	return &ExecutionContext{
		Register:       register.New(),
		Binding:        b,
		Code:           c,
		ReturnRegister: returnRegister,
	}
}

// WithObject returns a fresh context whose binding is rooted at selfObj
// with no lexical parent.
func WithObject(selfObj object.Pointer, c *code.Object, returnRegister int) *ExecutionContext {
	return New(binding.New(selfObj), c, returnRegister)
}

// WithBinding returns a fresh context whose binding is lexically nested
// inside parentBinding, inheriting its self object.
func WithBinding(parentBinding *binding.Binding, c *code.Object, returnRegister int) *ExecutionContext {
	return New(binding.WithParent(parentBinding.Self(), parentBinding), c, returnRegister)
}

// SetParent installs parent as the context this one returns into.
func (ctx *ExecutionContext) SetParent(parent *ExecutionContext) {
	ctx.Parent = parent
}

// SelfObject returns the self pointer of this context's binding.
func (ctx *ExecutionContext) SelfObject() object.Pointer {
	return ctx.Binding.Self()
}

// GetRegister reads a register in this context.
func (ctx *ExecutionContext) GetRegister(index int) (object.Pointer, error) {
	return ctx.Register.Get(index)
}

// SetRegister writes a register in this context.
func (ctx *ExecutionContext) SetRegister(index int, value object.Pointer) {
	ctx.Register.Set(index, value)
}

// GetLocal reads a local in this context's binding.
func (ctx *ExecutionContext) GetLocal(index int) (object.Pointer, error) {
	return ctx.Binding.GetLocal(index)
}

// SetLocal writes a local in this context's binding.
func (ctx *ExecutionContext) SetLocal(index int, value object.Pointer) {
	ctx.Binding.SetLocal(index, value)
}

// FindParent returns the ancestor exactly depth hops up the parent chain.
// depth must be at least 1 — find_parent(0) has no meaning under this
// contract and returns (nil, false) rather than being reinterpreted as
// "this context" or "one hop up" (see the DESIGN.md note on this method).
func (ctx *ExecutionContext) FindParent(depth int) (*ExecutionContext, bool) {
	if depth < 1 {
		return nil, false
	}

	found := ctx.Parent

	for i := 0; i < depth-1; i++ {
		if found == nil {
			return nil, false
		}
		found = found.Parent
	}

	if found == nil {
		return nil, false
	}

	return found, true
}

// Contexts calls yield for this context and then each ancestor in turn,
// stopping early if yield returns false. It is the traversal
// process.Process.Roots uses to seed its root-scanning work queue.
func (ctx *ExecutionContext) Contexts(yield func(*ExecutionContext) bool) {
	for c := ctx; c != nil; c = c.Parent {
		if !yield(c) {
			return
		}
	}
}
