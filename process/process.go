// Package process implements the per-process runtime: the activation
// stack, generational heap ownership, status state machine, write barrier,
// and root-scanning protocol described in spec.md §4.7.
package process

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/aeon-lang/aeonvm/binding"
	"github.com/aeon-lang/aeonvm/code"
	"github.com/aeon-lang/aeonvm/execctx"
	"github.com/aeon-lang/aeonvm/heap"
	"github.com/aeon-lang/aeonvm/mailbox"
	"github.com/aeon-lang/aeonvm/object"
)

// Process is a lightweight actor: a stable pid, a status machine, a stack
// of ExecutionContexts, a private generational heap, a mailbox, and the
// bookkeeping the garbage collector needs (remembered set, suspend
// handshake flags).
//
// Only one worker goroutine ever mutates a Process's local fields (heap,
// context, remembered set) at a time — enforced by the status machine, not
// by a lock around those fields, the same discipline the teacher's
// original uses (an UnsafeCell guarded by the status condvar rather than
// its own mutex). status/gcState/suspendForGC live behind one mutex
// because they are the actual synchronization point between the owning
// worker and the garbage collector.
type Process struct {
	Pid uint64

	statusMu     sync.Mutex
	statusCond   *sync.Cond
	status       Status
	gcState      GCState
	suspendForGC bool

	Mailbox          *mailbox.Queue
	mailboxAllocMu   sync.Mutex
	mailboxAllocator *heap.MailboxAllocator

	local          *heap.LocalAllocator
	context        *execctx.ExecutionContext
	rememberedSet  mapset.Set[object.Pointer]
}

// New constructs a process running code, with its top-level context rooted
// at selfObj, pulling blocks from global.
func New(pid uint64, selfObj object.Pointer, c *code.Object, global *heap.GlobalAllocator, cfg Config) *Process {
	p := &Process{
		Pid:              pid,
		status:           Scheduled,
		Mailbox:          mailbox.New(),
		mailboxAllocator: heap.NewMailboxAllocator(global),
		local:            heap.NewLocalAllocator(global, cfg.YoungBlockThreshold, cfg.MatureBlockThreshold, cfg.PromotionAge),
		context:          execctx.WithObject(selfObj, c, execctx.NoReturnRegister),
		rememberedSet:    mapset.NewSet[object.Pointer](),
	}
	p.statusCond = sync.NewCond(&p.statusMu)
	return p
}

// Config bounds a process's generational heap.
type Config struct {
	YoungBlockThreshold  int
	MatureBlockThreshold int
	PromotionAge         int
}

// DefaultConfig returns the heap package's default thresholds.
func DefaultConfig() Config {
	return Config{
		YoungBlockThreshold:  heap.DefaultYoungBlockThreshold,
		MatureBlockThreshold: heap.DefaultMatureBlockThreshold,
		PromotionAge:         heap.DefaultPromotionAge,
	}
}

// Context returns the process's current (innermost) execution context.
func (p *Process) Context() *execctx.ExecutionContext {
	return p.context
}

// PushContext makes ctx the process's current context, with the previous
// current context as its parent.
func (p *Process) PushContext(ctx *execctx.ExecutionContext) {
	ctx.SetParent(p.context)
	p.context = ctx
}

// PopContext restores the parent of the current context as current. A
// no-op at the top-level context.
func (p *Process) PopContext() {
	if p.context.Parent == nil {
		return
	}
	p.context = p.context.Parent
}

// AtTopLevel reports whether the current context has no parent.
func (p *Process) AtTopLevel() bool {
	return p.context.Parent == nil
}

// SelfObject returns the self pointer of the current context's binding.
func (p *Process) SelfObject() object.Pointer {
	return p.context.SelfObject()
}

// Binding returns the current context's binding.
func (p *Process) Binding() *binding.Binding {
	return p.context.Binding
}

// GetRegister reads a register in the current context.
func (p *Process) GetRegister(index int) (object.Pointer, error) {
	return p.context.GetRegister(index)
}

// SetRegister writes a register in the current context.
func (p *Process) SetRegister(index int, value object.Pointer) {
	p.context.SetRegister(index, value)
}

// GetLocal reads a local in the current context's binding.
func (p *Process) GetLocal(index int) (object.Pointer, error) {
	return p.context.GetLocal(index)
}

// SetLocal writes a local in the current context's binding. It runs no
// write barrier: binding locals are slots reached through Roots() on every
// collection, not fields of an object. Stores into object fields go
// through WriteBarrier separately.
func (p *Process) SetLocal(index int, value object.Pointer) {
	p.context.SetLocal(index, value)
}

// AllocateEmpty allocates a bare young object.
func (p *Process) AllocateEmpty() object.Pointer {
	return p.local.AllocateEmpty()
}

// Allocate allocates a young object carrying value, rooted at proto.
func (p *Process) Allocate(value object.Value, proto object.Pointer) object.Pointer {
	return p.local.AllocateWithPrototype(value, proto)
}

// InstructionIndex returns the next instruction to execute in the current
// context.
func (p *Process) InstructionIndex() int {
	return p.context.InstructionIndex
}

// SetInstructionIndex sets the resume point in the current context.
func (p *Process) SetInstructionIndex(index int) {
	p.context.InstructionIndex = index
}

// CompiledCode returns the current context's code object.
func (p *Process) CompiledCode() *code.Object {
	return p.context.Code
}
