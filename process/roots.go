package process

import (
	"golang.org/x/sync/errgroup"

	"github.com/aeon-lang/aeonvm/execctx"
	"github.com/aeon-lang/aeonvm/object"
)

// Roots collects every slot handle reachable from the process's call
// stack: each context's register file and the full lexical parent chain of
// each context's binding. Contexts that share a lexical parent each
// re-walk it (see binding.Binding.PushPointers), so the same Binding can
// appear more than once in the result — harmless, since rewriting a root
// slot twice to the same already-forwarded pointer is a no-op.
//
// Contexts are independent units of work, so they are fanned out and
// joined with an errgroup rather than walked serially; none of the
// per-context work can fail, but errgroup.Group gives a ready-made
// WaitGroup-with-first-error shape that matches how the rest of this
// codebase fans work out and joins it.
func (p *Process) Roots() []object.PointerPointer {
	var chain []*execctx.ExecutionContext
	p.context.Contexts(func(c *execctx.ExecutionContext) bool {
		chain = append(chain, c)
		return true
	})

	results := make([][]object.PointerPointer, len(chain))

	var g errgroup.Group
	for i, ctx := range chain {
		i, ctx := i, ctx
		g.Go(func() error {
			var out []object.PointerPointer
			ctx.Register.PushPointers(&out)
			ctx.Binding.PushPointers(&out)
			results[i] = out
			return nil
		})
	}
	_ = g.Wait()

	var all []object.PointerPointer
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}
