// Package heap implements the Immix-style generational heaps described in
// spec.md §3/§4.2: a thread-safe global block pool backing per-process
// young/mature/permanent/mailbox allocators, bump allocation within a
// block, block age tracking, and copy-forwarding evacuation.
package heap

import "sync"

// GlobalAllocator is the process-wide, thread-safe free list of blocks that
// every per-process allocator pulls from and returns to. Grounded on the
// teacher's mheap.go central free list and mfixalloc.go fixed-size
// allocator: one lock guards a simple free list, and a block that can't be
// satisfied from the free list is constructed fresh rather than grown in
// place.
type GlobalAllocator struct {
	mu   sync.Mutex
	free []*block
}

// NewGlobalAllocator returns an empty pool.
func NewGlobalAllocator() *GlobalAllocator {
	return &GlobalAllocator{}
}

// requestBlock pops a recycled block off the free list, or constructs a new
// one if the free list is empty.
func (g *GlobalAllocator) requestBlock() *block {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := len(g.free)
	if n == 0 {
		return newBlock()
	}

	b := g.free[n-1]
	g.free[n-1] = nil
	g.free = g.free[:n-1]
	return b
}

// releaseBlock resets a fully-evacuated block and returns it to the free
// list for reuse by any process.
func (g *GlobalAllocator) releaseBlock(b *block) {
	b.reset()

	g.mu.Lock()
	g.free = append(g.free, b)
	g.mu.Unlock()
}

// FreeBlockCount reports how many blocks currently sit on the free list.
// Exposed for metrics/diagnostics only.
func (g *GlobalAllocator) FreeBlockCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.free)
}
