// Package scheduler implements the worker pool that runs processes:
// a LIFO run queue per worker, a wake/sleep condvar handshake, and a
// cooperative stop signal (spec.md §4.8).
package scheduler

import (
	"sync"

	"github.com/aeon-lang/aeonvm/process"
)

// Worker owns one run queue of processes and the goroutine that drains it.
// Popping from the tail (LIFO) rather than the head favors whichever
// process most recently became runnable, which tends to still have warm
// young-generation blocks — the same cache-locality argument the teacher's
// own scheduler makes with its per-P "runnext" slot.
type Worker struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []*process.Process
	wakeUp  bool
	stop    bool

	isolated bool
}

// New returns an idle Worker with an empty run queue.
func New() *Worker {
	w := &Worker{}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// NewIsolated returns a Worker reserved for processes that must not share a
// run queue with the general pool (e.g. a process pinned for a blocking
// FFI call).
func NewIsolated() *Worker {
	w := New()
	w.isolated = true
	return w
}

// IsIsolated reports whether this worker is reserved for pinned processes.
func (w *Worker) IsIsolated() bool {
	return w.isolated
}

// QueueSize reports how many processes are currently queued.
func (w *Worker) QueueSize() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.queue)
}

// Schedule appends p to the run queue and wakes the worker if it is
// parked in WaitForWork.
func (w *Worker) Schedule(p *process.Process) {
	w.mu.Lock()
	w.queue = append(w.queue, p)
	w.wakeUp = true
	w.mu.Unlock()

	w.cond.Broadcast()
}

// WaitForWork blocks until the queue is non-empty or Stop has been called.
func (w *Worker) WaitForWork() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stop {
		return
	}
	if len(w.queue) > 0 {
		return
	}

	for !w.wakeUp {
		w.cond.Wait()
	}
}

// PopProcess removes and returns the most recently scheduled process, or
// (nil, false) if the queue is empty.
func (w *Worker) PopProcess() (*process.Process, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.wakeUp = false

	n := len(w.queue)
	if n == 0 {
		return nil, false
	}

	p := w.queue[n-1]
	w.queue[n-1] = nil
	w.queue = w.queue[:n-1]
	return p, true
}

// ShouldStop reports whether Stop has been called.
func (w *Worker) ShouldStop() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stop
}

// Stop signals the worker to exit its run loop once it next checks
// ShouldStop, waking it immediately if it is parked in WaitForWork.
func (w *Worker) Stop() {
	w.mu.Lock()
	w.stop = true
	w.wakeUp = true
	w.mu.Unlock()

	w.cond.Broadcast()
}
