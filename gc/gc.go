// Package gc implements the garbage collector thread pool: requests queued
// by worker threads noticing an allocation threshold was exceeded, and
// drained by dedicated GC goroutines that suspend, collect, and reschedule
// the affected process (spec.md §4.9).
package gc

import (
	"sync"

	"github.com/aeon-lang/aeonvm/process"
	"github.com/aeon-lang/aeonvm/scheduler"
)

// Request asks the collector to run a single generation's collection for
// one process, then hand it back to the worker it came from.
type Request struct {
	Generation   process.Generation
	OriginWorker *scheduler.Worker
	Proc         *process.Process
}

// Thread is a dedicated GC worker: it owns no processes of its own, only a
// queue of collection requests fed by the VM's worker pool.
type Thread struct {
	queue    chan Request
	stop     chan struct{}
	stopOnce sync.Once
}

// New returns a Thread with the given request queue depth.
func New(queueDepth int) *Thread {
	return &Thread{
		queue: make(chan Request, queueDepth),
		stop:  make(chan struct{}),
	}
}

// Schedule enqueues req. Blocks if the queue is full — applying backpressure
// to whichever worker noticed the threshold, which is already idle-ish
// (it just finished an instruction slice) and can afford to wait.
func (t *Thread) Schedule(req Request) {
	select {
	case t.queue <- req:
	case <-t.stop:
	}
}

// Stop signals the thread's Run loop to exit once its current request (if
// any) finishes. Safe to call more than once.
func (t *Thread) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
}

// Run drains the request queue until Stop is called. For each request it
// suspends the target process, runs the requested generation's collection,
// resets the process's status, and reschedules it onto the worker it came
// from.
func (t *Thread) Run() {
	for {
		select {
		case req := <-t.queue:
			t.collect(req)
		case <-t.stop:
			return
		}
	}
}

func (t *Thread) collect(req Request) {
	req.Proc.RequestGCSuspension()
	if !req.Proc.SuspendedByGc() {
		req.Proc.SuspendForGC()
	}

	switch req.Generation {
	case process.Young:
		req.Proc.CollectYoung()
	case process.Mature:
		req.Proc.CollectMature()
	}

	req.Proc.ResetStatus()
	req.OriginWorker.Schedule(req.Proc)
}
