// Package mailbox implements the FIFO message queue between processes.
package mailbox

import (
	"container/list"
	"sync"

	"github.com/aeon-lang/aeonvm/object"
)

// Queue is an MPSC FIFO: any number of senders may Push concurrently, and
// exactly one consumer (the owning process) pops. Ordering is strictly
// FIFO across all producers, serialized by a single internal lock —
// container/list gives the plain doubly-linked-list body that lock
// protects, since a mailbox needs unbounded FIFO order and nothing else a
// ring buffer or channel's buffering would add.
type Queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	entries *list.List
}

// New returns an empty Queue.
func New() *Queue {
	q := &Queue{entries: list.New()}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push enqueues msg and signals the queue's condition variable once. Queue
// has no blocking pop of its own; PopNonblock never waits on it.
func (q *Queue) Push(msg object.Pointer) {
	q.mu.Lock()
	q.entries.PushBack(msg)
	q.mu.Unlock()

	q.cond.Signal()
}

// PopNonblock dequeues the oldest message, returning (pointer, true), or
// (zero, false) if the queue is empty.
func (q *Queue) PopNonblock() (object.Pointer, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	front := q.entries.Front()
	if front == nil {
		return object.Pointer{}, false
	}

	q.entries.Remove(front)
	return front.Value.(object.Pointer), true
}

// Len reports how many messages are currently queued.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.entries.Len()
}
