package process

import "github.com/aeon-lang/aeonvm/object"

// SendMessage deep-copies msg into the receiver's mailbox heap and pushes
// the copy onto its mailbox queue. Copying happens here, on the sender's
// goroutine, against the receiver's mailbox allocator — a process's
// mailbox allocator is guarded by its own mutex precisely because any
// number of other processes' workers call SendMessage concurrently, none
// of which may touch the receiver's local (non-mailbox) heap.
func (p *Process) SendMessage(msg object.Pointer) {
	p.mailboxAllocMu.Lock()
	copied := p.mailboxAllocator.CopyObject(msg)
	p.mailboxAllocMu.Unlock()

	p.Mailbox.Push(copied)
}

// ReceiveMessage pops the oldest pending message, if any, and deep-copies
// it into the process's own young generation so it participates in that
// process's collection cycle like any other object it allocated.
func (p *Process) ReceiveMessage() (object.Pointer, bool) {
	msg, ok := p.Mailbox.PopNonblock()
	if !ok {
		return object.Pointer{}, false
	}
	return p.local.YoungGeneration().CopyObject(msg), true
}

// HasPendingMessage reports whether a message is waiting without consuming
// it.
func (p *Process) HasPendingMessage() bool {
	return p.Mailbox.Len() > 0
}
