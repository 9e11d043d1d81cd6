package heap

import "github.com/aeon-lang/aeonvm/object"

// MailboxAllocator is the destination heap for messages copied from a
// sender's local heap. It implements the same copy_object contract as the
// local allocator, since a mailbox is just a bucket a message graph gets
// deep-copied into.
type MailboxAllocator struct {
	bucket *Bucket
}

// NewMailboxAllocator returns a MailboxAllocator pulling blocks from
// global. Messages copied into it are tagged Young — a mailbox object is
// not itself subject to generational promotion; the tag only needs to be
// distinguishable from Permanent so IsLocal() classification holds for any
// further copy (e.g. forwarding the message on to a third process). No
// collection releases this allocator's blocks: they stay owned by the
// mailbox heap after the receiver has copied a message out.
func NewMailboxAllocator(global *GlobalAllocator) *MailboxAllocator {
	return &MailboxAllocator{bucket: newBucket(global, object.Young)}
}

// CopyObject deep-copies src into this mailbox heap.
func (m *MailboxAllocator) CopyObject(src object.Pointer) object.Pointer {
	return m.bucket.CopyObject(src)
}
