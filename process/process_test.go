package process_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeon-lang/aeonvm/code"
	"github.com/aeon-lang/aeonvm/execctx"
	"github.com/aeon-lang/aeonvm/heap"
	"github.com/aeon-lang/aeonvm/object"
	"github.com/aeon-lang/aeonvm/process"
)

func permanentPointer() object.Pointer {
	return object.New(object.NewEmpty(), object.Permanent)
}

func newTestProcess() *process.Process {
	global := heap.NewGlobalAllocator()
	c := &code.Object{Name: "test", File: "test.aeon"}
	return process.New(1, permanentPointer(), c, global, process.Config{
		YoungBlockThreshold:  8,
		MatureBlockThreshold: 8,
		PromotionAge:         6,
	})
}

// S4: a freshly constructed process's root set contains exactly its
// top-level context's self slot (no locals or registers written yet).
func TestRootsCountAtTopLevel(t *testing.T) {
	p := newTestProcess()

	roots := p.Roots()
	require.Len(t, roots, 1)
}

// S5: a mutation made through a root slot handle is visible through the
// process's own accessors — the handle really does alias the live slot.
func TestRootsMutationVisible(t *testing.T) {
	p := newTestProcess()

	original := permanentPointer()
	p.SetRegister(0, original)

	roots := p.Roots()

	replacement := permanentPointer()
	for _, r := range roots {
		if r.Get().Equal(original) {
			r.Set(replacement)
		}
	}

	got, err := p.GetRegister(0)
	require.NoError(t, err)
	assert.True(t, got.Equal(replacement))
}

// S6: a GC suspension request against a Running process blocks the
// requester until the owning worker's next safe point honors it — the
// worker's reported status is overridden to SuspendedByGc rather than
// whatever it intended to report.
func TestStatusHandshake(t *testing.T) {
	p := newTestProcess()
	p.Running()

	done := make(chan struct{})
	go func() {
		p.RequestGCSuspension()
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("RequestGCSuspension returned before the process reached a safe point")
	default:
	}
	assert.True(t, p.ShouldSuspendForGC())

	p.Finish()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RequestGCSuspension never unblocked")
	}

	assert.Equal(t, process.SuspendedByGc, p.Status())
}

// A suspension request against an already-idle process returns
// immediately, since there is no running worker to reach a safe point —
// but it does not itself force the transition to SuspendedByGc; that is
// left to the GC thread calling SuspendForGC once it starts collecting.
func TestRequestGCSuspensionImmediateWhenIdle(t *testing.T) {
	p := newTestProcess()
	p.Suspend()

	done := make(chan struct{})
	go func() {
		p.RequestGCSuspension()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RequestGCSuspension blocked on an idle process")
	}
	assert.Equal(t, process.Suspended, p.Status())
}

// Once a process is already SuspendedByGc, further status reports are
// dropped entirely: only the GC (via ResetStatus) may move it from there.
func TestFinishDroppedUnderGCSuspension(t *testing.T) {
	p := newTestProcess()
	p.SuspendForGC()

	p.Finish()
	assert.Equal(t, process.SuspendedByGc, p.Status())
}

// S7: a message sent to a process is a deep, independent copy — mutating
// the sender's original after sending does not affect what the receiver
// gets.
func TestSendMessageCopiesIndependently(t *testing.T) {
	p := newTestProcess()

	inner := p.Allocate(object.Value{Kind: object.IntegerValue, Integer: 7}, object.Pointer{})
	msg := p.Allocate(object.Value{Kind: object.NoValue}, object.Pointer{})
	msg.Get().SetAttribute("inner", inner)

	p.SendMessage(msg)

	inner.Get().Value = object.Value{Kind: object.IntegerValue, Integer: 99}

	received, ok := p.ReceiveMessage()
	require.True(t, ok)

	gotInner, ok := received.Get().Attribute("inner")
	require.True(t, ok)
	assert.EqualValues(t, 7, gotInner.Get().Value.Integer)
}

func TestReceiveMessageEmptyMailbox(t *testing.T) {
	p := newTestProcess()
	_, ok := p.ReceiveMessage()
	assert.False(t, ok)
}

// The write barrier only remembers mature-to-young writes; same-generation
// and permanent targets are not recorded.
func TestWriteBarrierOnlyRemembersMatureToYoung(t *testing.T) {
	p := newTestProcess()

	young := p.AllocateEmpty()
	mature := object.New(object.NewEmpty(), object.Mature)
	permanent := permanentPointer()

	p.WriteBarrier(mature, young)
	assert.Len(t, p.RememberedSet(), 1)

	p.WriteBarrier(young, young)
	p.WriteBarrier(permanent, young)
	p.WriteBarrier(mature, mature)
	assert.Len(t, p.RememberedSet(), 1)
}

func TestPushAndPopContext(t *testing.T) {
	p := newTestProcess()
	assert.True(t, p.AtTopLevel())

	c := &code.Object{Name: "nested"}
	nested := execctx.WithBinding(p.Binding(), c, execctx.NoReturnRegister)

	p.PushContext(nested)
	assert.False(t, p.AtTopLevel())

	p.PopContext()
	assert.True(t, p.AtTopLevel())
}

func TestConcurrentSendersPreserveMailboxSafety(t *testing.T) {
	p := newTestProcess()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.SendMessage(permanentPointer())
		}()
	}
	wg.Wait()

	assert.Equal(t, 16, p.Mailbox.Len())
}
