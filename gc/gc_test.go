package gc_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeon-lang/aeonvm/code"
	"github.com/aeon-lang/aeonvm/gc"
	"github.com/aeon-lang/aeonvm/heap"
	"github.com/aeon-lang/aeonvm/object"
	"github.com/aeon-lang/aeonvm/process"
	"github.com/aeon-lang/aeonvm/scheduler"
)

func newProcess() *process.Process {
	global := heap.NewGlobalAllocator()
	self := object.New(object.NewEmpty(), object.Permanent)
	c := &code.Object{Name: "test"}
	return process.New(1, self, c, global, process.Config{
		YoungBlockThreshold:  2,
		MatureBlockThreshold: 2,
		PromotionAge:         6,
	})
}

func TestCollectSuspendedProcessAndReschedules(t *testing.T) {
	proc := newProcess()
	proc.Suspend()

	worker := scheduler.New()
	thread := gc.New(1)

	go thread.Run()
	defer thread.Stop()

	thread.Schedule(gc.Request{Generation: process.Young, OriginWorker: worker, Proc: proc})

	require.Eventually(t, func() bool {
		return worker.QueueSize() == 1
	}, time.Second, 5*time.Millisecond)

	got, ok := worker.PopProcess()
	require.True(t, ok)
	assert.Equal(t, proc.Pid, got.Pid)
	assert.Equal(t, process.Scheduled, proc.Status())
}

func TestCollectRunningProcessWaitsForSafePoint(t *testing.T) {
	proc := newProcess()
	proc.Running()

	worker := scheduler.New()
	thread := gc.New(1)

	go thread.Run()
	defer thread.Stop()

	thread.Schedule(gc.Request{Generation: process.Young, OriginWorker: worker, Proc: proc})

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, process.Running, proc.Status())
	assert.True(t, proc.ShouldSuspendForGC())

	proc.Suspend()

	require.Eventually(t, func() bool {
		return worker.QueueSize() == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, process.Scheduled, proc.Status())
}
