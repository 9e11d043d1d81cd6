package vm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeon-lang/aeonvm/code"
	"github.com/aeon-lang/aeonvm/object"
	"github.com/aeon-lang/aeonvm/vm"
)

func testConfig() vm.Config {
	cfg := vm.DefaultConfig()
	cfg.Workers = 2
	cfg.GCWorkers = 1
	return cfg
}

func TestSpawnAssignsDistinctPids(t *testing.T) {
	s := vm.New(testConfig())
	defer s.Shutdown()

	c := &code.Object{Name: "a"}
	p1 := s.Spawn(c)
	p2 := s.Spawn(c)

	assert.NotEqual(t, p1.Pid, p2.Pid)

	got, ok := s.Process(p1.Pid)
	require.True(t, ok)
	assert.Equal(t, p1.Pid, got.Pid)
}

func TestSendToUnknownProcessErrors(t *testing.T) {
	s := vm.New(testConfig())
	defer s.Shutdown()

	err := s.Send(9999, object.New(object.NewEmpty(), object.Permanent))
	assert.Error(t, err)
}

func TestSendDeliversMessage(t *testing.T) {
	s := vm.New(testConfig())
	defer s.Shutdown()

	p := s.Spawn(&code.Object{Name: "a"})
	require.NoError(t, s.Send(p.Pid, object.New(object.NewEmpty(), object.Permanent)))

	assert.True(t, p.HasPendingMessage())
}

func TestTerminateRemovesProcess(t *testing.T) {
	s := vm.New(testConfig())
	defer s.Shutdown()

	p := s.Spawn(&code.Object{Name: "a"})
	s.Terminate(p.Pid)

	_, ok := s.Process(p.Pid)
	assert.False(t, ok)
}

func TestShutdownIsIdempotentAndErrorFree(t *testing.T) {
	s := vm.New(testConfig())
	assert.NoError(t, s.Shutdown())
	assert.NoError(t, s.Shutdown())
}

func TestLoadCodeMissingFileErrors(t *testing.T) {
	s := vm.New(testConfig())
	defer s.Shutdown()

	_, err := s.LoadCode("/nonexistent/path.aeonc")
	assert.Error(t, err)
}
