// Package vm ties the runtime together: process spawning and pid
// allocation, the shared generational allocators, the worker and GC
// thread pools, and a compiled-code cache so the same bytecode file
// spawned repeatedly is only parsed once (spec.md §4.10).
package vm

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/aeon-lang/aeonvm/aeonlog"
	"github.com/aeon-lang/aeonvm/bytecode"
	"github.com/aeon-lang/aeonvm/code"
	"github.com/aeon-lang/aeonvm/gc"
	"github.com/aeon-lang/aeonvm/heap"
	"github.com/aeon-lang/aeonvm/object"
	"github.com/aeon-lang/aeonvm/process"
	"github.com/aeon-lang/aeonvm/scheduler"
)

// State is one running VM instance: every process it owns, the allocators
// they share, and the worker/GC thread pools that execute and collect
// them.
type State struct {
	cfg Config
	log *slog.Logger

	nextPid uint64

	procMu    sync.RWMutex
	processes map[uint64]*process.Process

	global    *heap.GlobalAllocator
	permanent *heap.PermanentAllocator

	workers    []*scheduler.Worker
	nextWorker atomic.Uint64

	gcThreads []*gc.Thread

	codeCache *lru.Cache[string, *code.Object]
}

// New constructs a State with cfg's pool sizes and starts its GC
// goroutines immediately. The workers are created idle: New starts no
// goroutine running Worker.Run for them, since Run takes the interpreter's
// execute callback.
func New(cfg Config) *State {
	cache, err := lru.New[string, *code.Object](cfg.CodeCacheSize)
	if err != nil {
		panic(fmt.Sprintf("vm: invalid code cache size %d: %v", cfg.CodeCacheSize, err))
	}

	global := heap.NewGlobalAllocator()

	s := &State{
		cfg:       cfg,
		log:       aeonlog.New("vm", slog.LevelInfo),
		processes: make(map[uint64]*process.Process),
		global:    global,
		permanent: heap.NewPermanentAllocator(global),
		codeCache: cache,
	}

	for i := 0; i < cfg.Workers; i++ {
		s.workers = append(s.workers, scheduler.New())
	}

	for i := 0; i < cfg.GCWorkers; i++ {
		t := gc.New(cfg.GCQueueSize)
		s.gcThreads = append(s.gcThreads, t)
		go t.Run()
	}

	return s
}

// LoadCode parses path, or returns the cached CompiledCode from a previous
// call with the same path.
func (s *State) LoadCode(path string) (*code.Object, error) {
	if c, ok := s.codeCache.Get(path); ok {
		return c, nil
	}

	c, err := bytecode.ParseFile(path)
	if err != nil {
		return nil, err
	}

	s.codeCache.Add(path, c)
	return c, nil
}

// Spawn allocates a fresh pid, a permanent self object, and a process
// running c, then schedules it onto a worker chosen round-robin.
func (s *State) Spawn(c *code.Object) *process.Process {
	pid := atomic.AddUint64(&s.nextPid, 1)
	selfObj := s.permanent.AllocateEmpty()

	proc := process.New(pid, selfObj, c, s.global, process.Config{
		YoungBlockThreshold:  s.cfg.YoungBlockThreshold,
		MatureBlockThreshold: s.cfg.MatureBlockThreshold,
		PromotionAge:         s.cfg.PromotionAge,
	})

	s.procMu.Lock()
	s.processes[pid] = proc
	s.procMu.Unlock()

	s.workerFor(pid).Schedule(proc)
	s.log.Info("spawned process", "pid", pid)
	return proc
}

// workerFor deterministically assigns a pid to a worker, so re-deriving
// which worker owns a process (e.g. after a GC round-trip) never needs a
// side table.
func (s *State) workerFor(pid uint64) *scheduler.Worker {
	return s.workers[pid%uint64(len(s.workers))]
}

// Process looks up a process by pid.
func (s *State) Process(pid uint64) (*process.Process, bool) {
	s.procMu.RLock()
	defer s.procMu.RUnlock()
	p, ok := s.processes[pid]
	return p, ok
}

// Send delivers msg to the process addressed by pid.
func (s *State) Send(pid uint64, msg object.Pointer) error {
	p, ok := s.Process(pid)
	if !ok {
		return fmt.Errorf("vm: no such process %d", pid)
	}
	p.SendMessage(msg)
	return nil
}

// Drain blocks until every process currently in the table has reached a
// terminal status (process.Status.IsAlive reporting false), reaping each
// as it does, then returns. It polls rather than waiting on a
// completion channel because nothing in this package drives a process to
// a terminal status itself — that is the interpreter's job (spec.md §6,
// "the instruction interpreter is a client of the process runtime") — so
// the only thing Drain can observe from outside is the table settling.
func (s *State) Drain(pollInterval time.Duration) {
	for {
		s.procMu.Lock()
		remaining := 0
		for pid, p := range s.processes {
			if !p.Status().IsAlive() {
				delete(s.processes, pid)
				continue
			}
			remaining++
		}
		s.procMu.Unlock()

		if remaining == 0 {
			return
		}
		time.Sleep(pollInterval)
	}
}

// Terminate removes pid's bookkeeping entry. It does not forcibly stop a
// running process; that is a cooperative decision for the interpreter loop
// to make on its next safe point.
func (s *State) Terminate(pid uint64) {
	s.procMu.Lock()
	delete(s.processes, pid)
	s.procMu.Unlock()
}

// MaybeScheduleGC checks whether proc has exceeded an allocation
// threshold and, if so, enqueues a collection request on a GC thread
// chosen round-robin, recording ownerWorker as the worker to reschedule
// proc onto once collection finishes.
func (s *State) MaybeScheduleGC(proc *process.Process, ownerWorker *scheduler.Worker) {
	if !proc.ShouldScheduleGC() {
		return
	}

	gen := process.Young
	if proc.CollectionGeneration() == process.Mature {
		gen = process.Mature
	}

	thread := s.gcThreads[s.nextWorker.Add(1)%uint64(len(s.gcThreads))]
	thread.Schedule(gc.Request{
		Generation:   gen,
		OriginWorker: ownerWorker,
		Proc:         proc,
	})
}

// Shutdown stops every worker and GC thread, aggregating any errors. There
// is currently nothing that can fail during shutdown of the in-process
// pools, but Shutdown returns a *multierror.Error (nil when empty) so
// future failure modes — e.g. draining a persistent mailbox store — can be
// added without changing the signature callers already depend on.
func (s *State) Shutdown() error {
	var result *multierror.Error

	for _, w := range s.workers {
		w.Stop()
	}
	for _, t := range s.gcThreads {
		t.Stop()
	}

	s.log.Info("vm shut down", "processes", len(s.processes))
	return result.ErrorOrNil()
}
