package process

// Status returns the process's current status.
func (p *Process) Status() Status {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	return p.status
}

// SetStatus unconditionally transitions to s and wakes anyone waiting on
// the status condvar (a GC thread parked in RequestGCSuspension, or a
// second worker parked in WaitWhileRunning).
func (p *Process) SetStatus(s Status) {
	p.statusMu.Lock()
	p.status = s
	p.statusCond.Broadcast()
	p.statusMu.Unlock()
}

// SetStatusWithoutOverwritingGCStatus is how a worker reports its process's
// new status at the end of an instruction slice. If the GC has already
// moved the process to SuspendedByGc, that status is left alone — the GC
// owns the next transition. Otherwise, if a suspension was requested while
// this slice was executing, the requested status is itself overridden:
// the process suspends for GC instead, and the request is consumed. This
// is a running process's routine safe point; SuspendForGC is the other
// way a pending GC request takes effect.
func (p *Process) SetStatusWithoutOverwritingGCStatus(s Status) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()

	if p.status == SuspendedByGc {
		return
	}

	if p.suspendForGC {
		p.suspendForGC = false
		p.status = SuspendedByGc
	} else {
		p.status = s
	}
	p.statusCond.Broadcast()
}

// Running transitions to Running. Called by the worker immediately before
// executing the process's next slice of instructions.
func (p *Process) Running() {
	p.SetStatus(Running)
}

// Suspend transitions to Suspended (e.g. blocked receiving a message).
func (p *Process) Suspend() {
	p.SetStatusWithoutOverwritingGCStatus(Suspended)
}

// Finish transitions to Finished.
func (p *Process) Finish() {
	p.SetStatusWithoutOverwritingGCStatus(Finished)
}

// Fail transitions to Failed.
func (p *Process) Fail() {
	p.SetStatusWithoutOverwritingGCStatus(Failed)
}

// WaitWhileRunning blocks until the process leaves Running.
func (p *Process) WaitWhileRunning() {
	p.statusMu.Lock()
	for p.status == Running {
		p.statusCond.Wait()
	}
	p.statusMu.Unlock()
}

// SuspendedByGc reports whether the process is currently suspended for
// collection.
func (p *Process) SuspendedByGc() bool {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	return p.status == SuspendedByGc
}

// RequestGCSuspension is called by the GC thread before it may safely scan
// and move this process's heap. It marks the process for suspension (if
// it is not already suspended for GC) and then blocks until the process is
// no longer Running — either because it never was, or because the owning
// worker's next SetStatusWithoutOverwritingGCStatus call observed the
// request and honored it.
func (p *Process) RequestGCSuspension() {
	p.statusMu.Lock()
	if p.status != SuspendedByGc {
		p.suspendForGC = true
	}
	for p.status == Running {
		p.statusCond.Wait()
	}
	p.statusMu.Unlock()
}

// ShouldSuspendForGC reports whether this process is suspended for GC, or
// has a suspension request pending that has not yet taken effect.
func (p *Process) ShouldSuspendForGC() bool {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	return p.status == SuspendedByGc || p.suspendForGC
}

// SuspendForGC transitions directly to SuspendedByGc, clearing any pending
// request. Used by a worker that detects the GC flag itself mid-slice,
// rather than waiting for its next SetStatusWithoutOverwritingGCStatus
// call — e.g. a blocking allocation failure that can't proceed until a
// collection runs.
func (p *Process) SuspendForGC() {
	p.statusMu.Lock()
	p.suspendForGC = false
	p.status = SuspendedByGc
	p.statusCond.Broadcast()
	p.statusMu.Unlock()
}

// ResetStatus is called by the GC thread once a collection finishes. It
// clears the GC state and returns the process to Scheduled, ready to be
// handed back to a worker's run queue.
func (p *Process) ResetStatus() {
	p.statusMu.Lock()
	p.status = Scheduled
	p.gcState = GCNone
	p.statusCond.Broadcast()
	p.statusMu.Unlock()
}

// ShouldScheduleGC reports whether this process needs a GC Request queued,
// and if so marks GCScheduled so a second allocation spike before the
// first request is serviced does not queue a duplicate.
func (p *Process) ShouldScheduleGC() bool {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	if p.gcState == GCScheduled {
		return false
	}
	if !p.local.YoungExceeded() && !p.local.MatureExceeded() {
		return false
	}
	p.gcState = GCScheduled
	return true
}

// CollectionGeneration reports which generation exceeded its threshold,
// preferring young (the cheaper collection) when both have.
func (p *Process) CollectionGeneration() Generation {
	if p.local.YoungExceeded() {
		return Young
	}
	return Mature
}
