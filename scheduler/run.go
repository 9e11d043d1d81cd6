package scheduler

import "github.com/aeon-lang/aeonvm/process"

// Run drives the worker's goroutine: park until there is work or a stop
// signal, pop the next process, and hand it to execute. execute is the
// interpreter's per-process instruction loop; Run itself has no opinion on
// how many instructions a turn runs or when a process gets rescheduled —
// that is execute's job, typically ending in either a reschedule onto some
// Worker or a terminal status transition.
func (w *Worker) Run(execute func(*process.Process)) {
	for {
		w.WaitForWork()

		if w.ShouldStop() {
			return
		}

		p, ok := w.PopProcess()
		if !ok {
			continue
		}

		execute(p)
	}
}
