package kernel

// Runtime drives a Scheduler's process-table entries as real goroutines,
// one per occupied slot, each parked until the scheduler first selects it
// and then blocked on Cooperator.Yield except while it is the slot Tick
// last selected. It is the thing that makes a ProgramFunc actually
// execute; the scheduling decisions themselves (Table, Strategy,
// checksum) never depend on it and are fully testable without ever
// starting one.
//
// Grounded on the teacher's coproc_worker_*.go goroutine-lifecycle idiom
// (a `stop func()` plus a `done chan struct{}`), adapted from "run until
// told to stop" to "run until told to yield, then block until resumed".
type Runtime struct {
	sched *Scheduler
	slots [MaxProcesses]*procRuntime
}

type procRuntime struct {
	resume  chan struct{}
	yielded chan struct{}
	stop    chan struct{}
	done    chan struct{}
}

// NewRuntime returns a Runtime over sched. Call Spawn once per process
// that should actually execute its ProgramFunc body, then call Drive
// after every Tick that might have changed the current process.
func NewRuntime(sched *Scheduler) *Runtime {
	return &Runtime{sched: sched}
}

// Spawn prepares pid's program to run on its own goroutine. The goroutine
// blocks immediately, before running any of the program's own code, until
// the first Drive call selects it — so a spawned-but-never-scheduled slot
// never executes a single instruction, matching the rest of the kernel's
// rule that only the current process runs. It is safe to call once per
// pid for the lifetime of that process's slot; Exec must already have
// installed the program before Spawn is called.
func (r *Runtime) Spawn(pid int) {
	p := r.sched.GetSlot(pid)
	rt := &procRuntime{
		resume:  make(chan struct{}),
		yielded: make(chan struct{}),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	r.slots[pid] = rt

	coop := &Cooperator{yield: func() {
		select {
		case rt.yielded <- struct{}{}:
		case <-rt.stop:
			panic(runtimeStopped{})
		}
		select {
		case <-rt.resume:
		case <-rt.stop:
			panic(runtimeStopped{})
		}
	}}

	program := p.Program
	go func() {
		defer close(rt.done)
		defer func() {
			if v := recover(); v != nil {
				if _, ok := v.(runtimeStopped); !ok {
					panic(v)
				}
			}
		}()

		// Wait for the first Drive before running any of the program's
		// own code, so the goroutine never races ahead of the scheduler
		// that is supposed to be the only thing granting it time.
		select {
		case <-rt.resume:
		case <-rt.stop:
			panic(runtimeStopped{})
		}
		program(coop)
		// program returned from its top level instead of looping forever
		// behind Yield. spec.md §3 requires that this neither run off the
		// stack nor keep the slot scheduled, so signal exit the same way
		// Stop would see it: leave done closed and yielded untouched.
		// Drive's caller is responsible for Kill-ing the slot once it
		// observes the exit.
	}()
}

// runtimeStopped unwinds Spawn's goroutine via panic/recover when Stop
// is called while it is parked in Yield (or waiting for its first Drive);
// it is never allowed to escape the goroutine it was raised in.
type runtimeStopped struct{}

// Stop tears down pid's goroutine, if one was spawned. Safe to call
// whether or not the goroutine is currently parked in Yield.
func (r *Runtime) Stop(pid int) {
	rt := r.slots[pid]
	if rt == nil {
		return
	}
	close(rt.stop)
	<-rt.done
	r.slots[pid] = nil
}

// Drive resumes the scheduler's current process and blocks until it
// yields back. It reports the pid it drove and whether that pid's
// program ran off the end of its top-level function instead of yielding
// again — spec.md §3's "return from entry restarts or halts the
// process" — in which case Drive has already forgotten the exited
// goroutine, and the caller must still call Scheduler.Kill(pid) so the
// process table's slot stops being scheduled.
//
// Call Drive once per Tick, after Tick itself has run.
func (r *Runtime) Drive() (pid int, exited bool) {
	pid = r.sched.CurrentPID()
	rt := r.slots[pid]
	if rt == nil {
		return pid, false
	}
	select {
	case rt.resume <- struct{}{}:
	case <-rt.done:
		r.slots[pid] = nil
		return pid, true
	}
	select {
	case <-rt.yielded:
		return pid, false
	case <-rt.done:
		r.slots[pid] = nil
		return pid, true
	}
}
