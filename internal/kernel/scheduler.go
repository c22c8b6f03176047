package kernel

import (
	"log"
	"sync"
)

// FaultHook is called for every fatal error in the spec.md §7 taxonomy.
// The default hook panics; Scheduler.SetFaultHook lets a front end (or a
// test) install internal/fault.Raise or a recording stub instead. The
// kernel never imports internal/fault directly — the hook is injected,
// the same way the teacher injects AudioOutput/VideoOutput rather than
// importing concrete backends.
type FaultHook func(*FatalError)

// Scheduler is the process-wide singleton of spec.md §9: the process
// table, the current-pid index (held inside Table), the critical-section
// counter, and the active strategy, all guarded by one mutex — grounded
// on CoprocessorManager's single `mu sync.Mutex` protecting its whole
// shared-state struct.
type Scheduler struct {
	mu sync.Mutex

	table      Table
	strategy   Strategy
	strategyID int

	depth             uint8
	tickMasked        bool
	tickEnabledShadow bool

	// GIEB is the global-interrupt-enable bit. Critical sections never
	// read or write it; it exists so tests, and fault.Raise (which
	// restores it on return), have an interrupt-enable flag to check
	// stays untouched (spec.md §4.4, scenario 5).
	GIEB bool

	taskmanagerOpen bool

	faultHook FaultHook
}

// NewScheduler returns a Scheduler with all slots Unused and the Even
// strategy active. Call InitScheduler to populate the autostart list and
// the idle process before starting the tick source.
func NewScheduler() *Scheduler {
	return &Scheduler{strategy: EvenStrategy{}}
}

// SetFaultHook installs the handler invoked for fatal errors. Passing
// nil restores the default panic-based hook.
func (s *Scheduler) SetFaultHook(h FaultHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faultHook = h
}

func (s *Scheduler) raiseLocked(err *FatalError) {
	log.Printf("kernel: %v", err)
	hook := s.faultHook
	s.mu.Unlock()
	if hook != nil {
		hook(err)
	} else {
		panic(err)
	}
	s.mu.Lock()
}

// CurrentPID returns the pid of the currently running process.
func (s *Scheduler) CurrentPID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.current
}

// GetSlot returns a pointer to process pid's record. Callers outside the
// kernel package should treat it as read-only except via the exported
// mutators (Exec, Kill, SetPriority) — spec.md §4.2's "direct mutation
// only inside a critical section" is enforced by convention here, as it
// is in the source this was distilled from.
func (s *Scheduler) GetSlot(pid int) *Process {
	return s.table.Slot(pid)
}

// StackChecksum returns the stored checksum for pid (spec.md §6).
func (s *Scheduler) StackChecksum(pid int) byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Slots[pid].Checksum
}

// IsTaskmanagerOpen reports whether the task manager currently owns the
// display (spec.md §6).
func (s *Scheduler) IsTaskmanagerOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.taskmanagerOpen
}

// SetTaskmanagerOpen is called by internal/taskmgr when it gains or
// releases the display.
func (s *Scheduler) SetTaskmanagerOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taskmanagerOpen = open
}

// GetStrategy returns the wire-stable id of the active strategy.
func (s *Scheduler) GetStrategy() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strategyID
}

// SetStrategy installs a new scheduling strategy by its wire-stable id
// (spec.md §6) and runs its global reset hook over every slot (spec.md
// §4.6 "On a strategy change...").
func (s *Scheduler) SetStrategy(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strategyID = id
	s.strategy = strategyByID(id)
	s.strategy.ResetAll(&s.table)
}

// Tick implements the scheduler ISR sequence of spec.md §4.7. It is the
// only place a context switch occurs. Masked (inside a critical section)
// ticks are no-ops, matching the "scheduler's timer interrupt" being the
// thing critical sections disable.
func (s *Scheduler) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tickMasked {
		return
	}

	cur := s.table.current
	outgoing := s.table.Slot(cur)

	// Steps 1-3: save_context is implicit (the process's Stack already
	// holds its live register state between ticks in this cooperative
	// model, see SPEC_FULL.md §1); recompute and store its checksum.
	outgoing.Checksum = outgoing.stackChecksum()
	if outgoing.State == Running {
		outgoing.State = Ready
	}

	// Steps 4-7: select the next process via the active strategy.
	next := s.strategy.Next(&s.table, cur)
	incoming := s.table.Slot(next)

	// Step 8: verify the incoming process's stack wasn't corrupted while
	// it was suspended.
	if got := incoming.stackChecksum(); got != incoming.Checksum {
		s.raiseLocked(&FatalError{Kind: StackChecksumViolation, PID: next})
		return
	}

	// Steps 9-10: switch.
	s.table.current = next
	incoming.State = Running
}
