package kernel

// Registry collects program entry points that should be exec'd when the
// scheduler initializes (spec.md §4.8 "a singly-linked list of {
// program_entry, next } nodes"). Go has no constructor-attributed
// functions, so the source's "attach at image-construction time" trick
// becomes an explicit build-up-then-drain slice instead — the same shape
// GetActiveWorkers uses in the teacher (build a slice under the lock,
// hand it to the caller once).
type Registry struct {
	entries []ProgramFunc
}

// Register appends program to the autostart list. Safe to call only
// before InitScheduler runs.
func (r *Registry) Register(program ProgramFunc) {
	r.entries = append(r.entries, program)
}

// Idle is the slot-0 program: an infinite no-op that must remain
// runnable for as long as the scheduler exists (spec.md §4.8).
func Idle(c *Cooperator) {
	for {
		c.Yield()
	}
}

// InitScheduler clears the process table, execs the idle program into
// slot 0, drains reg into the remaining slots at DefaultPriority, and
// selects the Even strategy (spec.md §4.8). It panics if the idle exec
// does not land on pid 0; since the table has just been cleared, that can
// only come from a fault in Exec itself, a programming error rather than
// a runtime condition spec.md's error taxonomy covers.
func InitScheduler(s *Scheduler, reg *Registry) {
	s.mu.Lock()
	for pid := range s.table.Slots {
		s.table.Slots[pid] = Process{}
	}
	s.table.current = 0
	s.mu.Unlock()

	s.SetStrategy(StrategyEven)

	if pid := s.Exec(Idle, DefaultPriority); pid != 0 {
		panic("kernel: InitScheduler: idle process did not land on slot 0")
	}
	s.mu.Lock()
	s.table.Slots[0].State = Running
	s.mu.Unlock()

	for _, entry := range reg.entries {
		s.Exec(entry, DefaultPriority)
	}
}
