package kernel

import "log"

// Exec creates a process running program at the given priority (spec.md
// §4.5). It scans slots in increasing id order for the first Unused one,
// lays down the initial stack frame, and returns the chosen pid, or
// InvalidPID if program is nil or no slot is free. Both failure paths
// leave the critical-section counter unchanged, as spec.md's boundary
// behaviors require.
func (s *Scheduler) Exec(program ProgramFunc, priority uint8) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enterCriticalLocked()
	defer s.leaveCriticalLocked()

	if program == nil {
		return InvalidPID
	}

	for pid := 0; pid < MaxProcesses; pid++ {
		p := s.table.Slot(pid)
		if p.State != Unused {
			continue
		}
		if p.Stack == nil {
			p.Stack = make([]byte, StackSizeProc)
		}
		p.Program = program
		p.Priority = priority
		p.age = 0
		p.timeSlice = 0
		s.strategy.ResetProc(p)
		p.initFrame()
		p.Checksum = p.stackChecksum()
		p.State = Ready
		log.Printf("kernel: exec pid %d priority %d", pid, priority)
		return pid
	}

	return InvalidPID
}

// Kill marks pid Unused (spec.md §3 "Destroyed by kill(pid)"). If pid is
// the currently-running process, the caller must still rely on the next
// Tick to actually stop scheduling it — Kill itself never calls Tick.
func (s *Scheduler) Kill(pid int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enterCriticalLocked()
	defer s.leaveCriticalLocked()

	p := s.table.Slot(pid)
	p.State = Unused
	p.Program = nil
	p.age = 0
	p.timeSlice = 0
	log.Printf("kernel: kill pid %d", pid)
}

// SetPriority changes pid's priority without disturbing its state or
// strategy-private accounting beyond what the active strategy's
// ResetProc would do on the next Exec.
func (s *Scheduler) SetPriority(pid int, priority uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.Slot(pid).Priority = priority
}
