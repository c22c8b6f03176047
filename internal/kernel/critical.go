package kernel

// EnterCritical masks the scheduler's timer tick, nesting safely (spec.md
// §4.4). The outermost Enter captures whether the tick was enabled into
// a shadow; the matching outermost Leave restores it. It never touches
// GIEB, the global-interrupt-enable bit — that is a separate flag other
// interrupt sources (e.g. a pin-change source) keep firing against
// regardless of nesting depth, per the §4.4 "Key contract".
func (s *Scheduler) EnterCritical() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enterCriticalLocked()
}

// LeaveCritical unmasks the scheduler's timer tick once the outermost
// Enter/Leave pair has been matched (spec.md §4.4).
func (s *Scheduler) LeaveCritical() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaveCriticalLocked()
}

func (s *Scheduler) enterCriticalLocked() {
	if s.depth == 255 {
		s.raiseLocked(&FatalError{Kind: CriticalSectionOverflow, PID: -1})
		return
	}
	if s.depth == 0 {
		s.tickEnabledShadow = !s.tickMasked
		s.tickMasked = true
	}
	s.depth++
}

func (s *Scheduler) leaveCriticalLocked() {
	if s.depth == 0 {
		s.raiseLocked(&FatalError{Kind: CriticalSectionUnderflow, PID: -1})
		return
	}
	s.depth--
	if s.depth == 0 && s.tickEnabledShadow {
		s.tickMasked = false
	}
}

// CriticalDepth reports the current nesting depth, for tests.
func (s *Scheduler) CriticalDepth() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.depth
}
