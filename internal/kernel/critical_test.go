package kernel

import "testing"

// Boundary: 255 nested enters succeed, the 256th overflows.
func TestCriticalSectionOverflow(t *testing.T) {
	s := NewScheduler()
	raised := 0
	s.SetFaultHook(func(e *FatalError) {
		raised++
		if e.Kind != CriticalSectionOverflow {
			t.Fatalf("expected CriticalSectionOverflow, got %v", e.Kind)
		}
	})
	for i := 0; i < 255; i++ {
		s.EnterCritical()
	}
	if d := s.CriticalDepth(); d != 255 {
		t.Fatalf("depth after 255 enters: got %d want 255", d)
	}
	s.EnterCritical()
	if raised != 1 {
		t.Fatalf("expected exactly one overflow signal, got %d", raised)
	}
}

// Boundary: leave with depth == 0 underflows.
func TestCriticalSectionUnderflow(t *testing.T) {
	s := NewScheduler()
	raised := 0
	s.SetFaultHook(func(e *FatalError) {
		raised++
		if e.Kind != CriticalSectionUnderflow {
			t.Fatalf("expected CriticalSectionUnderflow, got %v", e.Kind)
		}
	})
	s.LeaveCritical()
	if raised != 1 {
		t.Fatalf("expected exactly one underflow signal, got %d", raised)
	}
}

// R2: enter(); leave(); is a no-op on depth and the saved shadow.
func TestCriticalSectionRoundTrip(t *testing.T) {
	s := NewScheduler()
	before := s.CriticalDepth()
	s.EnterCritical()
	s.LeaveCritical()
	if after := s.CriticalDepth(); after != before {
		t.Fatalf("depth changed across enter/leave: %d -> %d", before, after)
	}
}

// Scenario 5 / I4: critical sections never touch GIEB, and nesting
// restores the scheduler tick mask exactly as it found it.
func TestCriticalSectionPreservesGIEB(t *testing.T) {
	for _, gieb := range []bool{false, true} {
		s := NewScheduler()
		s.GIEB = gieb
		s.EnterCritical()
		s.EnterCritical()
		s.LeaveCritical()
		s.LeaveCritical()
		if s.GIEB != gieb {
			t.Fatalf("GIEB mutated by critical section: started %v, ended %v", gieb, s.GIEB)
		}
	}
}

// A pin-change-style interrupt source is modeled as an ordinary function
// call; nothing about EnterCritical/LeaveCritical blocks arbitrary Go
// code from running during the section, which is the portable analogue
// of "other interrupt sources keep firing".
func TestCriticalSectionDoesNotBlockOtherInterrupts(t *testing.T) {
	s := NewScheduler()
	fired := false
	pinChange := func() { fired = true }

	s.EnterCritical()
	pinChange()
	s.LeaveCritical()

	if !fired {
		t.Fatalf("pin-change style interrupt did not fire during a critical section")
	}
}

// I4: the tick mask set by the outermost Enter is cleared by the
// matching outermost Leave, regardless of nesting depth in between.
func TestCriticalSectionTickMaskRestored(t *testing.T) {
	s := newTestScheduler()
	s.Exec(noop, 1)
	s.Exec(noop, 1)

	s.EnterCritical()
	before := s.CurrentPID()
	s.Tick() // masked, must be a no-op
	if s.CurrentPID() != before {
		t.Fatalf("tick fired while inside a critical section")
	}
	s.EnterCritical()
	s.LeaveCritical()
	s.Tick() // still masked (outer section not left yet)
	if s.CurrentPID() != before {
		t.Fatalf("tick fired before the outermost critical section was left")
	}
	s.LeaveCritical()
	s.Tick() // now unmasked
	if s.CurrentPID() == before {
		t.Fatalf("tick did not fire once the outermost critical section was left")
	}
}
