package kernel

import "testing"

func noop(c *Cooperator) {}

func newTestScheduler() *Scheduler {
	s := NewScheduler()
	InitScheduler(s, &Registry{})
	return s
}

// Scenario 1: gap-filling exec.
func TestExecGapFilling(t *testing.T) {
	s := newTestScheduler()
	for i := 1; i < MaxProcesses; i++ { // slot 0 already holds idle
		if pid := s.Exec(noop, 1); pid == InvalidPID {
			t.Fatalf("slot %d: exec failed to fill table", i)
		}
	}
	s.Kill(2)
	pid := s.Exec(noop, 1)
	if pid != 2 {
		t.Fatalf("expected gap-filling exec to reuse slot 2, got %d", pid)
	}
}

// Boundary: exec with all slots full.
func TestExecAllSlotsFull(t *testing.T) {
	s := newTestScheduler()
	for i := 0; i < MaxProcesses; i++ {
		s.Exec(noop, 1)
	}
	before := s.CriticalDepth()
	pid := s.Exec(noop, 1)
	if pid != InvalidPID {
		t.Fatalf("expected InvalidPID with table full, got %d", pid)
	}
	if s.CriticalDepth() != before {
		t.Fatalf("critical-section depth changed across a failed exec: %d -> %d", before, s.CriticalDepth())
	}
}

// Boundary: exec(nil, _).
func TestExecNullProgram(t *testing.T) {
	s := newTestScheduler()
	before := s.CriticalDepth()
	pid := s.Exec(nil, 1)
	if pid != InvalidPID {
		t.Fatalf("expected InvalidPID for nil program, got %d", pid)
	}
	if s.CriticalDepth() != before {
		t.Fatalf("critical-section depth changed across a rejected exec")
	}
}

// Invariant I6.
func TestExecInvariantI6(t *testing.T) {
	s := newTestScheduler()
	pid := s.Exec(noop, 7)
	if pid >= MaxProcesses {
		t.Fatalf("exec returned out-of-range pid %d", pid)
	}
	slot := s.GetSlot(pid)
	if slot.State != Ready {
		t.Fatalf("expected Ready, got %v", slot.State)
	}
}

// Scenario 2: initial stack frame layout.
func TestInitialStackFrameLayout(t *testing.T) {
	s := NewScheduler()
	s.mu.Lock()
	for i := range s.table.Slots {
		s.table.Slots[i] = Process{}
	}
	s.mu.Unlock()
	s.SetStrategy(StrategyEven)

	pid := s.Exec(noop, 10)
	if pid != 0 {
		t.Fatalf("expected pid 0 on an empty table, got %d", pid)
	}

	slot := s.GetSlot(0)
	if slot.Priority != 10 {
		t.Fatalf("priority: got %d want 10", slot.Priority)
	}
	if slot.State != Ready {
		t.Fatalf("state: got %v want Ready", slot.State)
	}

	bottom := slot.bottom()
	wantSP := bottom - 35
	if slot.SP != wantSP {
		t.Fatalf("sp: got %d want %d", slot.SP, wantSP)
	}
	for i := slot.SP + 1; i <= slot.SP+33; i++ {
		if slot.Stack[i] != 0 {
			t.Fatalf("expected zero byte at sp+%d, got %d", i-slot.SP, slot.Stack[i])
		}
	}
	entry := entryAddr(noop)
	if slot.Stack[slot.SP+34] != byte(entry>>8) {
		t.Fatalf("high byte of entry at sp+34: got %#x want %#x", slot.Stack[slot.SP+34], byte(entry>>8))
	}
	if slot.Stack[slot.SP+35] != byte(entry) {
		t.Fatalf("low byte of entry at sp+35: got %#x want %#x", slot.Stack[slot.SP+35], byte(entry))
	}
}

func TestIsRunnable(t *testing.T) {
	cases := []struct {
		state State
		want  bool
	}{
		{Unused, false},
		{Ready, true},
		{Running, true},
		{Blocked, false},
	}
	for _, c := range cases {
		p := &Process{State: c.state}
		if got := p.IsRunnable(); got != c.want {
			t.Errorf("state %v: IsRunnable() = %v, want %v", c.state, got, c.want)
		}
	}
}
