package kernel

import "testing"

// setupThree builds a table with pids 1,2,3 Ready (priorities supplied)
// and every other non-idle slot Unused, mirroring the concrete scenario
// setups in spec.md §8.
func setupThree(p1, p2, p3 uint8) *Table {
	t := &Table{}
	t.Slots[1] = Process{State: Ready, Priority: p1}
	t.Slots[2] = Process{State: Ready, Priority: p2}
	t.Slots[3] = Process{State: Ready, Priority: p3}
	return t
}

// Scenario 3: Even-strategy schedule with three ready non-idle slots.
func TestEvenStrategyScenario(t *testing.T) {
	table := setupThree(1, 1, 1)
	s := EvenStrategy{}

	want := []int{}
	for i := 0; i < 32; i++ {
		want = append(want, (i%3)+1)
	}

	current := 0
	var got []int
	for i := 0; i < 32; i++ {
		current = s.Next(table, current)
		got = append(got, current)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tick %d: got %d want %d (full: got=%v want=%v)", i, got[i], want[i], got, want)
		}
	}
}

// Scenario 4, corrected per DESIGN.md OQ4: round-robin with priorities
// {2, 5, 17} reproduces the ground-truth 32-tick capture.
func TestRoundRobinStrategyScenario(t *testing.T) {
	table := setupThree(2, 5, 17)
	s := RoundRobinStrategy{}
	s.ResetAll(table)

	want := []int{
		1, 1,
		2, 2, 2, 2, 2,
		3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
		1, 1,
		2, 2, 2, 2, 2,
		3,
	}
	if len(want) != 32 {
		t.Fatalf("test fixture bug: want has %d elements, expected 32", len(want))
	}

	current := 0 // start from idle, so the first selection is pid 1
	var got []int
	for i := 0; i < 32; i++ {
		current = s.Next(table, current)
		got = append(got, current)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tick %d: got %d want %d (full: got=%v want=%v)", i, got[i], want[i], got, want)
		}
	}
}

// I5: every strategy returns 0 iff no non-idle slot is runnable.
func TestStrategiesReturnIdleWhenNothingRunnable(t *testing.T) {
	empty := &Table{}
	strategies := []Strategy{
		EvenStrategy{},
		NewRandomStrategy(),
		RoundRobinStrategy{},
		InactiveAgingStrategy{},
		RunToCompletionStrategy{},
	}
	for _, strat := range strategies {
		if got := strat.Next(empty, 0); got != 0 {
			t.Errorf("%T: expected 0 with nothing runnable, got %d", strat, got)
		}
	}

	full := setupThree(1, 1, 1)
	for _, strat := range strategies {
		if got := strat.Next(full, 0); got == 0 {
			t.Errorf("%T: expected a non-idle pid with runnable slots, got 0", strat)
		}
	}
}

func TestInactiveAgingPrefersStarvedProcess(t *testing.T) {
	table := setupThree(1, 1, 1)
	s := InactiveAgingStrategy{}

	// pid 1 runs repeatedly; pids 2 and 3 should accumulate age and
	// eventually be preferred over it.
	current := 1
	seenOther := false
	for i := 0; i < 10; i++ {
		current = s.Next(table, current)
		if current != 1 {
			seenOther = true
		}
	}
	if !seenOther {
		t.Fatalf("inactive-aging never selected a starved process")
	}
}

func TestRunToCompletionStaysOnCurrent(t *testing.T) {
	table := setupThree(1, 1, 1)
	table.Slots[1].State = Running
	s := RunToCompletionStrategy{}
	for i := 0; i < 5; i++ {
		if got := s.Next(table, 1); got != 1 {
			t.Fatalf("expected run-to-completion to stick with pid 1, got %d", got)
		}
	}
	table.Slots[1].State = Unused
	if got := s.Next(table, 1); got != 2 {
		t.Fatalf("expected fallback to lowest-pid runnable slot (2), got %d", got)
	}
}

func TestRandomStrategyDeterministic(t *testing.T) {
	table := setupThree(1, 1, 1)
	a := NewRandomStrategy()
	b := NewRandomStrategy()
	for i := 0; i < 20; i++ {
		ga := a.Next(table, 0)
		gb := b.Next(table, 0)
		if ga != gb {
			t.Fatalf("tick %d: two default-seeded RandomStrategy values diverged: %d != %d", i, ga, gb)
		}
	}
}

func TestStrategyMustNotMutateState(t *testing.T) {
	table := setupThree(1, 5, 9)
	for _, strat := range []Strategy{
		EvenStrategy{}, NewRandomStrategy(), RoundRobinStrategy{},
		InactiveAgingStrategy{}, RunToCompletionStrategy{},
	} {
		before := [4]State{table.Slots[0].State, table.Slots[1].State, table.Slots[2].State, table.Slots[3].State}
		strat.Next(table, 1)
		after := [4]State{table.Slots[0].State, table.Slots[1].State, table.Slots[2].State, table.Slots[3].State}
		if before != after {
			t.Errorf("%T mutated process state: %v -> %v", strat, before, after)
		}
	}
}
