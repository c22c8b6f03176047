package kernel

import "math/rand"

// Strategy selects the next runnable process to run (spec.md §4.6). The
// set of strategies is closed, so rather than a virtual/inherited
// dispatch hierarchy (§9 "Strategy polymorphism"), each is a small
// concrete type behind this one interface — the same shape the teacher
// uses for its VideoOutput/AudioOutput collaborators.
type Strategy interface {
	// Next returns the pid to run after current. It must return 0 (the
	// idle slot) iff no non-idle slot is runnable, and must never
	// mutate a Process's State — only its own private accounting
	// fields.
	Next(t *Table, current int) int

	// ResetProc clears this strategy's private accounting for a single
	// slot. Called by Exec when (re-)populating a slot.
	ResetProc(p *Process)

	// ResetAll clears this strategy's private accounting for every
	// slot. Called when the active strategy changes.
	ResetAll(t *Table)
}

func nonIdleRunnable(t *Table) []int {
	pids := make([]int, 0, MaxProcesses-1)
	for pid := 1; pid < MaxProcesses; pid++ {
		if t.Slots[pid].IsRunnable() {
			pids = append(pids, pid)
		}
	}
	return pids
}

// evenAdvance returns the first runnable non-idle slot after current, in
// increasing pid order and wrapping past N-1 back to 1 (current itself is
// checked last); it
// is the shared "Even order" traversal spec.md §4.6 defines for Even
// itself and reuses for Round-Robin's advance step.
func evenAdvance(t *Table, current int) int {
	start := 0
	for i := 1; i < MaxProcesses; i++ {
		if i > current {
			start = i
			break
		}
		start = 1
	}
	for k := 0; k < MaxProcesses-1; k++ {
		pid := 1 + (start-1+k)%(MaxProcesses-1)
		if t.Slots[pid].IsRunnable() {
			return pid
		}
	}
	return 0
}

// EvenStrategy advances through runnable non-idle slots in increasing
// pid order, ignoring priority (spec.md §4.6 "Even").
type EvenStrategy struct{}

func (EvenStrategy) Next(t *Table, current int) int { return evenAdvance(t, current) }
func (EvenStrategy) ResetProc(*Process)              {}
func (EvenStrategy) ResetAll(*Table)                 {}

// RandomStrategy uniformly picks a runnable non-idle slot from a
// deterministically-seeded PRNG (spec.md §4.6 "Random").
type RandomStrategy struct {
	rng *rand.Rand
}

// NewRandomStrategy returns a RandomStrategy seeded with the default
// seed (1), matching spec.md's reproducibility requirement.
func NewRandomStrategy() *RandomStrategy {
	return &RandomStrategy{rng: rand.New(rand.NewSource(1))}
}

func (s *RandomStrategy) Next(t *Table, current int) int {
	pids := nonIdleRunnable(t)
	if len(pids) == 0 {
		return 0
	}
	return pids[s.rng.Intn(len(pids))]
}
func (*RandomStrategy) ResetProc(*Process) {}
func (s *RandomStrategy) ResetAll(*Table)   { s.rng = rand.New(rand.NewSource(1)) }

// RoundRobinStrategy gives each runnable slot a time-slice equal to its
// priority, decrementing it on every call and advancing in Even order
// once it is exhausted (spec.md §4.6 "Round-Robin"). See DESIGN.md OQ4
// for the ground-truth-corrected scenario numbers this is tested
// against.
type RoundRobinStrategy struct{}

func (RoundRobinStrategy) Next(t *Table, current int) int {
	if current != 0 && t.Slots[current].IsRunnable() && t.Slots[current].timeSlice > 0 {
		t.Slots[current].timeSlice--
		if t.Slots[current].timeSlice > 0 {
			return current
		}
	}
	next := evenAdvance(t, current)
	if next != 0 {
		t.Slots[next].timeSlice = t.Slots[next].Priority
	}
	return next
}
func (RoundRobinStrategy) ResetProc(p *Process) { p.timeSlice = p.Priority }
func (RoundRobinStrategy) ResetAll(t *Table) {
	for pid := 1; pid < MaxProcesses; pid++ {
		t.Slots[pid].timeSlice = t.Slots[pid].Priority
	}
}

// InactiveAgingStrategy ages every runnable non-current slot by its
// priority on each call, picks the largest age (ties go to the smaller
// pid), and resets the winner's age to its priority (spec.md §4.6
// "Inactive-Aging").
type InactiveAgingStrategy struct{}

func (InactiveAgingStrategy) Next(t *Table, current int) int {
	best, bestAge, found := 0, uint32(0), false
	for pid := 1; pid < MaxProcesses; pid++ {
		p := &t.Slots[pid]
		if !p.IsRunnable() {
			continue
		}
		if pid != current {
			p.age += uint32(p.Priority)
		}
		if !found || p.age > bestAge {
			best, bestAge, found = pid, p.age, true
		}
	}
	if !found {
		return 0
	}
	t.Slots[best].age = uint32(t.Slots[best].Priority)
	return best
}
func (InactiveAgingStrategy) ResetProc(p *Process) { p.age = 0 }
func (InactiveAgingStrategy) ResetAll(t *Table) {
	for pid := 1; pid < MaxProcesses; pid++ {
		t.Slots[pid].age = 0
	}
}

// RunToCompletionStrategy keeps running current until it is no longer
// runnable, then falls back to the lowest-pid runnable non-idle slot —
// the tiebreak spec.md §9's second open question fixes explicitly
// (spec.md §4.6 "Run-To-Completion").
type RunToCompletionStrategy struct{}

func (RunToCompletionStrategy) Next(t *Table, current int) int {
	if current != 0 && t.Slots[current].IsRunnable() {
		return current
	}
	for pid := 1; pid < MaxProcesses; pid++ {
		if t.Slots[pid].IsRunnable() {
			return pid
		}
	}
	return 0
}
func (RunToCompletionStrategy) ResetProc(*Process) {}
func (RunToCompletionStrategy) ResetAll(*Table)     {}

// strategyByID maps the wire-stable enumeration of spec.md §6 to a
// Strategy value. Used by Scheduler.SetStrategy and the task manager's
// "cycle strategy" operation.
func strategyByID(id int) Strategy {
	switch id {
	case StrategyEven:
		return EvenStrategy{}
	case StrategyRandom:
		return NewRandomStrategy()
	case StrategyRunToCompletion:
		return RunToCompletionStrategy{}
	case StrategyRoundRobin:
		return RoundRobinStrategy{}
	case StrategyInactiveAging:
		return InactiveAgingStrategy{}
	default:
		return EvenStrategy{}
	}
}
