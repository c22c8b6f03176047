// Package kernel implements the SPOS process table, scheduler, and
// critical-section discipline described by the core specification.
package kernel

import "time"

// Compile-time configuration. Mirrors the AVR target's fixed resource
// budget: N process slots carved out of a 4 KiB RAM, a 20 MHz clock
// driving the scheduler tick via a prescaler/compare-match pair.
const (
	// MaxProcesses is N, the number of process-table slots. Slot 0 is
	// always the idle process.
	MaxProcesses = 8

	// DefaultPriority is used by the autostart registry and by any
	// caller that does not care about scheduling weight.
	DefaultPriority = 2

	// InvalidPID is returned by Exec when no slot is available or the
	// program pointer is nil. It is never a valid process-table index.
	InvalidPID = 255

	// StackSizeMain and StackSizeISR are reserved, non-process regions
	// of the simulated RAM; they exist here only to document the layout
	// spec.md §3 describes, since this module models stacks as
	// independently-allocated []byte regions rather than slices of one
	// shared RAM array.
	StackSizeMain = 32
	StackSizeISR  = 192

	// StackSizeProc is the per-process stack size. On the real target
	// this is derived from (RAM/2 - StackSizeMain - StackSizeISR) / N;
	// here it is simply large enough to hold one Context plus headroom
	// for a program's own local state.
	StackSizeProc = 64

	// TickPeriod is the scheduler tick period: prescaler 1024, compare
	// value 60, at 20 MHz -> (1024 * 60) / 20_000_000 s ≈ 3.1ms.
	TickPeriod = 3072 * time.Microsecond
)

// Strategy IDs, wire-stable for the menu UI (spec.md §6).
const (
	StrategyEven = iota
	StrategyRandom
	StrategyRunToCompletion
	StrategyRoundRobin
	StrategyInactiveAging
)
