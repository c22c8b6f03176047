package kernel

// State is a process's lifecycle state (spec.md §3).
type State int

const (
	Unused State = iota
	Ready
	Running
	Blocked
)

func (s State) String() string {
	switch s {
	case Unused:
		return "Unused"
	case Ready:
		return "Ready"
	case Running:
		return "Running"
	case Blocked:
		return "Blocked"
	default:
		return "Invalid"
	}
}

// Cooperator is the handle a ProgramFunc uses to give control back to the
// scheduler. Yield is the only suspension point a process has; it
// returns once the scheduler has resumed this process again.
type Cooperator struct {
	yield func()
}

// Yield suspends the calling program until the scheduler next resumes
// its slot. See SPEC_FULL.md §1/§5 for why this stands in for an
// arbitrary-point preemptive suspend on a host that cannot splice a
// goroutine's stack.
func (c *Cooperator) Yield() {
	c.yield()
}

// ProgramFunc is a process's entry point. It must call c.Yield() at
// every point it is willing to be preempted, and must return only when
// it intends the process to be killed (the runtime does not restart it).
type ProgramFunc func(c *Cooperator)

// Process is one process-table slot (spec.md §3).
type Process struct {
	State    State
	Program  ProgramFunc
	Priority uint8
	SP       int
	Checksum byte
	Stack    []byte

	entry uint16 // synthetic entry-point address, see entryAddr

	// age and timeSlice are strategy-private accounting fields. They are
	// zeroed by Exec and Kill in lifecycle.go and otherwise read and
	// written only by strategy.go, never by scheduler.go (SPEC_FULL.md §3: "a
	// strategy must not mutate process state").
	age       uint32
	timeSlice uint8
}

// bottom is the index of the last byte of a process's stack region —
// the highest-addressed byte, since the stack grows downward from here.
func (p *Process) bottom() int {
	return len(p.Stack) - 1
}

// IsRunnable reports whether p can be selected by a scheduling strategy
// (spec.md §4.5).
func (p *Process) IsRunnable() bool {
	return p.State == Ready || p.State == Running
}

// initFrame lays down the initial stack frame described in spec.md §3:
// a zeroed Context immediately below the two-byte entry address, filling
// the last frameSize bytes of the stack, with sp left at bottom-frameSize
// so that the live region [sp+1, bottom] is exactly the frame.
func (p *Process) initFrame() {
	p.entry = entryAddr(p.Program)
	var ctx Context // zero registers, zero status
	ctx.ReturnAddr = p.entry
	p.SP = p.bottom() - frameSize
	saveContext(p.Stack, p.SP, ctx)
}

// Table is the fixed process table plus current-process index (spec.md
// §4.2/§9 "Singleton scheduler state"). All mutation from user code must
// happen while the table's owning Scheduler holds a critical section;
// the scheduler ISR itself is the only other mutator.
type Table struct {
	Slots   [MaxProcesses]Process
	current int
}

// Slot returns a pointer to the process record for pid. The caller is
// responsible for the critical-section discipline documented on Table.
func (t *Table) Slot(pid int) *Process {
	return &t.Slots[pid]
}

// Current returns the pid of the currently running process.
func (t *Table) Current() int {
	return t.current
}
