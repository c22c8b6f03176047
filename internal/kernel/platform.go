package kernel

import "reflect"

// registerCount is the number of general-purpose register bytes saved
// and restored around a context switch (spec.md §4.1/§3: "33 zero bytes,
// one per general register, plus a zero for the status/flags byte" —
// realized here as 32 general registers + 1 status byte, so that the
// full saved frame, including the 2-byte return address, is exactly 35
// bytes as scenario 2 requires).
const registerCount = 32

// Context is the register file plus status/flags byte saved and
// restored around preemption (spec.md glossary: "Context").
type Context struct {
	Registers  [registerCount]byte
	Status     byte
	ReturnAddr uint16
}

// frameSize is the number of stack bytes one saved Context occupies:
// registerCount register bytes, one status byte, two return-address
// bytes.
const frameSize = registerCount + 1 + 2

// entryAddr derives a stable, deterministic 16-bit stand-in for a
// program's "entry-point address" from its closure's code pointer. Two
// calls with the same ProgramFunc value yield the same result, which is
// all the initial-frame layout (spec.md §3) requires on a host that has
// no real addressable entry point to encode.
func entryAddr(p ProgramFunc) uint16 {
	return uint16(reflect.ValueOf(p).Pointer())
}

// saveContext serializes ctx into stack at the frame occupying
// [sp+1, sp+frameSize], matching the push order documented in spec.md
// §4.1: registers, then status, then (for the ISR's use) the return
// address is already on the stack beneath them. It returns the new sp
// (the address, i.e. index, of the most recently pushed byte).
func saveContext(stack []byte, sp int, ctx Context) int {
	i := sp
	for _, b := range ctx.Registers {
		i++
		stack[i] = b
	}
	i++
	stack[i] = ctx.Status
	i++
	stack[i] = byte(ctx.ReturnAddr >> 8)
	i++
	stack[i] = byte(ctx.ReturnAddr)
	return i
}

// restoreContext deserializes the Context occupying [sp-frameSize+1, sp]
// and returns the popped sp.
func restoreContext(stack []byte, sp int) (Context, int) {
	var ctx Context
	i := sp
	ctx.ReturnAddr = uint16(stack[i-1])<<8 | uint16(stack[i])
	i -= 2
	ctx.Status = stack[i]
	i--
	for k := registerCount - 1; k >= 0; k-- {
		ctx.Registers[k] = stack[i]
		i--
	}
	return ctx, i
}

// WithInterruptsDisabled runs f with the scheduler tick masked, restoring
// the prior mask state on every exit path (spec.md §4.1). Unlike
// EnterCritical/LeaveCritical, it neither reads nor changes the
// critical-section depth counter; it sets the tick mask directly.
func WithInterruptsDisabled(sched *Scheduler, f func()) {
	prev := sched.tickMasked
	sched.tickMasked = true
	defer func() { sched.tickMasked = prev }()
	f()
}
