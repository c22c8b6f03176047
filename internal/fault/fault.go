// Package fault implements the fatal-error hook contract of spec.md §6:
// display the message, alert the user, and block until acknowledgement,
// preserving the caller's interrupt-enable state across the call.
package fault

import (
	"github.com/opencore/spos/internal/display"
	"github.com/opencore/spos/internal/input"
	"github.com/opencore/spos/internal/kernel"
)

// Toner plays the audible alert that accompanies a fatal error,
// grounded on audio_backend_{oto,headless}.go's dual real/headless
// implementation of one small contract.
type Toner interface {
	Alert()
}

// Raise implements spec.md §6's fatal-error hook: render kind and detail
// to disp, sound tone, then block on in until the ENTER+ESCAPE chord is
// observed (spec.md §9's first open question, resolved to exactly this
// contract and no more). sched's GIEB is read and written back
// unchanged around the call, matching §7's "must restore the
// interrupt-enable bit seen on entry."
func Raise(sched *kernel.Scheduler, err *kernel.FatalError, disp display.Sink, in input.Source, tone Toner) {
	giebOnEntry := sched.GIEB

	disp.Clear()
	disp.Goto(0, 0)
	disp.WriteString("FATAL: " + err.Error())
	disp.Goto(1, 0)
	disp.WriteString("ENTER+ESC to ack")

	tone.Alert()

	in.WaitForNoInput()
	for in.WaitForInput()&input.Chord != input.Chord {
	}
	in.WaitForNoInput()

	sched.GIEB = giebOnEntry
}
