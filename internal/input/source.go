// Package input implements the button driver contract spec.md §6
// describes as an external collaborator, plus concrete backends.
package input

// Buttons is the 4-bit bitmask of currently-pressed buttons (spec.md §6
// "Button driver"). Bit assignment is this repo's own choice — the
// source spec leaves it to the implementer.
type Buttons uint8

const (
	Up Buttons = 1 << iota
	Down
	Enter
	Escape
)

// Chord is the fatal-error acknowledgement combination spec.md §9's
// first open question resolves to: ENTER+ESCAPE held together.
const Chord = Enter | Escape

// Source is the button driver contract: a debounced snapshot, and the
// two blocking waits the menu and fault-hook code need (spec.md §6).
type Source interface {
	Poll() Buttons
	WaitForInput() Buttons
	WaitForNoInput()
}
