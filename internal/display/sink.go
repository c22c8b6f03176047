// Package display implements the LCD sink contract spec.md §6 describes
// as an external collaborator, plus concrete backends.
package display

import "fmt"

// Rows and Cols are the fixed geometry of the target's 2x16 character
// LCD (spec.md §1).
const (
	Rows = 2
	Cols = 16
)

// Sink is the character-LCD contract: byte write, clear, cursor-goto,
// and custom-glyph definition (spec.md §6 "Character-LCD sink").
type Sink interface {
	Clear()
	Goto(row, col int) error
	WriteByte(b byte) error
	WriteString(s string) error
	DefineGlyph(slot int, rows [8]byte) error
}

// ErrOutOfBounds is returned by Goto and DefineGlyph for coordinates or
// slots outside the device's addressable range.
var ErrOutOfBounds = fmt.Errorf("display: coordinate or slot out of bounds")
