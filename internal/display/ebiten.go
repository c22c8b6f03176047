//go:build !headless

package display

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// cellWidth/cellHeight are the pixel footprint of one character cell,
// grounded on video_backend_ebiten.go's fixed-scale pixel-grid
// rendering approach.
const (
	cellWidth  = 8
	cellHeight = 12
)

// Ebiten renders the 2x16 character grid as an ebiten.Game, grounded on
// video_backend_ebiten.go's Update/Draw/Layout triad and frameBuffer
// mutex discipline.
type Ebiten struct {
	mu     sync.Mutex
	grid   [Rows][Cols]byte
	row    int
	col    int
	glyphs map[int][8]byte

	Title string
}

// NewEbiten returns an Ebiten display backend with the grid cleared to
// spaces.
func NewEbiten() *Ebiten {
	e := &Ebiten{glyphs: make(map[int][8]byte), Title: "SPOS"}
	e.Clear()
	return e
}

func (e *Ebiten) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			e.grid[r][c] = ' '
		}
	}
	e.row, e.col = 0, 0
}

func (e *Ebiten) Goto(row, col int) error {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return ErrOutOfBounds
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.row, e.col = row, col
	return nil
}

func (e *Ebiten) WriteByte(b byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.row >= Rows {
		return ErrOutOfBounds
	}
	e.grid[e.row][e.col] = b
	e.col++
	if e.col >= Cols {
		e.col = 0
		e.row++
	}
	return nil
}

func (e *Ebiten) WriteString(s string) error {
	for i := 0; i < len(s); i++ {
		if err := e.WriteByte(s[i]); err != nil {
			return err
		}
	}
	return nil
}

func (e *Ebiten) DefineGlyph(slot int, rows [8]byte) error {
	if slot < 0 || slot > 7 {
		return ErrOutOfBounds
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.glyphs[slot] = rows
	return nil
}

// Update implements ebiten.Game. The display has no per-frame state of
// its own; all mutation comes from Sink calls made by kernel/taskmgr
// code running on a separate goroutine.
func (e *Ebiten) Update() error { return nil }

// Draw implements ebiten.Game, painting the current grid as a monospace
// block font.
func (e *Ebiten) Draw(screen *ebiten.Image) {
	e.mu.Lock()
	defer e.mu.Unlock()
	screen.Fill(color.Black)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			ch := e.grid[r][c]
			if ch == 0 {
				ch = ' '
			}
			ebitenutil.DebugPrintAt(screen, string(ch), c*cellWidth, r*cellHeight)
		}
	}
}

// Layout implements ebiten.Game, sizing the window to the character
// grid.
func (e *Ebiten) Layout(outsideWidth, outsideHeight int) (int, int) {
	return Cols * cellWidth, Rows * cellHeight
}
