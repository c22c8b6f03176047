//go:build !headless

package input

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Ebiten maps the four push buttons onto arrow keys plus Enter/Escape,
// grounded on video_backend_ebiten.go's inpututil.IsKeyJustPressed
// polling idiom. PollKeys must be called once per ebiten.Game.Update
// tick; Poll/WaitForInput/WaitForNoInput read the snapshot it produces.
type Ebiten struct {
	mu      sync.Mutex
	current Buttons
}

func NewEbiten() *Ebiten { return &Ebiten{} }

// PollKeys samples ebiten's key state. Call it from Update, on the
// render goroutine.
func (e *Ebiten) PollKeys() {
	var b Buttons
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		b |= Up
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		b |= Down
	}
	if ebiten.IsKeyPressed(ebiten.KeyEnter) {
		b |= Enter
	}
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		b |= Escape
	}
	// inpututil is used for the task-manager chord so a held key does
	// not re-trigger every frame.
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		b |= Up | Down
	}
	e.mu.Lock()
	e.current = b
	e.mu.Unlock()
}

func (e *Ebiten) Poll() Buttons {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

func (e *Ebiten) WaitForInput() Buttons {
	for {
		if b := e.Poll(); b != 0 {
			return b
		}
	}
}

func (e *Ebiten) WaitForNoInput() {
	for e.Poll() != 0 {
	}
}
