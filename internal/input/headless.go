package input

import (
	"sync"
	"time"
)

// Headless is driven programmatically: tests and the fault-hook test
// suite call Set to simulate a button press rather than reading real
// hardware or a window's keyboard events.
type Headless struct {
	mu      sync.Mutex
	current Buttons
}

func NewHeadless() *Headless { return &Headless{} }

// Set overwrites the simulated button state.
func (h *Headless) Set(b Buttons) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = b
}

func (h *Headless) Poll() Buttons {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

func (h *Headless) WaitForInput() Buttons {
	for {
		if b := h.Poll(); b != 0 {
			return b
		}
		time.Sleep(time.Millisecond)
	}
}

func (h *Headless) WaitForNoInput() {
	for h.Poll() != 0 {
		time.Sleep(time.Millisecond)
	}
}
