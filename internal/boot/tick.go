// Package boot arms whatever drives the scheduler's tick — a real-time
// ticker for the simulator front ends, or a manual single-step source
// for tests — and performs the bootstrap sequence of spec.md §4.9.
package boot

import (
	"sync"
	"time"

	"github.com/opencore/spos/internal/kernel"
)

// TickSource is the abstraction spec.md §4.9's "arms the timer" step
// targets. Grounded on the teacher's audio_backend_{oto,headless}.go
// pattern: one contract, a real implementation and a test double.
type TickSource interface {
	// Start begins calling tick() on the source's own schedule. It
	// returns immediately; call Stop to halt it.
	Start(tick func())
	Stop()
}

// RealTimeTicks drives tick() on a period derived from the documented
// prescaler(1024)/compare(60)@20MHz formula (spec.md §6), scaled to host
// wall-clock time via a time.Ticker.
type RealTimeTicks struct {
	Period time.Duration

	mu     sync.Mutex
	ticker *time.Ticker
	stop   chan struct{}
	done   chan struct{}
}

// NewRealTimeTicks returns a RealTimeTicks using kernel.TickPeriod if
// period is zero.
func NewRealTimeTicks(period time.Duration) *RealTimeTicks {
	if period == 0 {
		period = kernel.TickPeriod
	}
	return &RealTimeTicks{Period: period}
}

func (r *RealTimeTicks) Start(tick func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ticker != nil {
		return
	}
	r.ticker = time.NewTicker(r.Period)
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	ticker, stop, done := r.ticker, r.stop, r.done
	go func() {
		defer close(done)
		for {
			select {
			case <-ticker.C:
				tick()
			case <-stop:
				return
			}
		}
	}()
}

func (r *RealTimeTicks) Stop() {
	r.mu.Lock()
	if r.ticker == nil {
		r.mu.Unlock()
		return
	}
	ticker, stop, done := r.ticker, r.stop, r.done
	r.ticker = nil
	r.mu.Unlock()

	ticker.Stop()
	close(stop)
	<-done
}

// ManualTicks is a test double that calls tick() exactly once per Step
// call. It is used by this package's tests; the kernel's scenario tests
// call Scheduler.Tick directly.
type ManualTicks struct {
	tick func()
}

func (m *ManualTicks) Start(tick func()) { m.tick = tick }
func (m *ManualTicks) Stop()             { m.tick = nil }

// Step invokes the armed tick function once, synchronously.
func (m *ManualTicks) Step() {
	if m.tick != nil {
		m.tick()
	}
}

// StartScheduler implements spec.md §4.9's bootstrap sequence: arm src
// so its ticks drive sched.Tick, then return — from this point on all
// scheduling happens via src's callback.
func StartScheduler(sched *kernel.Scheduler, src TickSource) {
	src.Start(sched.Tick)
}
