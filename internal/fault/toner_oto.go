//go:build !headless

package fault

import (
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// beepTone is a short square-wave beep generator implementing io.Reader,
// grounded on audio_backend_oto.go's OtoPlayer.Read sample-fill loop
// (adapted from reading a running chip's ring buffer to synthesizing a
// fixed-length tone and then emitting silence).
type beepTone struct {
	sampleRate int
	freq       float64
	remaining  int // samples of tone left to emit
	phase      float64
}

func (b *beepTone) Read(p []byte) (int, error) {
	n := len(p) / 4
	for i := 0; i < n; i++ {
		var v float32
		if b.remaining > 0 {
			if math.Sin(b.phase) >= 0 {
				v = 0.2
			} else {
				v = -0.2
			}
			b.phase += 2 * math.Pi * b.freq / float64(b.sampleRate)
			b.remaining--
		}
		bits := math.Float32bits(v)
		p[i*4+0] = byte(bits)
		p[i*4+1] = byte(bits >> 8)
		p[i*4+2] = byte(bits >> 16)
		p[i*4+3] = byte(bits >> 24)
	}
	return n * 4, nil
}

// OtoToner plays a short square-wave beep through
// github.com/ebitengine/oto/v3 — the teacher's own audio dependency,
// reused here for the fault hook's alert tone (spec.md §6) instead of
// introducing a new one.
type OtoToner struct {
	mu  sync.Mutex
	ctx *oto.Context
}

// NewToner opens an oto context at a fixed sample rate. Errors opening
// the audio device are swallowed — a simulator that cannot beep should
// still show the fatal-error text and block for acknowledgement.
func NewToner() Toner {
	const sampleRate = 44100
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4096,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return noopToner{}
	}
	<-ready
	return &OtoToner{ctx: ctx}
}

func (t *OtoToner) Alert() {
	t.mu.Lock()
	defer t.mu.Unlock()
	const sampleRate = 44100
	tone := &beepTone{sampleRate: sampleRate, freq: 880, remaining: sampleRate / 4}
	player := t.ctx.NewPlayer(tone)
	player.Play()
	time.Sleep(300 * time.Millisecond)
	player.Close()
}

type noopToner struct{}

func (noopToner) Alert() {}
