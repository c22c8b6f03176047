//go:build !headless

package input

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// keyButtons maps a raw input byte to the button it stands in for: w/s
// for Up/Down, CR or LF for Enter, ESC for Escape, and Tab for the
// Up+Down chord. Grounded directly on terminal_host.go's raw-mode
// byte-reading loop and CR/DEL translation.
func keyButtons(b byte) Buttons {
	switch b {
	case 'w', 'W':
		return Up
	case 's', 'S':
		return Down
	case '\r', '\n':
		return Enter
	case 0x1b: // ESC
		return Escape
	case '\t':
		return Up | Down
	default:
		return 0
	}
}

// Terminal reads raw stdin in a background goroutine and exposes the
// most recently seen button as the current snapshot, grounded on
// terminal_host.go's TerminalHost (term.MakeRaw, non-blocking
// syscall.Read poll loop) combined with terminal_io.go's idea of a
// small mutex-guarded current-state buffer in place of a full ring
// buffer, since a button source only needs the latest sample.
type Terminal struct {
	mu      sync.Mutex
	current Buttons

	fd           int
	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	oldTermState *term.State
}

// NewTerminal puts stdin into raw, non-blocking mode and starts the
// polling goroutine. Call Stop to restore the terminal.
func NewTerminal() *Terminal {
	t := &Terminal{
		fd:     int(os.Stdin.Fd()),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
	t.start()
	return t
}

func (t *Terminal) start() {
	oldState, err := term.MakeRaw(t.fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "input: failed to set raw mode: %v\n", err)
		close(t.done)
		return
	}
	t.oldTermState = oldState

	if err := syscall.SetNonblock(t.fd, true); err != nil {
		fmt.Fprintf(os.Stderr, "input: failed to set nonblocking stdin: %v\n", err)
		_ = term.Restore(t.fd, t.oldTermState)
		close(t.done)
		return
	}

	go func() {
		defer close(t.done)
		buf := make([]byte, 1)
		for {
			select {
			case <-t.stopCh:
				return
			default:
			}
			n, err := syscall.Read(t.fd, buf)
			if n > 0 {
				if b := keyButtons(buf[0]); b != 0 {
					t.mu.Lock()
					t.current = b
					t.mu.Unlock()
				}
			}
			if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK || n == 0 {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			if err != nil {
				return
			}
		}
	}()
}

// Stop terminates the polling goroutine and restores the terminal.
func (t *Terminal) Stop() {
	t.stopped.Do(func() { close(t.stopCh) })
	<-t.done
	if t.oldTermState != nil {
		_ = term.Restore(t.fd, t.oldTermState)
		t.oldTermState = nil
	}
}

func (t *Terminal) Poll() Buttons {
	t.mu.Lock()
	defer t.mu.Unlock()
	b := t.current
	t.current = 0
	return b
}

func (t *Terminal) WaitForInput() Buttons {
	for {
		if b := t.Poll(); b != 0 {
			return b
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func (t *Terminal) WaitForNoInput() {
	for t.Poll() != 0 {
		time.Sleep(5 * time.Millisecond)
	}
}
