// drv_term.go uses the Termbox library to handle console-based input.
//
// A goroutine is launched which collects any keyboard input and saves
// that to a buffer where it can be peeled off on-demand.

package consolein

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/nsf/termbox-go"
	"golang.org/x/term"
)

// TermboxInput is our input-driver, using termbox
type TermboxInput struct {

	// oldState contains the state of the terminal, before switching to RAW mode
	oldState *term.State

	// cancel stops our polling goroutine
	cancel context.CancelFunc

	// mu guards keyBuffer
	mu sync.Mutex

	// keyBuffer builds up keys read "in the background", via termbox
	keyBuffer []byte
}

// Setup ensures that the termbox init functions are called, and our
// terminal is set into RAW mode.
func (ti *TermboxInput) Setup() error {

	var err error

	// switch STDIN into 'raw' mode - we must do this before
	// we setup termbox.
	ti.oldState, err = term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("error making raw terminal %w", err)
	}

	if err = termbox.Init(); err != nil {
		return fmt.Errorf("error initializing termbox %w", err)
	}

	// This is "Show Cursor" which termbox hides by default.
	fmt.Printf("\x1b[?25h")

	ctx, cancel := context.WithCancel(context.Background())
	ti.cancel = cancel

	go ti.pollKeyboard(ctx)
	return nil
}

// pollKeyboard runs in a goroutine and collects keyboard input
// into a buffer where it will be read from in the future.
func (ti *TermboxInput) pollKeyboard(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		switch ev := termbox.PollEvent(); ev.Type {
		case termbox.EventKey:
			ti.mu.Lock()
			if ev.Ch != 0 {
				ti.keyBuffer = append(ti.keyBuffer, []byte(string(ev.Ch))...)
			} else {
				ti.keyBuffer = append(ti.keyBuffer, byte(ev.Key))
			}
			ti.mu.Unlock()
		}
	}
}

// TearDown stops the background polling and restores the terminal.
func (ti *TermboxInput) TearDown() error {
	if ti.cancel != nil {
		ti.cancel()
		termbox.Close()
	}

	if ti.oldState != nil {
		return term.Restore(int(os.Stdin.Fd()), ti.oldState)
	}
	return nil
}

// PendingInput returns true if keys have been collected.
func (ti *TermboxInput) PendingInput() bool {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	return len(ti.keyBuffer) > 0
}

// BlockForCharacterNoEcho returns the next character from the console,
// blocking until one is available.
func (ti *TermboxInput) BlockForCharacterNoEcho() (byte, error) {
	for {
		ti.mu.Lock()
		if len(ti.keyBuffer) > 0 {
			c := ti.keyBuffer[0]
			ti.keyBuffer = ti.keyBuffer[1:]
			ti.mu.Unlock()
			return c, nil
		}
		ti.mu.Unlock()

		time.Sleep(1 * time.Millisecond)
	}
}

// GetName is part of the module API, and returns the name of this driver.
func (ti *TermboxInput) GetName() string {
	return "term"
}

// init registers our driver, by name.
func init() {
	Register("term", func() ConsoleInput {
		return new(TermboxInput)
	})
}
