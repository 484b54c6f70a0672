//go:build unix

// drv_stty creates a console input-driver which uses the `stty` binary to
// turn off terminal echo, and reads single characters in raw mode.
//
// When STDIN is not a terminal, a pipe or a redirected file, characters
// are read directly with no terminal handling at all.

package consolein

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// EchoStatus is used to record our current state.
type EchoStatus int

var (
	// Unknown means we don't know the status of echo/noecho
	Unknown EchoStatus = 0

	// Echo means that input will echo characters.
	Echo EchoStatus = 1

	// NoEcho means that input will not echo characters.
	NoEcho EchoStatus = 2
)

// STTYInput is an input-driver that executes the 'stty' binary to
// disable the terminal echo, since the kernel echoes characters itself
// through the output driver.
//
// Running stty is slow, so we keep track of the echo state to minimise
// the executions.
type STTYInput struct {

	// state holds our state
	state EchoStatus

	// tty is true if STDIN is a terminal.
	tty bool
}

// Setup records whether STDIN is a terminal.
func (si *STTYInput) Setup() error {
	fd := os.Stdin.Fd()
	si.tty = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return nil
}

// TearDown resets the state of the terminal.
func (si *STTYInput) TearDown() error {
	if si.tty && si.state == NoEcho {
		return si.enableEcho()
	}
	return nil
}

// PendingInput returns true if there is pending input from STDIN.
func (si *STTYInput) PendingInput() bool {
	if !si.tty {
		return canSelect()
	}

	// switch stdin into 'raw' mode, so select sees single keystrokes
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return false
	}

	res := canSelect()

	// restore the state of the terminal to avoid mixing RAW/Cooked
	if err = term.Restore(int(os.Stdin.Fd()), oldState); err != nil {
		return false
	}
	return res
}

// BlockForCharacterNoEcho returns the next character from the console,
// blocking until one is available.
func (si *STTYInput) BlockForCharacterNoEcho() (byte, error) {
	b := make([]byte, 1)

	if !si.tty {
		if _, err := os.Stdin.Read(b); err != nil {
			return 0x00, err
		}
		return b[0], nil
	}

	if si.state != NoEcho {
		if err := si.disableEcho(); err != nil {
			return 0x00, err
		}
	}

	// switch stdin into 'raw' mode
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return 0x00, fmt.Errorf("error making raw terminal %w", err)
	}

	// read only a single byte
	_, err = os.Stdin.Read(b)

	// restore the state of the terminal to avoid mixing RAW/Cooked
	if rerr := term.Restore(int(os.Stdin.Fd()), oldState); rerr != nil && err == nil {
		err = fmt.Errorf("error restoring terminal state %w", rerr)
	}
	if err != nil {
		return 0x00, err
	}
	return b[0], nil
}

// disableEcho is the single place where we disable echoing.
func (si *STTYInput) disableEcho() error {
	if err := exec.Command("stty", "-F", "/dev/tty", "-echo").Run(); err != nil {
		return fmt.Errorf("failed to disable echo %w", err)
	}
	si.state = NoEcho
	return nil
}

// enableEcho is the single place where we enable echoing.
func (si *STTYInput) enableEcho() error {
	if err := exec.Command("stty", "-F", "/dev/tty", "echo").Run(); err != nil {
		return fmt.Errorf("failed to enable echo %w", err)
	}
	si.state = Echo
	return nil
}

// GetName is part of the module API, and returns the name of this driver.
func (si *STTYInput) GetName() string {
	return "stty"
}

// init registers our driver, by name.
func init() {
	Register("stty", func() ConsoleInput {
		return new(STTYInput)
	})
}
