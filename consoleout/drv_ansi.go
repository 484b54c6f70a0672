package consoleout

import (
	"io"
	"os"
)

// AnsiOutputDriver passes bytes written by 02h and 09h straight to the
// terminal, which is left to interpret any escape sequences.
type AnsiOutputDriver struct {
	writer io.Writer
}

// GetName returns "ansi".
func (ad *AnsiOutputDriver) GetName() string {
	return "ansi"
}

// PutCharacter writes c unchanged.  Write errors are dropped, the DOS
// character output calls have no way to report them.
func (ad *AnsiOutputDriver) PutCharacter(c uint8) {
	ad.writer.Write([]byte{c}) //nolint:errcheck
}

// SetWriter redirects the output.
func (ad *AnsiOutputDriver) SetWriter(w io.Writer) {
	ad.writer = w
}

func init() {
	Register("ansi", func() ConsoleOutput {
		return &AnsiOutputDriver{writer: os.Stdout}
	})
}
