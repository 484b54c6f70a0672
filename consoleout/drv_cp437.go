package consoleout

import (
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
)

// CP437OutputDriver translates the IBM PC character set into UTF-8, so
// box-drawing and accented characters show up on a modern terminal.
type CP437OutputDriver struct {

	// escape is set after an ESC, and stays set until the final byte
	// of the sequence.  Sequences are passed through untranslated.
	escape bool

	// writer is where we send our output
	writer io.Writer
}

// GetName returns the name of this driver.
//
// This is part of the OutputDriver interface.
func (cp *CP437OutputDriver) GetName() string {
	return "cp437"
}

// PutCharacter writes the character to the console.
//
// This is part of the OutputDriver interface.
func (cp *CP437OutputDriver) PutCharacter(c uint8) {

	switch {
	case cp.escape:
		// "ESC [" opens a control sequence, which ends with a byte
		// in the range '@'..'~'.
		if c != '[' && c >= '@' && c <= '~' {
			cp.escape = false
		}
		cp.write([]byte{c})
		return
	case c == 0x1B:
		cp.escape = true
		cp.write([]byte{c})
		return
	case c < 0x80:
		cp.write([]byte{c})
		return
	}

	r := charmap.CodePage437.DecodeByte(c)
	cp.write([]byte(string(r)))
}

// write sends bytes to our writer, ignoring failures.
func (cp *CP437OutputDriver) write(b []byte) {
	cp.writer.Write(b) //nolint:errcheck
}

// SetWriter will update the writer.
func (cp *CP437OutputDriver) SetWriter(w io.Writer) {
	cp.writer = w
}

// init registers our driver, by name.
func init() {
	Register("cp437", func() ConsoleOutput {
		return &CP437OutputDriver{
			writer: os.Stdout,
		}
	})
}
