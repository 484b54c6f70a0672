package consoleout

import "io"

// NullOutputDriver discards console output.  The CLI tests select it so
// that dispatch results are the only thing written to stdout.
type NullOutputDriver struct{}

// GetName returns "null".
func (no *NullOutputDriver) GetName() string {
	return "null"
}

// PutCharacter discards c.
func (no *NullOutputDriver) PutCharacter(c uint8) {}

// SetWriter is ignored, there is nothing to write.
func (no *NullOutputDriver) SetWriter(w io.Writer) {}

func init() {
	Register("null", func() ConsoleOutput {
		return new(NullOutputDriver)
	})
}
