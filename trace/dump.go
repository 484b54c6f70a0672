package trace

import (
	"fmt"
	"io"
	"strings"

	"github.com/mgutz/ansi"
	"github.com/pkg/errors"

	"github.com/skx/dosk/registers"
)

var (
	chNew   = ansi.ColorCode("default+bu:default")
	chError = ansi.ColorCode("red+b:default")
)

// Dump prints every frame of the trace.  When color is set the registers
// a call changed are highlighted, otherwise they are marked with "*".
func Dump(w io.Writer, r *Reader, color bool) error {
	for n := 0; ; n++ {
		frame, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "frame %d", n)
		}

		fmt.Fprintf(w, "#%d INT %02Xh AX=%04Xh\n", n, frame.Interrupt, uint16(frame.Before[0]))
		fmt.Fprintln(w, "  "+frame.Registers(color))
		if frame.Err != "" {
			msg := frame.Err
			if color {
				msg = chError + msg + ansi.Reset
			}
			fmt.Fprintln(w, "  "+msg)
		}
	}
}

// Registers formats the registers after the call.
func (f *Frame) Registers(color bool) string {
	parts := make([]string, len(registers.Names))
	for i, name := range registers.Names {
		val := fmt.Sprintf("%04X", f.After[i])
		switch {
		case !f.Changed(i):
		case color:
			val = chNew + val + ansi.Reset
		default:
			val += "*"
		}
		parts[i] = name + "=" + val
	}
	return strings.Join(parts, " ")
}
