// This file implements the character I/O functions.

package dos

import (
	"log/slog"

	"github.com/skx/dosk/registers"
)

// readChar blocks for a character.  A failed read is recorded, and gives
// a NUL character.
func (k *Kernel) readChar() (byte, bool) {
	c, err := k.input.BlockForCharacterNoEcho()
	if err != nil {
		k.Logger.Warn("console read failed",
			slog.String("driver", k.input.GetName()),
			slog.String("error", err.Error()))
		k.Errors.Report(err)
		return 0x00, false
	}
	return c, true
}

// ReadCharEcho reads a single character from the console, echoing it.
//
// AL receives the character.
func ReadCharEcho(k *Kernel, b *registers.Bank) error {
	c, ok := k.readChar()
	if ok {
		k.output.PutCharacter(c)
	}
	b.SetAL(c)
	return nil
}

// ReadChar reads a single character from the console, without echo.
//
// AL receives the character.
func ReadChar(k *Kernel, b *registers.Bank) error {
	c, _ := k.readChar()
	b.SetAL(c)
	return nil
}

// WriteChar writes the character in DL to the console.
func WriteChar(k *Kernel, b *registers.Bank) error {
	k.output.PutCharacter(b.DL())
	b.SetAL(b.DL())
	return nil
}

// WriteString writes the "$"-terminated string at DS:DX to the console.
func WriteString(k *Kernel, b *registers.Bank) error {
	s, err := k.Memory.ReadString(registers.FarPointer(b.DS, b.DX), '$')
	if err != nil {
		k.Logger.Warn("bad string pointer",
			slog.String("address", registers.FarPointer(b.DS, b.DX).String()),
			slog.String("error", err.Error()))
		k.Errors.Report(errFault)
		return nil
	}

	k.output.PutString(s)
	b.SetAL('$')
	return nil
}
