// This file implements the disk transfer area, and the directory search
// functions which report through it.

package dos

import (
	"log/slog"

	"github.com/skx/dosk/dta"
	"github.com/skx/dosk/exterr"
	"github.com/skx/dosk/registers"
)

// SetDTA makes DS:DX the disk transfer area.
//
// Each address gets its own search cursor, so a program which switches
// between areas keeps independent searches going.
func SetDTA(k *Kernel, b *registers.Bank) error {
	addr := registers.FarPointer(b.DS, b.DX)

	k.mu.Lock()
	c, ok := k.dtas[addr]
	if !ok {
		c = new(dta.Cursor)
		k.dtas[addr] = c
	}
	k.dtaAddr = addr
	k.mu.Unlock()

	k.Enumerator.SetDTA(c)
	return nil
}

// GetDTA returns the disk transfer area in ES:BX.
func GetDTA(k *Kernel, b *registers.Bank) error {
	k.mu.Lock()
	addr := k.dtaAddr
	k.mu.Unlock()

	b.ES = registers.Segment(addr)
	b.BX = registers.Offset(addr)
	return nil
}

// FindFirst starts a search for the pattern at DS:DX, with the attribute
// filter in CX.  The first match is written to the disk transfer area.
func FindFirst(k *Kernel, b *registers.Bank) error {
	pattern, ok := k.path(b)
	if !ok {
		return nil
	}

	code := k.Enumerator.FindFirst(pattern, dta.Attr(b.CX.Lo()))
	b.Result(uint64(code))
	if code == exterr.CodeNone {
		k.storeDTA()
	}
	return nil
}

// FindNext continues the search in the disk transfer area.
func FindNext(k *Kernel, b *registers.Bank) error {
	code := k.Enumerator.FindNext()
	b.Result(uint64(code))
	if code == exterr.CodeNone {
		k.storeDTA()
	}
	return nil
}

// storeDTA lays the current match out at the DTA address, if that
// address is visible to the kernel.
func (k *Kernel) storeDTA() {
	k.mu.Lock()
	addr := k.dtaAddr
	k.mu.Unlock()

	data, err := k.Enumerator.DTA().Encode()
	if err == nil {
		err = k.Memory.SetRange(addr, data...)
	}
	if err != nil {
		k.Logger.Warn("failed to store DTA",
			slog.String("address", addr.String()),
			slog.String("error", err.Error()))
	}
}
