// This file implements the memory allocation functions.

package dos

import (
	"github.com/skx/dosk/exterr"
	"github.com/skx/dosk/registers"
)

// AllocMem allocates BX paragraphs.  AX receives the segment, or on
// failure the error code, with BX the number of paragraphs available.
func AllocMem(k *Kernel, b *registers.Bank) error {
	h, avail, code := k.Segments.Allocate(uint64(b.BX))
	if code != exterr.CodeNone {
		b.Result(uint64(code))
		b.BX = registers.Reg(avail)
		return nil
	}
	succeed(b, uint64(h))
	return nil
}

// FreeMem releases the segment in ES.
func FreeMem(k *Kernel, b *registers.Bank) error {
	b.Result(uint64(k.Segments.Free(registers.Address(b.ES))))
	return nil
}

// SetBlock resizes the segment in ES to BX paragraphs.  On failure BX
// receives the number of paragraphs available.
func SetBlock(k *Kernel, b *registers.Bank) error {
	avail, code := k.Segments.Resize(registers.Address(b.ES), uint64(b.BX))
	b.Result(uint64(code))
	if code != exterr.CodeNone {
		b.BX = registers.Reg(avail)
	}
	return nil
}
