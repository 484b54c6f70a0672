// This file implements the extended error functions.

package dos

import (
	"log/slog"

	"github.com/skx/dosk/exterr"
	"github.com/skx/dosk/registers"
)

// GetExtendedError returns the extended error record.  AX holds the
// code, BH the class, BL the suggested action and CH the locus.
func GetExtendedError(k *Kernel, b *registers.Bank) error {
	rec := k.Errors.Current()

	b.AX = registers.Reg(rec.Code)
	b.SetBH(uint8(rec.Class))
	b.SetBL(uint8(rec.Action))
	b.SetCH(uint8(rec.Locus))
	return nil
}

// SetExtendedError replaces the extended error record with the one at
// SS:SI.  Fields holding FFh are left as they were.
func SetExtendedError(k *Kernel, b *registers.Bank) error {
	addr := registers.FarPointer(b.SS, b.SI)

	data, err := k.Memory.GetRange(addr, exterr.WireSize)
	if err != nil {
		k.Logger.Warn("bad error record pointer",
			slog.String("address", addr.String()),
			slog.String("error", err.Error()))
		k.Errors.Report(errFault)
		return nil
	}

	rec, err := exterr.Decode(data)
	if err != nil {
		k.Errors.Report(errFault)
		return nil
	}

	k.Errors.Set(rec, 0)
	return nil
}
