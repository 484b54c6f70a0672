package registers

import "fmt"

// Address is a flat host address.
//
// Segment:offset pairs collapse to their offset, the segment part is
// always zero on a flat host.
type Address uint64

// FarPointer builds an address from a segment and an offset.  The segment
// is ignored.
func FarPointer(seg, off Reg) Address {
	return Address(off)
}

// Segment returns the segment part of an address, which is always zero.
func Segment(a Address) Reg {
	return 0
}

// Offset returns the offset part of an address.
func Offset(a Address) Reg {
	return Reg(a)
}

// String formats the address as hex.
func (a Address) String() string {
	return fmt.Sprintf("0x%08X", uint64(a))
}

// Regs is the general register group of the split calling convention.
type Regs struct {
	AX, BX, CX, DX Reg
	SI, DI         Reg

	// CFlag is non-zero when the call failed.
	CFlag uint64
}

// SRegs is the segment register group of the split calling convention.
type SRegs struct {
	ES, CS, SS, DS Reg
}

// Load copies the split register groups into the bank. A nil seg leaves
// the segment registers untouched.
func (b *Bank) Load(in *Regs, seg *SRegs) {
	b.AX, b.BX, b.CX, b.DX = in.AX, in.BX, in.CX, in.DX
	b.SI, b.DI = in.SI, in.DI
	b.SetCarry(in.CFlag != 0)

	if seg != nil {
		b.ES, b.CS, b.SS, b.DS = seg.ES, seg.CS, seg.SS, seg.DS
	}
}

// Store copies the bank out into the split register groups.  A nil seg
// is skipped.
func (b *Bank) Store(out *Regs, seg *SRegs) {
	out.AX, out.BX, out.CX, out.DX = b.AX, b.BX, b.CX, b.DX
	out.SI, out.DI = b.SI, b.DI
	out.CFlag = 0
	if b.Carry() {
		out.CFlag = 1
	}

	if seg != nil {
		seg.ES, seg.CS, seg.SS, seg.DS = b.ES, b.CS, b.SS, b.DS
	}
}
