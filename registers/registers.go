// Package registers contains the register image which callers fill in
// before raising an interrupt, and which the kernel updates with the
// results.
//
// Each register is a full machine word, wide enough to hold a flat host
// address, with the classic 8-bit views (AH/AL, BH/BL, ..) computed by
// accessors rather than overlapping storage.
package registers

// Reg is a single register.
type Reg uint64

// Lo returns the low byte of the register.
func (r Reg) Lo() uint8 {
	return uint8(r & 0xFF)
}

// Hi returns the high byte of the register.
func (r Reg) Hi() uint8 {
	return uint8((r >> 8) & 0xFF)
}

// U16 returns the low word of the register.
func (r Reg) U16() uint16 {
	return uint16(r & 0xFFFF)
}

// SetLo replaces the low byte, leaving the rest of the register alone.
func (r *Reg) SetLo(v uint8) {
	*r = (*r &^ 0xFF) | Reg(v)
}

// SetHi stores the high byte.
//
// The high byte view covers everything above the low byte, so a wide
// value such as an address loses its upper bits, exactly as writing AH
// after loading a pointer into AX would.
func (r *Reg) SetHi(v uint8) {
	*r = Reg(v)<<8 | (*r & 0xFF)
}

// SetU16 stores a 16-bit value, clearing any wider bits.
func (r *Reg) SetU16(v uint16) {
	*r = Reg(v)
}

// FlagCarry is the bit of the flag word which is set when an operation
// failed, and AX holds an error code.
const FlagCarry = 0x0001

// Bank is the unified register bank, used by the single-structure
// calling convention.
type Bank struct {
	AX, BX, CX, DX Reg
	SI, DI, BP, SP Reg
	IP             Reg

	// Segment registers are kept for the sake of the calling
	// convention, but they are never dereferenced.
	CS, DS, ES, SS Reg

	Flags uint64
}

// AH returns the high byte of AX.
func (b *Bank) AH() uint8 { return b.AX.Hi() }

// AL returns the low byte of AX.
func (b *Bank) AL() uint8 { return b.AX.Lo() }

// BH returns the high byte of BX.
func (b *Bank) BH() uint8 { return b.BX.Hi() }

// BL returns the low byte of BX.
func (b *Bank) BL() uint8 { return b.BX.Lo() }

// CH returns the high byte of CX.
func (b *Bank) CH() uint8 { return b.CX.Hi() }

// CL returns the low byte of CX.
func (b *Bank) CL() uint8 { return b.CX.Lo() }

// DH returns the high byte of DX.
func (b *Bank) DH() uint8 { return b.DX.Hi() }

// DL returns the low byte of DX.
func (b *Bank) DL() uint8 { return b.DX.Lo() }

// SetAH updates the high byte of AX.
func (b *Bank) SetAH(v uint8) { b.AX.SetHi(v) }

// SetAL updates the low byte of AX.
func (b *Bank) SetAL(v uint8) { b.AX.SetLo(v) }

// SetBH updates the high byte of BX.
func (b *Bank) SetBH(v uint8) { b.BX.SetHi(v) }

// SetBL updates the low byte of BX.
func (b *Bank) SetBL(v uint8) { b.BX.SetLo(v) }

// SetCH updates the high byte of CX.
func (b *Bank) SetCH(v uint8) { b.CX.SetHi(v) }

// SetCL updates the low byte of CX.
func (b *Bank) SetCL(v uint8) { b.CX.SetLo(v) }

// SetDH updates the high byte of DX.
func (b *Bank) SetDH(v uint8) { b.DX.SetHi(v) }

// SetDL updates the low byte of DX.
func (b *Bank) SetDL(v uint8) { b.DX.SetLo(v) }

// Carry reports whether the carry flag is set.
func (b *Bank) Carry() bool {
	return b.Flags&FlagCarry != 0
}

// SetCarry sets, or clears, the carry flag.
func (b *Bank) SetCarry(set bool) {
	if set {
		b.Flags |= FlagCarry
	} else {
		b.Flags &^= FlagCarry
	}
}

// Result stores a result code in AX, setting the carry flag if the code
// is non-zero.  This is the convention almost every service follows.
func (b *Bank) Result(code uint64) {
	b.AX = Reg(code)
	b.SetCarry(code != 0)
}

// Names holds the register names in the order Values returns them.
var Names = []string{
	"AX", "BX", "CX", "DX", "SI", "DI", "BP", "SP", "IP",
	"CS", "DS", "ES", "SS", "FLAGS",
}

// Values returns the register contents, in the order given by Names.
func (b *Bank) Values() []uint64 {
	return []uint64{
		uint64(b.AX), uint64(b.BX), uint64(b.CX), uint64(b.DX),
		uint64(b.SI), uint64(b.DI), uint64(b.BP), uint64(b.SP),
		uint64(b.IP),
		uint64(b.CS), uint64(b.DS), uint64(b.ES), uint64(b.SS),
		b.Flags,
	}
}

// Lookup returns a pointer to the named register, allowing callers to
// set registers by name.  The name is case-sensitive and uses the
// upper-case forms in Names, FLAGS excepted.
func (b *Bank) Lookup(name string) *Reg {
	switch name {
	case "AX":
		return &b.AX
	case "BX":
		return &b.BX
	case "CX":
		return &b.CX
	case "DX":
		return &b.DX
	case "SI":
		return &b.SI
	case "DI":
		return &b.DI
	case "BP":
		return &b.BP
	case "SP":
		return &b.SP
	case "IP":
		return &b.IP
	case "CS":
		return &b.CS
	case "DS":
		return &b.DS
	case "ES":
		return &b.ES
	case "SS":
		return &b.SS
	}
	return nil
}
