package registers

import "testing"

// TestByteViews ensures the byte views alias the word registers.
func TestByteViews(t *testing.T) {

	b := Bank{}

	b.SetAH(0x4E)
	b.SetAL(0x01)
	if b.AX != 0x4E01 {
		t.Fatalf("AX was %04X", b.AX)
	}
	if b.AH() != 0x4E || b.AL() != 0x01 {
		t.Fatalf("byte views wrong %02X %02X", b.AH(), b.AL())
	}

	// Updating the low byte leaves the high byte alone
	b.SetAL(0xFF)
	if b.AX != 0x4EFF {
		t.Fatalf("AX was %04X", b.AX)
	}

	// The other registers behave the same way
	b.SetBH(0x12)
	b.SetBL(0x34)
	b.SetCH(0x56)
	b.SetCL(0x78)
	b.SetDH(0x9A)
	b.SetDL(0xBC)
	if b.BX != 0x1234 || b.CX != 0x5678 || b.DX != 0x9ABC {
		t.Fatalf("registers wrong %04X %04X %04X", b.BX, b.CX, b.DX)
	}
	if b.BH() != 0x12 || b.BL() != 0x34 || b.CH() != 0x56 || b.CL() != 0x78 || b.DH() != 0x9A || b.DL() != 0xBC {
		t.Fatalf("byte views wrong")
	}
}

// TestWideValues ensures that addresses survive in a register, and that
// writing the high byte truncates them.
func TestWideValues(t *testing.T) {

	var r Reg = 0x00007F0012345678

	if r.Lo() != 0x78 || r.Hi() != 0x56 || r.U16() != 0x5678 {
		t.Fatalf("views of wide value wrong")
	}

	r.SetLo(0x00)
	if r != 0x00007F0012345600 {
		t.Fatalf("SetLo changed upper bits: %X", uint64(r))
	}

	r.SetHi(0x4A)
	if r != 0x4A00 {
		t.Fatalf("SetHi result unexpected: %X", uint64(r))
	}

	r.SetU16(0xFFFF)
	if r != 0xFFFF {
		t.Fatalf("SetU16 result unexpected: %X", uint64(r))
	}
}

// TestCarry tests the flag helpers.
func TestCarry(t *testing.T) {

	b := Bank{Flags: 0x0200}

	if b.Carry() {
		t.Fatalf("carry set unexpectedly")
	}
	b.Result(0x12)
	if !b.Carry() || b.AX != 0x12 {
		t.Fatalf("failure result not recorded")
	}
	if b.Flags&0x0200 == 0 {
		t.Fatalf("other flags were lost")
	}
	b.Result(0)
	if b.Carry() || b.AX != 0 {
		t.Fatalf("success result not recorded")
	}
}

// TestSplitShape copies registers in and out of the split structures.
func TestSplitShape(t *testing.T) {

	in := Regs{AX: 0x4800, BX: 20, CX: 3, DX: 4, SI: 5, DI: 6, CFlag: 1}
	seg := SRegs{ES: 1, CS: 2, SS: 3, DS: 4}

	b := Bank{}
	b.Load(&in, &seg)
	if !b.Carry() || b.AH() != 0x48 || b.BX != 20 || b.DS != 4 {
		t.Fatalf("load failed %+v", b)
	}

	b.SetCarry(false)
	b.AX = 0x1234

	out := Regs{}
	sout := SRegs{}
	b.Store(&out, &sout)
	if out.CFlag != 0 || out.AX != 0x1234 || out.DI != 6 || sout.ES != 1 {
		t.Fatalf("store failed %+v %+v", out, sout)
	}

	// nil segments are fine
	b.Load(&in, nil)
	b.Store(&out, nil)
}

// TestAddress ensures far pointers collapse to their offset.
func TestAddress(t *testing.T) {

	a := FarPointer(0x1234, 0xDEADBEEF)
	if a != 0xDEADBEEF {
		t.Fatalf("far pointer wrong %s", a)
	}
	if Segment(a) != 0 || Offset(a) != 0xDEADBEEF {
		t.Fatalf("split wrong")
	}
	if a.String() != "0xDEADBEEF" {
		t.Fatalf("string wrong %s", a.String())
	}
}

// TestLookup tests finding registers by name.
func TestLookup(t *testing.T) {

	b := Bank{}
	for _, nm := range Names {
		if nm == "FLAGS" {
			if b.Lookup(nm) != nil {
				t.Fatalf("FLAGS is not a register")
			}
			continue
		}
		r := b.Lookup(nm)
		if r == nil {
			t.Fatalf("failed to find %s", nm)
		}
		*r = 7
	}
	for i, v := range b.Values() {
		if Names[i] == "FLAGS" {
			continue
		}
		if v != 7 {
			t.Fatalf("register %s not updated", Names[i])
		}
	}
	if len(b.Values()) != len(Names) {
		t.Fatalf("values and names differ in length")
	}
}
