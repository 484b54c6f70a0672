package dos

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/skx/dosk/dostime"
	"github.com/skx/dosk/dta"
	"github.com/skx/dosk/exterr"
	"github.com/skx/dosk/registers"
	"golang.org/x/sys/unix"
)

// call dispatches INT 21h, failing the test on integration errors.
func call(t *testing.T, k *Kernel, b *registers.Bank) {
	t.Helper()
	if err := k.Dispatch(IntDOS, b); err != nil {
		t.Fatalf("AX=%04X: %s", b.AX.U16(), err)
	}
}

// TestConsole tests the character functions.
func TestConsole(t *testing.T) {
	k, _ := newKernel(t)
	out := output(t, k)

	k.StuffInput("ab")

	b := registers.Bank{AX: 0x0100}
	call(t, k, &b)
	if b.AL() != 'a' || out.GetOutput() != "a" {
		t.Fatalf("read with echo gave %c / '%s'", b.AL(), out.GetOutput())
	}

	b = registers.Bank{AX: 0x0800}
	call(t, k, &b)
	if b.AL() != 'b' || out.GetOutput() != "a" {
		t.Fatalf("read without echo gave %c / '%s'", b.AL(), out.GetOutput())
	}

	// The input driver fails now.
	b = registers.Bank{AX: 0x0100}
	call(t, k, &b)
	if b.AL() != 0 || out.GetOutput() != "a" {
		t.Fatalf("failed read gave %c / '%s'", b.AL(), out.GetOutput())
	}

	out.Reset()
	b = registers.Bank{AX: 0x0200, DX: 'x'}
	call(t, k, &b)
	if b.AL() != 'x' || out.GetOutput() != "x" {
		t.Fatalf("write char gave %c / '%s'", b.AL(), out.GetOutput())
	}

	out.Reset()
	b = registers.Bank{AX: 0x0900, DX: placeString(t, k, "Hello, World$ignored")}
	call(t, k, &b)
	if b.AL() != '$' || out.GetOutput() != "Hello, World" {
		t.Fatalf("write string gave '%s'", out.GetOutput())
	}

	// No terminator.
	out.Reset()
	b = registers.Bank{AX: 0x0900, DX: placeString(t, k, "Hello")}
	call(t, k, &b)
	if out.GetOutput() != "" || k.DosExtErr().Code != exterr.CodeMBAInval {
		t.Fatalf("unterminated string gave '%s'", out.GetOutput())
	}
}

// TestDateTime tests the clock functions.
func TestDateTime(t *testing.T) {
	k, clk := newKernel(t)

	b := registers.Bank{AX: 0x2A00}
	call(t, k, &b)
	if b.CX.U16() != 2024 || b.DH() != 2 || b.DL() != 29 || b.AL() != uint8(time.Thursday) {
		t.Fatalf("wrong date %d-%d-%d %d", b.CX.U16(), b.DH(), b.DL(), b.AL())
	}

	// Set a valid date.
	b = registers.Bank{AX: 0x2B00, CX: 1999, DX: 0x0C1F}
	call(t, k, &b)
	if b.AL() != 0x00 || b.Carry() {
		t.Fatalf("failed to set date")
	}
	if clk.now.Year() != 1999 || clk.now.Month() != time.December || clk.now.Day() != 31 || clk.now.Hour() != 13 {
		t.Fatalf("wrong clock %s", clk.now)
	}

	// An invalid date changes nothing.
	b = registers.Bank{AX: 0x2B00, CX: 2023, DX: 0x021D}
	call(t, k, &b)
	if b.AL() != 0xFF || clk.now.Year() != 1999 {
		t.Fatalf("invalid date accepted")
	}
	if k.DosExtErr() != exterr.BadArguments {
		t.Fatalf("wrong error %s", k.DosExtErr())
	}

	b = registers.Bank{AX: 0x2D00, CX: 0x0102, DX: 0x0304}
	call(t, k, &b)
	if b.AL() != 0x00 {
		t.Fatalf("failed to set time")
	}
	b = registers.Bank{AX: 0x2C00}
	call(t, k, &b)
	if b.CH() != 1 || b.CL() != 2 || b.DH() != 3 || b.DL() != 4 {
		t.Fatalf("wrong time %+v", b)
	}

	// Invalid hundredths.
	b = registers.Bank{AX: 0x2D00, CX: 0x0102, DX: 0x0364}
	call(t, k, &b)
	if b.AL() != 0xFF {
		t.Fatalf("invalid time accepted")
	}

	// A clock which cannot be set.
	clk.err = unix.EPERM
	b = registers.Bank{AX: 0x2D00, CX: 0x0102, DX: 0x0304}
	call(t, k, &b)
	if b.AL() != 0xFF || k.DosExtErr().Code != exterr.CodeAccessDenied {
		t.Fatalf("clock failure ignored: %s", k.DosExtErr())
	}
}

// TestFiles tests create, open, close and the file time functions.
func TestFiles(t *testing.T) {
	k, _ := newKernel(t)
	name := filepath.Join(t.TempDir(), "test.txt")

	b := registers.Bank{AX: 0x3C00, DX: placeString(t, k, name)}
	call(t, k, &b)
	if b.Carry() {
		t.Fatalf("create failed %02X", b.AX)
	}
	fd := b.AX

	// Set, then get, the file time.
	date, tm, err := dostime.Pack(time.Date(2020, time.June, 15, 12, 30, 10, 0, time.UTC))
	if err != nil {
		t.Fatalf("failed to pack: %s", err)
	}
	b = registers.Bank{AX: 0x5701, BX: fd, CX: registers.Reg(tm), DX: registers.Reg(date)}
	call(t, k, &b)
	if b.Carry() {
		t.Fatalf("set file time failed %02X", b.AX)
	}
	b = registers.Bank{AX: 0x5700, BX: fd}
	call(t, k, &b)
	if b.Carry() || dostime.Time(b.CX) != tm || dostime.Date(b.DX) != date {
		t.Fatalf("wrong file time %04X %04X", b.CX, b.DX)
	}

	// An invalid time is refused.
	b = registers.Bank{AX: 0x5701, BX: fd, CX: 0xFFFF, DX: registers.Reg(date)}
	call(t, k, &b)
	if !b.Carry() || b.AX != registers.Reg(exterr.CodeBadArguments) {
		t.Fatalf("invalid time accepted")
	}

	size, err := k.FileLength(int(fd))
	if err != nil || size != 0 {
		t.Fatalf("wrong length %d %v", size, err)
	}

	b = registers.Bank{AX: 0x3E00, BX: fd}
	call(t, k, &b)
	if b.Carry() || b.AX != 0 {
		t.Fatalf("close failed")
	}

	// Closing twice fails.
	b = registers.Bank{AX: 0x3E00, BX: fd}
	call(t, k, &b)
	if !b.Carry() || b.AX != registers.Reg(exterr.CodeInvalidHandle) {
		t.Fatalf("second close gave %02X", b.AX)
	}

	// Create new refuses to replace the file.
	b = registers.Bank{AX: 0x5B00, DX: placeString(t, k, name)}
	call(t, k, &b)
	if !b.Carry() || b.AX != registers.Reg(exterr.CodeFileExists) {
		t.Fatalf("create new gave %02X", b.AX)
	}

	// Open, no-inherit.
	b = registers.Bank{AX: 0x3D82, DX: placeString(t, k, name)}
	call(t, k, &b)
	if b.Carry() {
		t.Fatalf("open failed %02X", b.AX)
	}
	flags, err := unix.FcntlInt(uintptr(b.AX), unix.F_GETFD, 0)
	if err != nil || flags&unix.FD_CLOEXEC == 0 {
		t.Fatalf("close on exec not set")
	}
	unix.Close(int(b.AX))

	// Missing files.
	b = registers.Bank{AX: 0x3D00, DX: placeString(t, k, name+".missing")}
	call(t, k, &b)
	if !b.Carry() || b.AX != registers.Reg(exterr.CodeFileNotFound) {
		t.Fatalf("open of missing file gave %02X", b.AX)
	}

	// Bad pointers.
	b = registers.Bank{AX: 0x3D00, DX: 0x10}
	call(t, k, &b)
	if !b.Carry() || b.AX != registers.Reg(exterr.CodeMBAInval) {
		t.Fatalf("open of bad pointer gave %02X", b.AX)
	}
}

// TestShareModes tests the record locks taken by open.
func TestShareModes(t *testing.T) {
	k, _ := newKernel(t)
	name := filepath.Join(t.TempDir(), "share.txt")
	if err := os.WriteFile(name, []byte("data"), 0644); err != nil {
		t.Fatalf("failed to write file")
	}

	type testCase struct {
		mode uint8
		fail bool
	}

	tests := []testCase{
		{0x00, false}, // compat
		{0x40, false}, // deny none
		{0x20, false}, // deny write, read lock
		{0x12, false}, // deny read/write, write lock
		{0x32, false}, // deny read, write lock
		{0x10, true},  // write lock on a read-only handle
	}

	for _, tst := range tests {
		b := registers.Bank{DX: placeString(t, k, name)}
		b.SetAH(0x3D)
		b.SetAL(tst.mode)
		call(t, k, &b)

		if b.Carry() != tst.fail {
			t.Fatalf("mode %02X: carry %v, AX=%02X", tst.mode, b.Carry(), b.AX)
		}
		if !tst.fail {
			unix.Close(int(b.AX))
		}
	}
}

// TestAttributes tests the file attribute functions.
func TestAttributes(t *testing.T) {
	k, _ := newKernel(t)
	dir := t.TempDir()
	name := filepath.Join(dir, "attr.txt")
	if err := os.WriteFile(name, []byte("data"), 0644); err != nil {
		t.Fatalf("failed to write file")
	}

	b := registers.Bank{AX: 0x4300, DX: placeString(t, k, name)}
	call(t, k, &b)
	if b.Carry() || dta.Attr(b.CX) != dta.Archive {
		t.Fatalf("wrong attributes %s", dta.Attr(b.CX))
	}

	b = registers.Bank{AX: 0x4300, DX: placeString(t, k, dir)}
	call(t, k, &b)
	if b.Carry() || dta.Attr(b.CX) != dta.Subdir {
		t.Fatalf("wrong attributes %s", dta.Attr(b.CX))
	}

	b = registers.Bank{AX: 0x4301, CX: registers.Reg(dta.ReadOnly), DX: placeString(t, k, name)}
	call(t, k, &b)
	if b.Carry() {
		t.Fatalf("set attributes failed")
	}
	st, err := os.Stat(name)
	if err != nil || st.Mode().Perm()&0222 != 0 {
		t.Fatalf("file still writable")
	}

	if unix.Geteuid() != 0 {
		attr, code := k.DosGetFileAttr(name)
		if code != exterr.CodeNone || attr&dta.ReadOnly == 0 {
			t.Fatalf("read-only not reported %s", attr)
		}
	}

	b = registers.Bank{AX: 0x4300, DX: placeString(t, k, name+".missing")}
	call(t, k, &b)
	if !b.Carry() || b.AX != registers.Reg(exterr.CodeFileNotFound) {
		t.Fatalf("missing file gave %02X", b.AX)
	}
}

// TestMemory tests allocation, resizing and release.
func TestMemory(t *testing.T) {
	k, _ := newKernel(t)

	b := registers.Bank{AX: 0x4800, BX: 20}
	call(t, k, &b)
	if b.Carry() || b.AX == 0 {
		t.Fatalf("allocation failed")
	}
	seg := b.AX

	// The block is visible to the kernel.
	if err := k.Memory.SetRange(registers.Address(seg)+319, 0x42); err != nil {
		t.Fatalf("block not mapped: %s", err)
	}

	b = registers.Bank{AX: 0x4A00, BX: 40, ES: seg}
	call(t, k, &b)
	if b.Carry() {
		t.Fatalf("resize failed %02X", b.AX)
	}
	if size, ok := k.Segments.Size(registers.Address(seg)); !ok || size != 40 {
		t.Fatalf("wrong size %d", size)
	}

	b = registers.Bank{AX: 0x4900, ES: seg}
	call(t, k, &b)
	if b.Carry() {
		t.Fatalf("free failed %02X", b.AX)
	}

	b = registers.Bank{AX: 0x4900, ES: seg}
	call(t, k, &b)
	if !b.Carry() || b.AX != registers.Reg(exterr.CodeMBAInval) {
		t.Fatalf("second free gave %02X", b.AX)
	}

	// Zero paragraphs is the null segment.
	b = registers.Bank{AX: 0x4800, BX: 0}
	call(t, k, &b)
	if b.Carry() || b.AX != 0 {
		t.Fatalf("empty allocation gave %02X", b.AX)
	}

	if k.Segments.Len() != 0 {
		t.Fatalf("blocks leaked")
	}
	if err := k.Segments.Check(); err != nil {
		t.Fatalf("allocator inconsistent: %s", err)
	}
}

// TestFind runs a search through the default DTA.
func TestFind(t *testing.T) {
	k, _ := newKernel(t)
	dir := t.TempDir()
	for _, name := range []string{"a.c", "b.c", "c.h"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0644); err != nil {
			t.Fatalf("failed to write file")
		}
	}

	b := registers.Bank{AX: 0x2F00}
	call(t, k, &b)
	addr := registers.FarPointer(b.ES, b.BX)

	var found []string
	b = registers.Bank{AX: 0x4E00, DX: placeString(t, k, filepath.Join(dir, "*.c"))}
	for {
		call(t, k, &b)
		if b.Carry() {
			break
		}

		data, err := k.Memory.GetRange(addr, dta.RecordSize)
		if err != nil {
			t.Fatalf("failed to read DTA: %s", err)
		}
		rec, err := dta.Decode(data)
		if err != nil {
			t.Fatalf("failed to decode DTA: %s", err)
		}
		if rec.Size != 3 || rec.Attrib != dta.Archive {
			t.Fatalf("wrong record %+v", rec)
		}
		found = append(found, rec.FileName())

		b = registers.Bank{AX: 0x4F00}
	}

	if b.AX != registers.Reg(exterr.CodeNoMoreFiles) {
		t.Fatalf("search ended with %02X", b.AX)
	}
	sort.Strings(found)
	if len(found) != 2 || found[0] != "a.c" || found[1] != "b.c" {
		t.Fatalf("wrong results %v", found)
	}

	// No match at all.
	b = registers.Bank{AX: 0x4E00, DX: placeString(t, k, filepath.Join(dir, "*.txt"))}
	call(t, k, &b)
	if !b.Carry() || b.AX != registers.Reg(exterr.CodeFileNotFound) {
		t.Fatalf("empty search gave %02X", b.AX)
	}
}

// TestSetDTA ensures searches in different areas are independent.
func TestSetDTA(t *testing.T) {
	k, _ := newKernel(t)
	dir := t.TempDir()
	for _, name := range []string{"one", "two"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("failed to write file")
		}
	}
	pattern := placeString(t, k, filepath.Join(dir, "*"))

	first, err := k.Memory.Place(make([]byte, dta.RecordSize))
	if err != nil {
		t.Fatalf("failed to place DTA")
	}
	second, err := k.Memory.Place(make([]byte, dta.RecordSize))
	if err != nil {
		t.Fatalf("failed to place DTA")
	}

	setDTA := func(addr registers.Address) {
		b := registers.Bank{AX: 0x1A00, DX: registers.Offset(addr)}
		call(t, k, &b)
	}

	setDTA(first)
	b := registers.Bank{AX: 0x4E00, DX: pattern}
	call(t, k, &b)

	setDTA(second)
	b = registers.Bank{AX: 0x4E00, DX: pattern}
	call(t, k, &b)
	b = registers.Bank{AX: 0x4F00}
	call(t, k, &b)
	b = registers.Bank{AX: 0x4F00}
	call(t, k, &b)
	if b.AX != registers.Reg(exterr.CodeNoMoreFiles) {
		t.Fatalf("second search should be over")
	}

	// The first search is still half way through.
	setDTA(first)
	b = registers.Bank{AX: 0x4F00}
	call(t, k, &b)
	if b.Carry() {
		t.Fatalf("first search ended early")
	}

	data, err := k.Memory.GetRange(first, dta.RecordSize)
	if err != nil {
		t.Fatalf("failed to read DTA")
	}
	rec, err := dta.Decode(data)
	if err != nil || (rec.FileName() != "one" && rec.FileName() != "two") {
		t.Fatalf("wrong record %q", rec.FileName())
	}

	b = registers.Bank{AX: 0x2F00}
	call(t, k, &b)
	if registers.Address(b.BX) != first {
		t.Fatalf("wrong DTA address")
	}
}

// TestLibraryForms exercises the functions Go callers use directly.
func TestLibraryForms(t *testing.T) {
	k, _ := newKernel(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "x.c"), nil, 0644); err != nil {
		t.Fatalf("failed to write file")
	}

	var c dta.Cursor
	if code := k.DosFindFirst(filepath.Join(dir, "*.c"), dta.Normal, &c); code != exterr.CodeNone {
		t.Fatalf("find first failed %02X", code)
	}
	if c.FileName() != "x.c" {
		t.Fatalf("wrong match %s", c.FileName())
	}
	if code := k.DosFindNext(&c); code != exterr.CodeNoMoreFiles {
		t.Fatalf("find next gave %02X", code)
	}
	if k.Enumerator.DTA() == &c {
		t.Fatalf("current DTA was replaced")
	}

	seg, _, code := k.DosAllocMem(4)
	if code != exterr.CodeNone {
		t.Fatalf("allocation failed")
	}
	if _, code = k.DosSetBlock(8, seg); code != exterr.CodeNone {
		t.Fatalf("resize failed")
	}
	if code = k.DosFreeMem(seg); code != exterr.CodeNone {
		t.Fatalf("free failed")
	}
	if code = k.DosFreeMem(seg); code != exterr.CodeMBAInval {
		t.Fatalf("double free gave %02X", code)
	}

	d := k.DosGetDate()
	tm := k.DosGetTime()
	if d.Year != 2024 || tm.Hour != 13 || tm.Hsecond != 25 {
		t.Fatalf("wrong date/time %+v %+v", d, tm)
	}
	if code = k.DosSetDate(dostime.DosDate{Year: 2023, Month: 2, Day: 29}); code != exterr.CodeBadArguments {
		t.Fatalf("invalid date gave %02X", code)
	}

	if _, err := k.FileLength(-1); !errors.Is(err, unix.EBADF) {
		t.Fatalf("expected EBADF, got %v", err)
	}
}

// TestFindTimeZone ensures searches and handles agree on file times.
func TestFindTimeZone(t *testing.T) {
	k, _ := newKernel(t, WithLocation(time.FixedZone("PLUS5", 5*3600)))

	path := filepath.Join(t.TempDir(), "stamp.c")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("failed to write file")
	}
	when := time.Date(2020, time.June, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, when, when); err != nil {
		t.Fatalf("failed to set times: %s", err)
	}

	var c dta.Cursor
	if code := k.DosFindFirst(path, dta.Normal, &c); code != exterr.CodeNone {
		t.Fatalf("find first failed %02X", code)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open: %s", err)
	}
	defer f.Close()

	date, tm, code := k.DosGetFTime(int(f.Fd()))
	if code != exterr.CodeNone {
		t.Fatalf("get file time failed %02X", code)
	}
	if c.WrDate != date || c.WrTime != tm {
		t.Fatalf("find gave %s %s, handle gave %s %s", c.WrDate, c.WrTime, date, tm)
	}
	if tm.Hour() != 17 || date.Day() != 1 {
		t.Fatalf("time not in the kernel zone: %s %s", date, tm)
	}

	// The register forms agree too.
	b := registers.Bank{AX: 0x4E00, DX: placeString(t, k, path)}
	call(t, k, &b)
	if b.Carry() {
		t.Fatalf("find first failed %02X", b.AX)
	}
	found := k.Enumerator.DTA()

	b = registers.Bank{AX: 0x5700, BX: registers.Reg(f.Fd())}
	call(t, k, &b)
	if b.Carry() || b.CX.U16() != uint16(found.WrTime) || b.DX.U16() != uint16(found.WrDate) {
		t.Fatalf("57h gave CX=%04X DX=%04X, find gave %s %s", b.CX.U16(), b.DX.U16(), found.WrTime, found.WrDate)
	}
}
