package segment

import (
	"errors"
	"testing"

	"github.com/skx/dosk/exterr"
	"github.com/skx/dosk/memory"
	"golang.org/x/sys/unix"
)

// fakeHost hands out heap memory, and fails on demand.
type fakeHost struct {
	mapErr   error
	remapErr error
	unmapErr error
	free     uint64
}

func (f *fakeHost) Map(length int) ([]byte, error) {
	if f.mapErr != nil {
		return nil, f.mapErr
	}
	// Leave room to grow in place.
	buf := make([]byte, length, length*4)
	return buf, nil
}

func (f *fakeHost) Remap(data []byte, length int) ([]byte, error) {
	if f.remapErr != nil {
		return nil, f.remapErr
	}
	if length > cap(data) {
		return nil, unix.ENOMEM
	}
	return data[:length], nil
}

func (f *fakeHost) Unmap(data []byte) error {
	return f.unmapErr
}

func (f *fakeHost) Available() uint64 {
	return f.free
}

// TestAllocateResizeFree runs the classic sequence against real mappings.
func TestAllocateResizeFree(t *testing.T) {

	rep := exterr.New(nil)
	mem := memory.New()
	a := New(rep, WithMemory(mem))

	seg, _, code := a.Allocate(20)
	if code != exterr.CodeNone {
		t.Fatalf("allocation failed %02X", code)
	}
	if seg == 0 {
		t.Fatalf("null handle for a real allocation")
	}
	if sz, ok := a.Size(seg); !ok || sz != 20 {
		t.Fatalf("size wrong %d", sz)
	}

	// Memory is zeroed, and visible through the address space
	buf, ok := a.Bytes(seg)
	if !ok || len(buf) != 20*Paragraph {
		t.Fatalf("bytes wrong")
	}
	for _, c := range buf {
		if c != 0 {
			t.Fatalf("memory not zeroed")
		}
	}
	if err := mem.Set(seg+319, 0xAA); err != nil {
		t.Fatalf("block not mapped in memory: %s", err)
	}
	if buf[319] != 0xAA {
		t.Fatalf("memory not shared")
	}

	// Grow, within the first page
	if _, code = a.Resize(seg, 40); code != exterr.CodeNone {
		t.Fatalf("resize failed %02X", code)
	}
	if sz, _ := a.Size(seg); sz != 40 {
		t.Fatalf("size not updated %d", sz)
	}
	if err := mem.Set(seg+639, 0xBB); err != nil {
		t.Fatalf("grown block not mapped in memory: %s", err)
	}

	if code = a.Free(seg); code != exterr.CodeNone {
		t.Fatalf("free failed %02X", code)
	}
	if a.Len() != 0 || mem.Len() != 0 {
		t.Fatalf("blocks left over")
	}

	// A second free fails
	if code = a.Free(seg); code != exterr.CodeMBAInval {
		t.Fatalf("double free gave %02X", code)
	}
	if rep.Current().Code != exterr.CodeMBAInval {
		t.Fatalf("record not updated %s", rep.Current())
	}
}

// TestZeroSize ensures zero-sized requests succeed without records.
func TestZeroSize(t *testing.T) {

	rep := exterr.New(nil)
	a := New(rep, WithHost(&fakeHost{}))

	seg, _, code := a.Allocate(0)
	if seg != 0 || code != exterr.CodeNone {
		t.Fatalf("zero allocation gave %s %02X", seg, code)
	}
	if a.Len() != 0 {
		t.Fatalf("zero allocation recorded")
	}

	if _, code = a.Resize(0x1234, 0); code != exterr.CodeNone {
		t.Fatalf("zero resize failed")
	}

	// Freeing the null handle is an error
	if code = a.Free(0); code != exterr.CodeMBAInval {
		t.Fatalf("null free gave %02X", code)
	}
}

// TestUnknownHandles ensures lookups are by exact base address.
func TestUnknownHandles(t *testing.T) {

	rep := exterr.New(nil)
	a := New(rep, WithHost(&fakeHost{}))

	seg, _, code := a.Allocate(4)
	if code != exterr.CodeNone {
		t.Fatalf("allocation failed")
	}

	// Inside the block is not the block
	if _, code = a.Resize(seg+16, 8); code != exterr.CodeMBAInval {
		t.Fatalf("interior resize gave %02X", code)
	}
	if code = a.Free(seg + 16); code != exterr.CodeMBAInval {
		t.Fatalf("interior free gave %02X", code)
	}
	rec := rep.Current()
	if rec.Class != exterr.ClassAppProgError || rec.Locus != exterr.LocusMemRelated {
		t.Fatalf("wrong record %s", rec)
	}

	if a.Len() != 1 {
		t.Fatalf("block lost")
	}
}

// TestFailures simulates host failures.
func TestFailures(t *testing.T) {

	rep := exterr.New(nil)
	host := &fakeHost{free: 1600}
	a := New(rep, WithHost(host))

	// Allocation failure reports the available paragraphs
	host.mapErr = unix.ENOMEM
	seg, avail, code := a.Allocate(1000)
	if code != exterr.CodeInsufficientMemory || seg != 0 || avail != 100 {
		t.Fatalf("unexpected results %s %d %02X", seg, avail, code)
	}
	host.mapErr = nil

	seg, _, code = a.Allocate(10)
	if code != exterr.CodeNone {
		t.Fatalf("allocation failed")
	}

	// Resize failure leaves the block alone
	avail, code = a.Resize(seg, 1000)
	if code != exterr.CodeInsufficientMemory || avail != 100 {
		t.Fatalf("unexpected results %d %02X", avail, code)
	}
	if sz, _ := a.Size(seg); sz != 10 {
		t.Fatalf("failed resize changed the block")
	}

	host.remapErr = unix.EAGAIN
	if _, code = a.Resize(seg, 20); code != exterr.CodeFCBUnavailable {
		t.Fatalf("resize error not reported %02X", code)
	}
	host.remapErr = nil

	// Shrink works
	if _, code = a.Resize(seg, 5); code != exterr.CodeNone {
		t.Fatalf("shrink failed")
	}

	// An unmap failure means the block is damaged
	host.unmapErr = unix.EINVAL
	if code = a.Free(seg); code != exterr.CodeMCBDestroyed {
		t.Fatalf("unmap failure gave %02X", code)
	}
	if rep.Current() != exterr.MCBDestroyed || rep.Errno() != unix.EINVAL {
		t.Fatalf("wrong record %s", rep.Current())
	}
	host.unmapErr = nil

	// The block is still live
	if code = a.Free(seg); code != exterr.CodeNone {
		t.Fatalf("free failed")
	}

	// Overflowing sizes fail cleanly
	if _, _, code = a.Allocate(^uint64(0)); code != exterr.CodeInsufficientMemory {
		t.Fatalf("huge allocation gave %02X", code)
	}
}

// TestDisjoint runs a sequence of operations, checking the invariant
// after each one.
func TestDisjoint(t *testing.T) {

	rep := exterr.New(nil)
	a := New(rep)

	var live []Handle
	for i := 1; i <= 16; i++ {
		seg, _, code := a.Allocate(uint64(i * 17))
		if code != exterr.CodeNone {
			t.Fatalf("allocation %d failed %02X", i, code)
		}
		live = append(live, seg)
		if err := a.Check(); err != nil {
			t.Fatalf("invariant broken: %s", err)
		}
	}

	// Shrink every other block, free the rest
	for i, seg := range live {
		if i%2 == 0 {
			if _, code := a.Resize(seg, 1); code != exterr.CodeNone {
				t.Fatalf("shrink failed %02X", code)
			}
		} else {
			if code := a.Free(seg); code != exterr.CodeNone {
				t.Fatalf("free failed %02X", code)
			}
		}
		if err := a.Check(); err != nil {
			t.Fatalf("invariant broken: %s", err)
		}
	}

	if a.Len() != len(live)/2 {
		t.Fatalf("wrong number of blocks %d", a.Len())
	}

	// Freed handles stay invalid
	for i, seg := range live {
		want := exterr.CodeNone
		if i%2 == 1 {
			want = exterr.CodeMBAInval
		}
		if code := a.Free(seg); code != want {
			t.Fatalf("free %d gave %02X", i, code)
		}
	}
	if a.Len() != 0 {
		t.Fatalf("blocks left over")
	}
}

// TestSystemHost checks the real host directly.
func TestSystemHost(t *testing.T) {

	h := SystemHost{}
	if h.Available() == 0 {
		t.Fatalf("no free memory reported")
	}

	data, err := h.Map(4096)
	if err != nil {
		t.Fatalf("map failed %s", err)
	}
	data, err = h.Remap(data, 100)
	if err != nil {
		t.Fatalf("shrink failed %s", err)
	}
	if err = h.Unmap(data); err != nil {
		t.Fatalf("unmap failed %s", err)
	}

	if err = h.Unmap(make([]byte, 10)); !errors.Is(err, unix.EINVAL) {
		t.Fatalf("unmap of heap memory gave %v", err)
	}
}
