// Package segment implements the memory allocation services.
//
// Memory is handed out in paragraphs of sixteen bytes, each allocation
// being a fresh anonymous mapping.  The handle given to the caller is the
// address of the mapping, and every live allocation is recorded in an
// index ordered by that address.  Lookups are by exact address only, so
// a pointer into the middle of a block is not a valid handle.
//
// Resizing never moves a block, callers hold its address as a far pointer
// and have no way to learn of a new one.
package segment

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/skx/dosk/exterr"
	"github.com/skx/dosk/memory"
	"github.com/skx/dosk/registers"
	"golang.org/x/sys/unix"
)

// Paragraph is the unit of allocation.
const Paragraph = 16

// Handle identifies an allocation.  It is the base address of the block,
// and zero is the null handle.
type Handle = registers.Address

// block is one live allocation.
type block struct {
	base registers.Address
	data []byte
}

// end returns the first address past the block.
func (b *block) end() registers.Address {
	return b.base + registers.Address(len(b.data))
}

// Host is the source of the mappings, replaced in tests to simulate
// failures.
type Host interface {
	// Map returns a zeroed read/write/execute mapping of the given length.
	Map(length int) ([]byte, error)

	// Remap resizes a mapping without moving it.
	Remap(data []byte, length int) ([]byte, error)

	// Unmap releases a mapping.
	Unmap(data []byte) error

	// Available returns the free memory, in bytes.
	Available() uint64
}

// Allocator holds the live allocations.
type Allocator struct {
	// mu guards blocks.
	mu sync.Mutex

	// blocks is sorted by base address.
	blocks []*block

	// host provides the mappings.
	host Host

	// mem is updated so that blocks are visible to the kernel, it may
	// be nil.
	mem *memory.Memory

	// reporter receives our failures.
	reporter *exterr.Reporter

	// logger is used for diagnostics.
	logger *slog.Logger
}

// Option configures an Allocator.
type Option func(a *Allocator)

// WithHost replaces the source of mappings.
func WithHost(h Host) Option {
	return func(a *Allocator) {
		a.host = h
	}
}

// WithMemory makes every block visible in the given address space.
func WithMemory(m *memory.Memory) Option {
	return func(a *Allocator) {
		a.mem = m
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Allocator) {
		a.logger = l
	}
}

// New returns an empty allocator which reports to the given reporter.
func New(reporter *exterr.Reporter, options ...Option) *Allocator {
	a := &Allocator{
		host:     SystemHost{},
		reporter: reporter,
		logger:   slog.Default(),
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

// available returns the free memory in paragraphs.
func (a *Allocator) available() uint64 {
	return a.host.Available() / Paragraph
}

// find returns the index of the block at base, and whether it exists.
func (a *Allocator) find(base registers.Address) (int, bool) {
	return slices.BinarySearchFunc(a.blocks, base, func(b *block, addr registers.Address) int {
		switch {
		case b.base < addr:
			return -1
		case b.base > addr:
			return 1
		}
		return 0
	})
}

// Allocate reserves size paragraphs.
//
// A size of zero succeeds with the null handle, and records nothing.  On
// failure the returned count is the number of paragraphs which are
// currently available.
func (a *Allocator) Allocate(size uint64) (Handle, uint64, exterr.Code) {
	if size == 0 {
		return 0, 0, exterr.CodeNone
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	length := size * Paragraph
	if length/Paragraph != size || length > uint64(int(^uint(0)>>1)) {
		return 0, a.available(), a.reporter.Report(unix.ENOMEM)
	}

	data, err := a.host.Map(int(length))
	if err != nil {
		a.logger.Debug("allocation failed",
			slog.Uint64("paragraphs", size),
			slog.String("error", err.Error()))
		return 0, a.available(), a.reporter.Report(err)
	}

	b := &block{base: memory.AddressOf(data), data: data}

	i, found := a.find(b.base)
	if found {
		// The host handed out an address we believe is live.
		_ = a.host.Unmap(data)
		a.logger.Error("allocation index corrupt", slog.String("base", b.base.String()))
		return 0, a.available(), a.reporter.Set(exterr.MCBDestroyed, unix.EINVAL)
	}

	if a.mem != nil {
		if err = a.mem.MapAt(b.base, data); err != nil {
			_ = a.host.Unmap(data)
			return 0, a.available(), a.reporter.Report(unix.ENOMEM)
		}
	}

	a.blocks = slices.Insert(a.blocks, i, b)
	a.verify()

	a.logger.Debug("allocated",
		slog.Uint64("paragraphs", size),
		slog.String("base", b.base.String()))

	return Handle(b.base), 0, exterr.CodeNone
}

// Resize changes the size of the block at h, in place.
//
// A size of zero succeeds without doing anything.  An unknown handle
// fails with an invalid memory block address.  When the block cannot be
// resized it is left as it was, and the returned count is the number of
// paragraphs which are currently available.
func (a *Allocator) Resize(h Handle, size uint64) (uint64, exterr.Code) {
	if size == 0 {
		return 0, exterr.CodeNone
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	i, found := a.find(registers.Address(h))
	if !found {
		return 0, a.reporter.Report(unix.EFAULT)
	}
	b := a.blocks[i]

	length := size * Paragraph
	if length/Paragraph != size || length > uint64(int(^uint(0)>>1)) {
		return a.available(), a.reporter.Report(unix.ENOMEM)
	}

	// Would the grown block run into its neighbour?
	if i+1 < len(a.blocks) && b.base+registers.Address(length) > a.blocks[i+1].base {
		return a.available(), a.reporter.Report(unix.ENOMEM)
	}

	data, err := a.host.Remap(b.data, int(length))
	if err != nil {
		a.logger.Debug("resize failed",
			slog.String("base", b.base.String()),
			slog.Uint64("paragraphs", size),
			slog.String("error", err.Error()))
		return a.available(), a.reporter.Report(err)
	}

	if memory.AddressOf(data) != b.base {
		// Remap must not move the block, but if it did there is no
		// way to tell the caller.
		a.logger.Error("block moved during resize", slog.String("base", b.base.String()))
	}
	b.data = data

	if a.mem != nil {
		if err = a.mem.Remap(b.base, data); err != nil {
			a.logger.Error("failed to update memory map", slog.String("error", err.Error()))
		}
	}
	a.verify()

	return 0, exterr.CodeNone
}

// Free releases the block at h.
//
// An unknown handle, including one which has already been freed, fails
// with an invalid memory block address.
func (a *Allocator) Free(h Handle) exterr.Code {
	a.mu.Lock()
	defer a.mu.Unlock()

	i, found := a.find(registers.Address(h))
	if !found {
		return a.reporter.Report(unix.EFAULT)
	}
	b := a.blocks[i]

	if err := a.host.Unmap(b.data); err != nil {
		a.logger.Error("failed to unmap block",
			slog.String("base", b.base.String()),
			slog.String("error", err.Error()))
		return a.reporter.Set(exterr.MCBDestroyed, unix.EINVAL)
	}

	if a.mem != nil {
		_ = a.mem.Unmap(b.base)
	}
	a.blocks = slices.Delete(a.blocks, i, i+1)
	a.verify()

	return exterr.CodeNone
}

// Size returns the size, in paragraphs, of the block at h.
func (a *Allocator) Size(h Handle) (uint64, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	i, found := a.find(registers.Address(h))
	if !found {
		return 0, false
	}
	return uint64(len(a.blocks[i].data)) / Paragraph, true
}

// Bytes returns the memory of the block at h.
func (a *Allocator) Bytes(h Handle) ([]byte, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	i, found := a.find(registers.Address(h))
	if !found {
		return nil, false
	}
	return a.blocks[i].data, true
}

// Len returns the number of live blocks.
func (a *Allocator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.blocks)
}

// Check returns an error if the live blocks are not sorted and disjoint.
func (a *Allocator) Check() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.check()
}

// check is Check without the lock.
func (a *Allocator) check() error {
	for i := 1; i < len(a.blocks); i++ {
		prev, cur := a.blocks[i-1], a.blocks[i]
		if prev.base >= cur.base {
			return fmt.Errorf("blocks out of order: %s before %s", prev.base, cur.base)
		}
		if prev.end() > cur.base {
			return fmt.Errorf("block %s overlaps %s", prev.base, cur.base)
		}
	}
	return nil
}

// verify logs an invariant violation after a mutation.
func (a *Allocator) verify() {
	if err := a.check(); err != nil {
		a.logger.Error("allocation index invalid", slog.String("error", err.Error()))
	}
}
