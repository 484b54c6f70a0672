// Package memory provides the flat address space through which the
// kernel reaches caller memory.
//
// Callers pass pointers to strings and structures in registers.  On a
// flat host those pointers are plain addresses, so this package keeps a
// table of the byte slices which have been made visible to the kernel,
// keyed by their host address, and resolves register values against it.
// An address outside every known region faults with ErrNotMapped rather
// than being dereferenced blindly.
package memory

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"unsafe"

	"github.com/skx/dosk/registers"
)

// ErrNotMapped is returned when an access falls outside every region.
var ErrNotMapped = errors.New("address not mapped")

// region is one block of visible memory.
type region struct {
	base registers.Address
	data []byte
}

// end returns the first address past the region.
func (r region) end() registers.Address {
	return r.base + registers.Address(len(r.data))
}

// Memory is the set of visible regions.
type Memory struct {
	mu      sync.RWMutex
	regions []region
}

// New returns an empty address space.
func New() *Memory {
	return &Memory{}
}

// AddressOf returns the host address of the first byte of the slice.
func AddressOf(data []byte) registers.Address {
	if len(data) == 0 {
		return 0
	}
	return registers.Address(uintptr(unsafe.Pointer(unsafe.SliceData(data))))
}

// Map makes the slice visible at its own host address, which is returned.
func (m *Memory) Map(data []byte) (registers.Address, error) {
	addr := AddressOf(data)
	return addr, m.MapAt(addr, data)
}

// MapAt makes the slice visible at the given address.
func (m *Memory) MapAt(base registers.Address, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("refusing to map an empty region at %s", base)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r := region{base: base, data: data}
	i := m.search(base)

	// Overlap with the neighbours?
	if i > 0 && m.regions[i-1].end() > base {
		return fmt.Errorf("region at %s overlaps %s", base, m.regions[i-1].base)
	}
	if i < len(m.regions) && m.regions[i].base < r.end() {
		return fmt.Errorf("region at %s overlaps %s", base, m.regions[i].base)
	}

	m.regions = append(m.regions, region{})
	copy(m.regions[i+1:], m.regions[i:])
	m.regions[i] = r
	return nil
}

// Place copies the given bytes into a fresh region, returning its address.
func (m *Memory) Place(data []byte) (registers.Address, error) {
	buf := make([]byte, len(data))
	copy(buf, data)
	return m.Map(buf)
}

// PlaceString stores a NUL-terminated copy of the string, returning its
// address.
func (m *Memory) PlaceString(s string) (registers.Address, error) {
	return m.Place(append([]byte(s), 0x00))
}

// Unmap removes the region starting at base.
func (m *Memory) Unmap(base registers.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.search(base)
	if i >= len(m.regions) || m.regions[i].base != base {
		return fmt.Errorf("%w: no region at %s", ErrNotMapped, base)
	}
	m.regions = append(m.regions[:i], m.regions[i+1:]...)
	return nil
}

// Remap replaces the backing slice of the region at base, which is used
// when a region is resized.
func (m *Memory) Remap(base registers.Address, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.search(base)
	if i >= len(m.regions) || m.regions[i].base != base {
		return fmt.Errorf("%w: no region at %s", ErrNotMapped, base)
	}
	if i+1 < len(m.regions) && m.regions[i+1].base < base+registers.Address(len(data)) {
		return fmt.Errorf("region at %s would overlap %s", base, m.regions[i+1].base)
	}
	m.regions[i].data = data
	return nil
}

// search returns the index of the first region whose base is >= addr.
func (m *Memory) search(addr registers.Address) int {
	return sort.Search(len(m.regions), func(i int) bool {
		return m.regions[i].base >= addr
	})
}

// slice returns the visible bytes from addr up to the end of the region
// holding it.
func (m *Memory) slice(addr registers.Address) ([]byte, error) {
	i := m.search(addr + 1)
	if i == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotMapped, addr)
	}
	r := m.regions[i-1]
	if addr < r.base || addr >= r.end() {
		return nil, fmt.Errorf("%w: %s", ErrNotMapped, addr)
	}
	return r.data[addr-r.base:], nil
}

// window returns size bytes starting at addr, which must all be within
// a single region.
func (m *Memory) window(addr registers.Address, size int) ([]byte, error) {
	buf, err := m.slice(addr)
	if err != nil {
		return nil, err
	}
	if size > len(buf) {
		return nil, fmt.Errorf("%w: %d bytes at %s", ErrNotMapped, size, addr)
	}
	return buf[:size], nil
}

// Get returns the byte at addr.
func (m *Memory) Get(addr registers.Address) (uint8, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	buf, err := m.window(addr, 1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// Set stores a byte at addr.
func (m *Memory) Set(addr registers.Address, value uint8) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf, err := m.window(addr, 1)
	if err != nil {
		return err
	}
	buf[0] = value
	return nil
}

// GetU16 returns the little-endian word at addr.
func (m *Memory) GetU16(addr registers.Address) (uint16, error) {
	data, err := m.GetRange(addr, 2)
	if err != nil {
		return 0, err
	}
	return uint16(data[1])<<8 | uint16(data[0]), nil
}

// SetRange copies the data to memory starting at addr.
func (m *Memory) SetRange(addr registers.Address, data ...uint8) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf, err := m.window(addr, len(data))
	if err != nil {
		return err
	}
	copy(buf, data)
	return nil
}

// FillRange fills size bytes starting at addr with the given byte.
func (m *Memory) FillRange(addr registers.Address, size int, char uint8) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf, err := m.window(addr, size)
	if err != nil {
		return err
	}
	for i := range buf {
		buf[i] = char
	}
	return nil
}

// GetRange returns a copy of size bytes starting at addr.
func (m *Memory) GetRange(addr registers.Address, size int) ([]uint8, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	buf, err := m.window(addr, size)
	if err != nil {
		return nil, err
	}
	ret := make([]uint8, size)
	copy(ret, buf)
	return ret, nil
}

// ReadString returns the bytes from addr up to, but not including, the
// terminator.  Reading past the end of the region is a fault.
func (m *Memory) ReadString(addr registers.Address, terminator byte) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	buf, err := m.slice(addr)
	if err != nil {
		return "", err
	}
	for i, c := range buf {
		if c == terminator {
			return string(buf[:i]), nil
		}
	}
	return "", fmt.Errorf("%w: unterminated string at %s", ErrNotMapped, addr)
}

// Len returns the number of mapped regions.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.regions)
}
