package segment

import "golang.org/x/sys/unix"

// SystemHost maps anonymous private memory from the kernel.
type SystemHost struct{}

// Map returns a fresh mapping.
func (SystemHost) Map(length int) ([]byte, error) {
	return unix.Mmap(-1, 0, length,
		unix.PROT_READ|unix.PROT_WRITE|unix.PROT_EXEC,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
}

// Remap resizes the mapping in place, it fails rather than moving it.
func (SystemHost) Remap(data []byte, length int) ([]byte, error) {
	return unix.Mremap(data, length, 0)
}

// Unmap releases the mapping.
func (SystemHost) Unmap(data []byte) error {
	return unix.Munmap(data)
}

// Available returns the free physical memory.
func (SystemHost) Available() uint64 {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0
	}
	return uint64(info.Freeram) * uint64(info.Unit)
}
