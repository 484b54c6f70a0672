// This file implements the handle-based file functions, and the file
// attribute functions.

package dos

import (
	"log/slog"

	"github.com/skx/dosk/dostime"
	"github.com/skx/dosk/dta"
	"github.com/skx/dosk/exterr"
	"github.com/skx/dosk/registers"
	"golang.org/x/sys/unix"
)

// errFault is reported for pointers which lead nowhere.
const errFault = unix.EFAULT

// Share modes, held in bits 4-6 of the open mode.
const (
	shareCompat = 0x00
	shareDenyRW = 0x01
	shareDenyWR = 0x02
	shareDenyRD = 0x03
	shareDenyNo = 0x04
)

// openNoInherit is the bit of the open mode which keeps the handle from
// child processes.
const openNoInherit = 0x80

// path reads the NUL-terminated file name at DS:DX.  On failure the
// result is already stored in the bank.
func (k *Kernel) path(b *registers.Bank) (string, bool) {
	addr := registers.FarPointer(b.DS, b.DX)

	name, err := k.Memory.ReadString(addr, 0x00)
	if err != nil {
		k.Logger.Warn("bad path pointer",
			slog.String("address", addr.String()),
			slog.String("error", err.Error()))
		b.Result(uint64(k.Errors.Report(errFault)))
		return "", false
	}
	return name, true
}

// succeed stores a value in AX, clearing the carry flag.
func succeed(b *registers.Bank, value uint64) {
	b.AX = registers.Reg(value)
	b.SetCarry(false)
}

// fail records a host failure in the bank.
func (k *Kernel) fail(b *registers.Bank, err error) error {
	b.Result(uint64(k.Errors.Report(err)))
	return nil
}

// creat creates a file with the given open flags, returning the handle
// in AX.
func (k *Kernel) creat(b *registers.Bank, flags int) error {
	name, ok := k.path(b)
	if !ok {
		return nil
	}

	var mode uint32 = unix.S_IRWXU
	if dta.Attr(b.CX.Lo())&dta.ReadOnly != 0 {
		mode &^= unix.S_IWUSR
	}

	fd, err := unix.Open(name, flags, mode)
	if err != nil {
		return k.fail(b, err)
	}

	k.Logger.Debug("created file",
		slog.String("path", name),
		slog.Int("handle", fd))
	succeed(b, uint64(fd))
	return nil
}

// Create creates, or truncates, the file named at DS:DX with the
// attributes in CX.  AX receives the handle.
func Create(k *Kernel, b *registers.Bank) error {
	return k.creat(b, unix.O_RDWR|unix.O_CREAT|unix.O_TRUNC)
}

// CreateNew creates the file named at DS:DX, failing if it exists.
func CreateNew(k *Kernel, b *registers.Bank) error {
	return k.creat(b, unix.O_RDWR|unix.O_CREAT|unix.O_EXCL)
}

// Open opens the file named at DS:DX, with the mode in AL.  AX receives
// the handle.
//
// The access mode is held in bits 0-1.  The share mode in bits 4-6 is
// enforced with an advisory record lock over the whole file, and bit 7
// closes the handle on exec.
func Open(k *Kernel, b *registers.Bank) error {
	name, ok := k.path(b)
	if !ok {
		return nil
	}

	mode := b.AL()

	fd, err := unix.Open(name, int(mode&0x03), 0)
	if err != nil {
		return k.fail(b, err)
	}

	var lock int16 = -1
	switch (mode >> 4) & 0x07 {
	case shareDenyRW, shareDenyRD:
		lock = unix.F_WRLCK
	case shareDenyWR:
		lock = unix.F_RDLCK
	case shareCompat, shareDenyNo:
	}

	if lock >= 0 {
		flock := unix.Flock_t{Type: lock, Whence: 0, Start: 0, Len: 0}
		if err = unix.FcntlFlock(uintptr(fd), unix.F_SETLK, &flock); err != nil {
			unix.Close(fd)
			return k.fail(b, err)
		}
	}

	if mode&openNoInherit != 0 {
		if _, err = unix.FcntlInt(uintptr(fd), unix.F_SETFD, unix.FD_CLOEXEC); err != nil {
			unix.Close(fd)
			return k.fail(b, err)
		}
	}

	k.Logger.Debug("opened file",
		slog.String("path", name),
		slog.Int("mode", int(mode)),
		slog.Int("handle", fd))
	succeed(b, uint64(fd))
	return nil
}

// Close closes the handle in BX.
func Close(k *Kernel, b *registers.Bank) error {
	if err := unix.Close(int(b.BX)); err != nil {
		return k.fail(b, err)
	}
	b.Result(0)
	return nil
}

// GetFileAttr returns the attributes of the file named at DS:DX in CX.
func GetFileAttr(k *Kernel, b *registers.Bank) error {
	name, ok := k.path(b)
	if !ok {
		return nil
	}

	attr, code := k.DosGetFileAttr(name)
	b.Result(uint64(code))
	if code == exterr.CodeNone {
		b.CX = registers.Reg(attr)
	}
	return nil
}

// SetFileAttr sets the attributes of the file named at DS:DX from CX.
func SetFileAttr(k *Kernel, b *registers.Bank) error {
	name, ok := k.path(b)
	if !ok {
		return nil
	}

	b.Result(uint64(k.DosSetFileAttr(name, dta.Attr(b.CX.Lo()))))
	return nil
}

// GetFileTime returns the modification time of the handle in BX, CX
// holds the packed time and DX the packed date.
func GetFileTime(k *Kernel, b *registers.Bank) error {
	date, tm, code := k.DosGetFTime(int(b.BX))
	b.Result(uint64(code))
	if code == exterr.CodeNone {
		b.CX = registers.Reg(tm)
		b.DX = registers.Reg(date)
	}
	return nil
}

// SetFileTime sets the modification time of the handle in BX from the
// packed time in CX and date in DX.  The access time is kept.
func SetFileTime(k *Kernel, b *registers.Bank) error {
	code := k.DosSetFTime(int(b.BX), dostime.Date(b.DX.U16()), dostime.Time(b.CX.U16()))
	b.Result(uint64(code))
	return nil
}

// FileLength returns the length of the file open on handle.
func (k *Kernel) FileLength(handle int) (int64, error) {
	var st unix.Stat_t
	if err := unix.Fstat(handle, &st); err != nil {
		k.Errors.Report(err)
		return -1, err
	}
	return st.Size, nil
}
