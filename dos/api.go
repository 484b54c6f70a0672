// This file holds the library form of the kernel services, for Go
// callers which would rather not build register images.
//
// Each function returns the extended error code of the failure, or
// exterr.CodeNone, and records the failure exactly as the register form
// does.

package dos

import (
	"errors"
	"time"

	"github.com/skx/dosk/dostime"
	"github.com/skx/dosk/dta"
	"github.com/skx/dosk/exterr"
	"github.com/skx/dosk/segment"
	"golang.org/x/sys/unix"
)

// DosFindFirst starts a search of pattern on c, which receives the first
// match.  The current disk transfer area is not changed.
func (k *Kernel) DosFindFirst(pattern string, attrib dta.Attr, c *dta.Cursor) exterr.Code {
	return k.Enumerator.First(c, pattern, attrib)
}

// DosFindNext continues the search on c.
func (k *Kernel) DosFindNext(c *dta.Cursor) exterr.Code {
	return k.Enumerator.Next(c)
}

// DosAllocMem allocates size paragraphs.  On failure the paragraphs
// available are returned instead of a segment.
func (k *Kernel) DosAllocMem(size uint64) (segment.Handle, uint64, exterr.Code) {
	return k.Segments.Allocate(size)
}

// DosSetBlock resizes seg to size paragraphs.  On failure the paragraphs
// available are returned.
func (k *Kernel) DosSetBlock(size uint64, seg segment.Handle) (uint64, exterr.Code) {
	return k.Segments.Resize(seg, size)
}

// DosFreeMem releases seg.
func (k *Kernel) DosFreeMem(seg segment.Handle) exterr.Code {
	return k.Segments.Free(seg)
}

// DosExtErr returns the extended error record.
func (k *Kernel) DosExtErr() exterr.Record {
	return k.Errors.Current()
}

// DosGetFileAttr returns the attributes of path.
func (k *Kernel) DosGetFileAttr(path string) (dta.Attr, exterr.Code) {
	attr, err := dta.GetFileAttr(path)
	if err != nil {
		return 0, k.Errors.Report(err)
	}
	return attr, exterr.CodeNone
}

// DosSetFileAttr sets the attributes of path.
func (k *Kernel) DosSetFileAttr(path string, attr dta.Attr) exterr.Code {
	if err := dta.SetFileAttr(path, attr); err != nil {
		return k.Errors.Report(err)
	}
	return exterr.CodeNone
}

// DosGetFTime returns the modification time of the file open on handle.
func (k *Kernel) DosGetFTime(handle int) (dostime.Date, dostime.Time, exterr.Code) {
	var st unix.Stat_t
	if err := unix.Fstat(handle, &st); err != nil {
		return 0, 0, k.Errors.Report(err)
	}

	date, tm, err := dostime.Pack(dostime.FromTimespec(st.Mtim, k.loc))
	if err != nil {
		return 0, 0, k.Errors.Set(exterr.BadArguments, unix.EINVAL)
	}
	return date, tm, exterr.CodeNone
}

// DosSetFTime sets the modification time of the file open on handle,
// keeping its access time.
func (k *Kernel) DosSetFTime(handle int, date dostime.Date, tm dostime.Time) exterr.Code {
	var st unix.Stat_t
	if err := unix.Fstat(handle, &st); err != nil {
		return k.Errors.Report(err)
	}

	mtime, err := dostime.Unpack(date, tm, k.loc)
	if err != nil {
		return k.Errors.Set(exterr.BadArguments, unix.EINVAL)
	}

	tv := []unix.Timeval{
		unix.NsecToTimeval(st.Atim.Nano()),
		unix.NsecToTimeval(mtime.UnixNano()),
	}
	if err = unix.Futimes(handle, tv); err != nil {
		return k.Errors.Report(err)
	}
	return exterr.CodeNone
}

// DosGetDate returns the current date.
func (k *Kernel) DosGetDate() dostime.DosDate {
	d, _ := dostime.FromTime(k.clock.Now())
	return d
}

// DosGetTime returns the current time.
func (k *Kernel) DosGetTime() dostime.DosTime {
	_, t := dostime.FromTime(k.clock.Now())
	return t
}

// DosSetDate changes the date, keeping the time of day.
func (k *Kernel) DosSetDate(d dostime.DosDate) exterr.Code {
	t, err := dostime.WithDate(k.clock.Now(), d)
	if err != nil {
		return k.Errors.Set(exterr.BadArguments, unix.EINVAL)
	}
	return k.setClock(t)
}

// DosSetTime changes the time of day, keeping the date.
func (k *Kernel) DosSetTime(t dostime.DosTime) exterr.Code {
	now, err := dostime.WithTime(k.clock.Now(), t)
	if err != nil {
		return k.Errors.Set(exterr.BadArguments, unix.EINVAL)
	}
	return k.setClock(now)
}

// setClock changes the clock, recording any failure.
func (k *Kernel) setClock(t time.Time) exterr.Code {
	if err := k.clock.Set(t); err != nil {
		if errors.Is(err, dostime.ErrBadArguments) {
			return k.Errors.Set(exterr.BadArguments, unix.EINVAL)
		}
		return k.Errors.Report(err)
	}
	return exterr.CodeNone
}
