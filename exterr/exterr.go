// Package exterr holds the extended error state of the emulated kernel.
//
// Every service which fails records a four-part description of the
// failure (code, class, suggested action and locus) which callers fetch
// later with "get extended error".  Host failures are translated through
// a table covering every errno the host defines, and domain failures
// which have no errno are recorded directly with Set.
//
// The record is never cleared by a successful call, callers see the last
// failure until another failure replaces it.
package exterr

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"golang.org/x/sys/unix"
)

// ErrUnmapped is returned by Translate for an errno missing from the table.
var ErrUnmapped = errors.New("errno has no extended error mapping")

// Reporter holds the extended error record.
type Reporter struct {
	// mu guards every field below.
	mu sync.Mutex

	// rec is the current record.
	rec Record

	// doserrno shadows the code of rec, as the last legacy error.
	doserrno Code

	// errno is the host error cell, the errno of the last failure.
	errno unix.Errno

	// logger is used to report unmapped errno values.
	logger *slog.Logger
}

// New returns a reporter with an empty record.
func New(logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{logger: logger}
}

// Lookup returns the record for the given errno.
func Lookup(errno unix.Errno) (Record, bool) {
	rec, ok := errnoTable[errno]
	return rec, ok
}

// Translate returns the record for the errno, or ErrUnmapped with the
// fallback record.
func Translate(errno unix.Errno) (Record, error) {
	rec, ok := errnoTable[errno]
	if !ok {
		return Unmapped, fmt.Errorf("%w: %d (%s)", ErrUnmapped, int(errno), unix.ErrnoName(errno))
	}
	return rec, nil
}

// Errno extracts the host errno carried by err.
//
// Errors which wrap a unix.Errno, such as *fs.PathError, give that errno.
// The portable fs sentinels are mapped to their obvious errno, and any
// other error is treated as EINVAL.  A nil error is zero.
func Errno(err error) unix.Errno {
	if err == nil {
		return 0
	}

	var errno unix.Errno
	if errors.As(err, &errno) {
		return errno
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return unix.ENOENT
	case errors.Is(err, fs.ErrPermission):
		return unix.EACCES
	case errors.Is(err, fs.ErrExist):
		return unix.EEXIST
	case errors.Is(err, fs.ErrClosed):
		return unix.EBADF
	}
	return unix.EINVAL
}

// Report records a failed host operation, returning the new code.
//
// A nil error, or a zero errno, leaves the record as it is and returns
// its code.
func (r *Reporter) Report(err error) Code {
	errno := Errno(err)

	r.mu.Lock()
	defer r.mu.Unlock()

	if errno == 0 {
		return r.rec.Code
	}

	rec, terr := Translate(errno)
	if terr != nil {
		r.logger.Error("Unmapped errno",
			slog.Int("errno", int(errno)),
			slog.String("error", terr.Error()))
	}

	r.errno = errno
	r.store(rec)
	return r.rec.Code
}

// Set records a failure which has no host errno.
//
// Any field holding its DontChange value is left as it was.  The host
// error cell is replaced by errno, which is usually zero so that later
// reports do not pick up a stale host failure.
func (r *Reporter) Set(rec Record, errno unix.Errno) Code {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errno = errno
	r.store(rec)
	return r.rec.Code
}

// store applies rec to the record, skipping unchanged fields.  The caller
// holds the lock.
func (r *Reporter) store(rec Record) {
	if rec.Code != CodeDontChange {
		r.rec.Code = rec.Code
	}
	if rec.Class != ClassDontChange {
		r.rec.Class = rec.Class
	}
	if rec.Action != ActionDontChange {
		r.rec.Action = rec.Action
	}
	if rec.Locus != LocusDontChange {
		r.rec.Locus = rec.Locus
	}
	r.doserrno = r.rec.Code
}

// Current returns a copy of the record.
func (r *Reporter) Current() Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rec
}

// DOSErrno returns the last legacy error code.
func (r *Reporter) DOSErrno() Code {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doserrno
}

// Errno returns the host error cell.
func (r *Reporter) Errno() unix.Errno {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errno
}

// String formats a record for diagnostics.
func (rec Record) String() string {
	return fmt.Sprintf("code=%02Xh class=%02Xh action=%02Xh locus=%02Xh",
		uint8(rec.Code), uint8(rec.Class), uint8(rec.Action), uint8(rec.Locus))
}
