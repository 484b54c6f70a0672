package dta

import (
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/skx/dosk/dostime"
	"github.com/skx/dosk/exterr"
	"golang.org/x/sys/unix"
)

// DefaultMaxMatches bounds the size of a match set.
const DefaultMaxMatches = 65536

// special are the filter bits which also select ordinary files.
const special = Hidden | ReadOnly | Subdir | System

// Enumerator runs searches on the current cursor.
type Enumerator struct {
	// mu guards every field below, and the cursors while they are used.
	mu sync.Mutex

	// current is the cursor searches run on.
	current *Cursor

	// def is the cursor installed at startup.
	def Cursor

	// live holds the cursors whose match sets are not yet released.
	live map[*Cursor]struct{}

	// reporter receives our failures.
	reporter *exterr.Reporter

	// logger is used for diagnostics.
	logger *slog.Logger

	// loc is the time zone modification times are packed in.
	loc *time.Location

	// MaxMatches bounds the number of paths a pattern may expand to.
	MaxMatches int
}

// New returns an enumerator with its default cursor installed.  Found
// files have their modification time packed in loc, or local time if loc
// is nil.
func New(reporter *exterr.Reporter, logger *slog.Logger, loc *time.Location) *Enumerator {
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.Local
	}
	e := &Enumerator{
		loc:        loc,
		live:       make(map[*Cursor]struct{}),
		reporter:   reporter,
		logger:     logger,
		MaxMatches: DefaultMaxMatches,
	}
	e.current = &e.def
	return e
}

// SetDTA makes c the current cursor.  A nil cursor reinstalls the
// default one.
func (e *Enumerator) SetDTA(c *Cursor) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if c == nil {
		c = &e.def
	}
	e.current = c
}

// DTA returns the current cursor.
func (e *Enumerator) DTA() *Cursor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Outstanding returns the number of cursors which hold a match set that
// has not been drained.
func (e *Enumerator) Outstanding() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.live)
}

// FindFirst starts a search of pattern on the current cursor and returns
// the first match.
//
// A pattern which matches nothing fails here, with file not found, rather
// than on the first step.  When the search cannot be started the current
// cursor is left as it was.
func (e *Enumerator) FindFirst(pattern string, attrib Attr) exterr.Code {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.findFirst(e.current, pattern, attrib)
}

// FindNext returns the next match of the current cursor.
func (e *Enumerator) FindNext() exterr.Code {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.findNext(e.current)
}

// First starts a search on c, leaving the current cursor in place.
func (e *Enumerator) First(c *Cursor, pattern string, attrib Attr) exterr.Code {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.current
	e.current = c
	defer func() { e.current = prev }()

	return e.findFirst(c, pattern, attrib)
}

// Next continues the search on c, leaving the current cursor in place.
func (e *Enumerator) Next(c *Cursor) exterr.Code {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.current
	e.current = c
	defer func() { e.current = prev }()

	return e.findNext(c)
}

// findFirst is FindFirst without the lock.
func (e *Enumerator) findFirst(c *Cursor, pattern string, attrib Attr) exterr.Code {
	matches, err := glob(pattern, e.MaxMatches)
	if err != nil {
		e.logger.Debug("expansion failed",
			slog.String("pattern", pattern),
			slog.String("error", err.Error()))
		return e.expansionFailed(err)
	}

	// A cursor restarted before it was drained leaks its old set.
	if c.matches != nil {
		e.logger.Debug("abandoned search", slog.String("pattern", c.pattern))
	}

	c.pattern = pattern
	c.attrib = attrib
	c.matches = matches
	c.index = 0
	e.live[c] = struct{}{}

	return e.findNext(c)
}

// expansionFailed records why a pattern could not be expanded.
func (e *Enumerator) expansionFailed(err error) exterr.Code {
	var terr *TraversalError

	switch {
	case errors.Is(err, ErrNoMatch):
		return e.reporter.Set(exterr.FileNotFound, 0)
	case errors.Is(err, ErrNoSpace):
		return e.reporter.Set(exterr.InsufficientMemory, unix.ENOMEM)
	case errors.As(err, &terr):
		switch errno := exterr.Errno(terr.Err); errno {
		case unix.EACCES:
			return e.reporter.Set(exterr.SearchAccessDenied, errno)
		case unix.ENOENT:
			return e.reporter.Set(exterr.PathNotFound, errno)
		case unix.EIO:
			return e.reporter.Set(exterr.SearchReadFault, errno)
		}
	}
	return e.reporter.Report(err)
}

// findNext is FindNext without the lock.
func (e *Enumerator) findNext(c *Cursor) exterr.Code {
	for ; c.index < len(c.matches); c.index++ {
		path := c.matches[c.index]

		// Entries which cannot be examined are skipped.
		attr, err := GetFileAttr(path)
		if err != nil {
			continue
		}
		var st unix.Stat_t
		if err = unix.Stat(path, &st); err != nil {
			continue
		}
		isDir := st.Mode&unix.S_IFMT == unix.S_IFDIR

		if c.attrib&attr == 0 && (isDir || (c.attrib&special == 0 && c.attrib != 0)) {
			continue
		}

		c.index++

		date, tm, err := dostime.Pack(dostime.FromTimespec(st.Mtim, e.loc))
		if err != nil {
			e.logger.Debug("unrepresentable modification time", slog.String("path", path))
			return e.reporter.Set(exterr.BadArguments, unix.EINVAL)
		}

		c.Attrib = attr
		c.WrDate = date
		c.WrTime = tm
		c.Size = st.Size
		// Only the base name is kept, where the C library copied the whole path.
		c.setName(filepath.Base(path))
		return exterr.CodeNone
	}

	c.matches = nil
	delete(e.live, c)
	return e.reporter.Set(exterr.NoMoreFiles, 0)
}
