// Package dta implements the directory enumeration services, find first
// and find next, along with the disk transfer area they report through.
//
// A search expands a wildcard pattern once, when it starts, and each step
// walks forward through the expanded paths until one passes the attribute
// filter.  Exactly one cursor is current at a time, but callers may swap
// in their own storage to run independent searches.
//
// The expanded paths are only released when a search is run to the end.
// A cursor abandoned part way through keeps its match set alive until it
// is drained, and the Enumerator counts such cursors for diagnostics.
package dta

import (
	"bytes"

	"github.com/skx/dosk/dostime"
)

// NameMax is the size of the name buffer, including its terminator.
const NameMax = 255

// FindData is the public part of a cursor, describing the last match.
type FindData struct {
	// Attrib holds the attributes of the matched file.
	Attrib Attr

	// WrTime is the packed modification time.
	WrTime dostime.Time

	// WrDate is the packed modification date.
	WrDate dostime.Date

	// Size is the length of the file in bytes.
	Size int64

	// Name is the NUL-terminated name of the file, without its path.
	Name [NameMax]byte
}

// FileName returns the name as a string.
func (f *FindData) FileName() string {
	if i := bytes.IndexByte(f.Name[:], 0); i >= 0 {
		return string(f.Name[:i])
	}
	return string(f.Name[:])
}

// setName copies name into the fixed buffer, truncating if need be.
func (f *FindData) setName(name string) {
	n := copy(f.Name[:NameMax-1], name)
	clear(f.Name[n:])
}

// Cursor is a disk transfer area used for a search.
type Cursor struct {
	FindData

	// pattern is the search template.
	pattern string

	// attrib is the attribute filter.
	attrib Attr

	// matches holds the expanded paths, nil once released.
	matches []string

	// index is the next path to examine.
	index int
}

// Pattern returns the template of the last search started with c.
func (c *Cursor) Pattern() string {
	return c.pattern
}

// Pending reports whether the cursor still holds a match set.
func (c *Cursor) Pending() bool {
	return c.matches != nil
}
