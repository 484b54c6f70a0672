package dta

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

var (
	// ErrNoMatch is returned when a pattern matches nothing.
	ErrNoMatch = errors.New("no match")

	// ErrNoSpace is returned when a pattern matches more paths than we
	// are prepared to hold.
	ErrNoSpace = errors.New("too many matches")
)

// TraversalError describes a directory which could not be read during
// expansion.
type TraversalError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *TraversalError) Error() string {
	return fmt.Sprintf("reading %s: %s", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *TraversalError) Unwrap() error {
	return e.Err
}

// hasMeta reports whether the path contains wildcards.
func hasMeta(path string) bool {
	return strings.ContainsAny(path, "*?[")
}

// literal makes backslashes match themselves, there is no escaping.
func literal(pattern string) string {
	return strings.ReplaceAll(pattern, `\`, `\\`)
}

// glob expands pattern in the shell manner.
//
// Unlike filepath.Glob the results are left in the order the directories
// list them, a backslash is an ordinary character, and a directory which
// cannot be read aborts the expansion.  Names starting with a dot only
// match a pattern component which starts with a dot.  A component whose
// brackets do not form a valid class has them matched literally.
func glob(pattern string, limit int) ([]string, error) {
	g := &globber{limit: limit}
	if err := g.expand(pattern); err != nil {
		return nil, err
	}
	if len(g.out) == 0 {
		return nil, ErrNoMatch
	}
	return g.out, nil
}

// globber holds the state of one expansion.
type globber struct {
	out   []string
	limit int
}

// add records a result.
func (g *globber) add(path string) error {
	if g.limit > 0 && len(g.out) >= g.limit {
		return ErrNoSpace
	}
	g.out = append(g.out, path)
	return nil
}

// expand appends the matches of pattern.
func (g *globber) expand(pattern string) error {
	if !hasMeta(pattern) {
		if _, err := os.Lstat(pattern); err == nil {
			return g.add(pattern)
		}
		return nil
	}

	dir, file := filepath.Split(pattern)
	dir = cleanDir(dir)

	if !hasMeta(dir) {
		return g.scan(dir, file, pattern == file)
	}

	// Expand the directory part first, then look inside each result.
	parent := &globber{}
	if err := parent.expand(dir); err != nil {
		return err
	}
	for _, d := range parent.out {
		if err := g.scan(d, file, false); err != nil {
			return err
		}
	}
	return nil
}

// scan appends the entries of dir which match the single component
// pattern.  A bare pattern is reported without a directory prefix.
func (g *globber) scan(dir, pattern string, bare bool) error {
	f, err := os.Open(dir)
	if err != nil {
		if errors.Is(err, unix.ENOTDIR) {
			return nil
		}
		return &TraversalError{Path: dir, Err: err}
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		if errors.Is(err, unix.ENOTDIR) {
			return nil
		}
		return &TraversalError{Path: dir, Err: err}
	}

	dot := strings.HasPrefix(pattern, ".")
	pat := literal(pattern)
	for _, name := range names {
		if strings.HasPrefix(name, ".") && !dot {
			continue
		}
		ok, merr := filepath.Match(pat, name)
		if merr != nil {
			// A bracket which does not open a valid class is literal.
			pat = strings.ReplaceAll(pat, "[", `\[`)
			ok, merr = filepath.Match(pat, name)
			if merr != nil {
				return nil
			}
		}
		if !ok {
			continue
		}
		path := name
		if !bare {
			path = filepath.Join(dir, name)
		}
		if err = g.add(path); err != nil {
			return err
		}
	}
	return nil
}

// cleanDir strips the trailing separator from the directory part of a
// pattern, keeping the root intact.
func cleanDir(dir string) string {
	switch dir {
	case "":
		return "."
	case string(filepath.Separator):
		return dir
	}
	return strings.TrimSuffix(dir, string(filepath.Separator))
}
