// drv_file creates a console input-driver which reads and returns fake
// console input from a file, for scripted automation.
//
// The file may start with a header of "key: value" lines ended by a line
// holding "--".  The only option understood is "newline", which controls
// what the Enter key sends: "cr" (the default, as DOS programs expect),
// "lf", or "both".  A "#" in the input pauses for a while, so programs
// which poll for input see a gap.

package consolein

import (
	"bytes"
	"io"
	"os"
	"strings"
	"time"
)

// FileInput is an input-driver that returns fake console input read
// from the file named by $DOSK_INPUT_FILE, or "input.txt".
type FileInput struct {

	// offset shows the offset into the buffer we're at
	offset int

	// content contains the content of the input file
	content []byte

	// options holds the parsed header.
	options map[string]string

	// pending holds bytes queued by newline translation.
	pending []byte

	// delayUntil is used to see if we're in the middle of a delay,
	// where we pretend we have no input.
	delayUntil time.Time

	// delaySmall is the pause before every poll.
	delaySmall time.Duration

	// delayLarge is the pause triggered by "#".
	delayLarge time.Duration
}

// Setup reads the input file.
func (fi *FileInput) Setup() error {

	fileName := os.Getenv("DOSK_INPUT_FILE")
	if fileName == "" {
		fileName = "input.txt"
	}

	dat, err := os.ReadFile(fileName)
	if err != nil {
		return err
	}

	if fi.delaySmall == 0 {
		fi.delaySmall = 15 * time.Millisecond
	}
	if fi.delayLarge == 0 {
		fi.delayLarge = 5 * time.Second
	}

	fi.content = fi.parseOptions(dat)
	fi.offset = 0
	fi.delayUntil = time.Now()
	return nil
}

// parseOptions splits the optional header from the input, recording the
// options it holds, and returns the remaining input.
func (fi *FileInput) parseOptions(data []byte) []byte {
	fi.options = make(map[string]string)

	header, body, found := bytes.Cut(data, []byte("\n--\n"))
	if !found {
		return data
	}

	for _, line := range strings.Split(string(header), "\n") {
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			// Not a header after all.
			fi.options = make(map[string]string)
			return data
		}
		fi.options[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(val)
	}
	return body
}

// newline returns the bytes the Enter key sends.
func (fi *FileInput) newline() []byte {
	switch fi.options["newline"] {
	case "lf":
		return []byte{'\n'}
	case "both":
		return []byte{'\r', '\n'}
	}
	return []byte{'\r'}
}

// TearDown is a NOP.
func (fi *FileInput) TearDown() error {
	return nil
}

// PendingInput returns true if there is pending input which we can
// return, unless we are pausing.
func (fi *FileInput) PendingInput() bool {

	time.Sleep(fi.delaySmall)

	if time.Now().After(fi.delayUntil) {
		return len(fi.pending) > 0 || fi.offset < len(fi.content)
	}
	return false
}

// BlockForCharacterNoEcho returns the next character from the file we
// use to fake our input.
func (fi *FileInput) BlockForCharacterNoEcho() (byte, error) {

	if len(fi.pending) > 0 {
		c := fi.pending[0]
		fi.pending = fi.pending[1:]
		return c, nil
	}

	for fi.offset < len(fi.content) {
		x := fi.content[fi.offset]
		fi.offset++

		switch x {
		case '#':
			fi.delayUntil = time.Now().Add(fi.delayLarge)
			continue
		case '\n':
			nl := fi.newline()
			fi.pending = nl[1:]
			return nl[0], nil
		}
		return x, nil
	}

	return 0x00, io.EOF
}

// GetName is part of the module API, and returns the name of this driver.
func (fi *FileInput) GetName() string {
	return "file"
}

// init registers our driver, by name.
func init() {
	Register("file", func() ConsoleInput {
		return new(FileInput)
	})
}
