// Package trace records the register images of kernel calls to a file,
// and reads them back.
//
// A trace file starts with a fixed header, followed by a snappy stream
// of frames.  Each frame holds the interrupt number, the registers before
// and after the call, and the error the call returned, if any.
package trace

import (
	"encoding/binary"
	"io"
	"sync"

	"github.com/golang/snappy"
	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"

	"github.com/skx/dosk/registers"
)

// Magic identifies a trace file.
const Magic = "DKTR"

// Version is the file format we write.
const Version = 1

// order is the byte order of everything in a trace.
var order = binary.LittleEndian

// Header is the start of a trace file.
type Header struct {
	// Magic holds "DKTR".
	Magic string `struc:"[4]byte"`

	// Version is the file format version.
	Version uint32

	// Registers is the number of register words in each image.
	Registers uint16
}

// Frame is one recorded call.
type Frame struct {
	Interrupt uint8
	Before    []uint64 `struc:"[14]uint64"`
	After     []uint64 `struc:"[14]uint64"`
	ErrLen    int      `struc:"uint16,sizeof=Err"`
	Err       string
}

// Changed reports whether register i was changed by the call.
func (f *Frame) Changed(i int) bool {
	return f.Before[i] != f.After[i]
}

// Writer writes a trace.
type Writer struct {
	mu sync.Mutex
	w  io.WriteCloser
	zw *snappy.Writer
}

// NewWriter writes the header to w, and returns a writer for the frames.
func NewWriter(w io.WriteCloser) (*Writer, error) {
	header := &Header{
		Magic:     Magic,
		Version:   Version,
		Registers: uint16(len(registers.Names)),
	}
	if err := struc.PackWithOrder(w, header, order); err != nil {
		return nil, errors.Wrap(err, "failed to pack header")
	}
	return &Writer{w: w, zw: snappy.NewBufferedWriter(w)}, nil
}

// Record writes one frame.
func (t *Writer) Record(intnum uint8, before, after *registers.Bank, err error) error {
	frame := &Frame{
		Interrupt: intnum,
		Before:    before.Values(),
		After:     after.Values(),
	}
	if err != nil {
		frame.Err = err.Error()
		if len(frame.Err) > 0xFFFF {
			frame.Err = frame.Err[:0xFFFF]
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if perr := struc.PackWithOrder(t.zw, frame, order); perr != nil {
		return errors.Wrap(perr, "failed to pack frame")
	}
	return nil
}

// Close flushes the stream and closes the file.
func (t *Writer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.zw.Close(); err != nil {
		t.w.Close()
		return errors.Wrap(err, "failed to flush trace")
	}
	return t.w.Close()
}

// Reader reads a trace.
type Reader struct {
	r  io.ReadCloser
	zr *snappy.Reader

	// Header is the header of the file.
	Header Header
}

// NewReader reads the header from r.
func NewReader(r io.ReadCloser) (*Reader, error) {
	t := &Reader{r: r}
	if err := struc.UnpackWithOrder(r, &t.Header, order); err != nil {
		return nil, errors.Wrap(err, "failed to unpack header")
	}
	if t.Header.Magic != Magic {
		return nil, errors.New("invalid trace file magic")
	}
	if t.Header.Version != Version {
		return nil, errors.Errorf("unsupported trace version %d", t.Header.Version)
	}
	if int(t.Header.Registers) != len(registers.Names) {
		return nil, errors.Errorf("trace holds %d registers, expected %d", t.Header.Registers, len(registers.Names))
	}
	t.zr = snappy.NewReader(r)
	return t, nil
}

// Next returns the next frame, or io.EOF at the end of the trace.
func (t *Reader) Next() (*Frame, error) {
	frame := &Frame{}
	err := struc.UnpackWithOrder(t.zr, frame, order)
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to unpack frame")
	}
	return frame, nil
}

// Close closes the file.
func (t *Reader) Close() error {
	t.zr.Reset(nil)
	return t.r.Close()
}
