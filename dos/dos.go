// Package dos is the main package of the emulated kernel, it decodes
// register images and carries out the equivalent host operations.
//
// Callers fill in a register bank with a function code and arguments,
// then dispatch an interrupt.  The interrupt number selects a handler
// table through the vector table, and the AH byte selects a handler
// within it.  Some functions are refined further on AL, and "get
// extended error" on BH and BL.  A tuple nothing handles is returned as
// an *UnsupportedError, which the caller may treat as fatal.
//
// Legacy error state is kept in the injected exterr.Reporter, so a
// handler which fails sets the carry flag and the result code in AX
// rather than returning a Go error.  Go errors are reserved for faults
// of the integration itself.
package dos

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/skx/dosk/consolein"
	"github.com/skx/dosk/consoleout"
	"github.com/skx/dosk/dta"
	"github.com/skx/dosk/exterr"
	"github.com/skx/dosk/memory"
	"github.com/skx/dosk/registers"
	"github.com/skx/dosk/segment"
)

var (
	// ErrUnimplemented is matched by every UnsupportedError.
	//
	// It should be handled and expected by callers.
	ErrUnimplemented = errors.New("UNIMPLEMENTED")
)

const (
	// IntDOS is the DOS function dispatcher.
	IntDOS = 0x21

	// IntMultiplex is the multiplex interrupt.
	IntMultiplex = 0x2F
)

// romBase is where the built-in handler tables pretend to live.  The
// addresses are only ever compared, never dereferenced.
const romBase registers.Address = 0xF0000000

// HandlerType contains the signature of a kernel function.
type HandlerType func(k *Kernel, b *registers.Bank) error

// Handler contains details of a specific call we implement.
//
// A handler either performs the call itself, or refines the selection
// through a sub-table.
type Handler struct {
	// Desc contains the human-readable description of the call.
	Desc string

	// Handler contains the function which should be invoked.
	Handler HandlerType

	// Sub holds the next level of the selection, if any.
	Sub *Table
}

// Field names the register byte a table is indexed by.
type Field uint8

// The fields a table may select on.
const (
	AH Field = iota
	AL
	BH
	BL
)

// String returns the register name.
func (f Field) String() string {
	switch f {
	case AH:
		return "AH"
	case AL:
		return "AL"
	case BH:
		return "BH"
	case BL:
		return "BL"
	}
	return fmt.Sprintf("Field(%d)", uint8(f))
}

// value returns the selecting byte of the bank.
func (f Field) value(b *registers.Bank) uint8 {
	switch f {
	case AL:
		return b.AL()
	case BH:
		return b.BH()
	case BL:
		return b.BL()
	}
	return b.AH()
}

// Table is one level of the dispatch.
type Table struct {
	// Name is used in diagnostics.
	Name string

	// Field is the register byte which selects the handler.
	Field Field

	// Handlers are indexed by the value of Field.
	Handlers map[uint8]Handler
}

// Selector is one step of a dispatch path.
type Selector struct {
	Field Field
	Value uint8
}

// String formats the selector as "AH=4Eh".
func (s Selector) String() string {
	return fmt.Sprintf("%s=%02Xh", s.Field, s.Value)
}

// UnsupportedError is returned when no handler exists for a register
// tuple.  Path holds the selections made, the last of which found
// nothing, and is empty when the vector itself is unknown.
type UnsupportedError struct {
	Interrupt      uint8
	Path           []Selector
	AX, BX, CX, DX uint16
}

// Error implements the error interface.
func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("Not implemented: INT %02Xh AX=%04Xh BX=%04Xh CX=%04Xh DX=%04Xh",
		e.Interrupt, e.AX, e.BX, e.CX, e.DX)
}

// Is makes the error match ErrUnimplemented.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnimplemented
}

// Tracer receives every dispatch.
type Tracer interface {
	Record(intnum uint8, before, after *registers.Bank, err error) error
}

// Kernel is the object that holds our emulator state.
type Kernel struct {
	// mu guards vectors, tables, dtaAddr and dtas.
	mu sync.Mutex

	// vectors is the interrupt vector table.
	vectors [256]registers.Address

	// tables are the handler tables, by the address vectors point to.
	tables map[registers.Address]*Table

	// dtaAddr is the flat address of the current DTA, as set by 1Ah.
	dtaAddr registers.Address

	// dtas binds a cursor to each DTA address the caller has set.
	dtas map[registers.Address]*dta.Cursor

	// Memory contains the caller memory the kernel can reach.
	Memory *memory.Memory

	// Errors holds the extended error record.
	Errors *exterr.Reporter

	// Segments is the segment allocator.
	Segments *segment.Allocator

	// Enumerator runs directory searches.
	Enumerator *dta.Enumerator

	// input is our interface for reading from the console.
	input *consolein.ConsoleIn

	// output is our interface for writing to the console.
	output *consoleout.ConsoleOut

	// inputDriver and outputDriver are the names the console drivers
	// are created from.
	inputDriver  string
	outputDriver string

	// clock is used for the date and time services.
	clock Clock

	// loc is the time zone packed file times are interpreted in.
	loc *time.Location

	// tracer, if set, receives every dispatch.
	tracer Tracer

	// Logger holds a logger which we use for debugging and diagnostics.
	Logger *slog.Logger
}

// Option is a configuration function for the kernel.
type Option func(k *Kernel) error

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(k *Kernel) error {
		k.Logger = l
		return nil
	}
}

// WithInputDriver names the console input driver.
func WithInputDriver(name string) Option {
	return func(k *Kernel) error {
		k.inputDriver = name
		return nil
	}
}

// WithOutputDriver names the console output driver.
func WithOutputDriver(name string) Option {
	return func(k *Kernel) error {
		k.outputDriver = name
		return nil
	}
}

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(k *Kernel) error {
		k.clock = c
		return nil
	}
}

// WithLocation sets the time zone packed file times use.
func WithLocation(loc *time.Location) Option {
	return func(k *Kernel) error {
		k.loc = loc
		return nil
	}
}

// WithTrace records every dispatch with t.
func WithTrace(t Tracer) Option {
	return func(k *Kernel) error {
		k.tracer = t
		return nil
	}
}

// WithMemory shares an address space with the caller.
func WithMemory(m *memory.Memory) Option {
	return func(k *Kernel) error {
		k.Memory = m
		return nil
	}
}

// New returns a new kernel, with the default vectors installed.
func New(options ...Option) (*Kernel, error) {
	k := &Kernel{
		tables:       make(map[registers.Address]*Table),
		dtas:         make(map[registers.Address]*dta.Cursor),
		inputDriver:  "stty",
		outputDriver: "ansi",
		clock:        SystemClock{},
		loc:          time.Local,
		Logger:       slog.Default(),
	}

	for _, o := range options {
		if err := o(k); err != nil {
			return nil, err
		}
	}

	if k.Memory == nil {
		k.Memory = memory.New()
	}

	var err error
	k.input, err = consolein.New(k.inputDriver)
	if err != nil {
		return nil, err
	}
	k.output, err = consoleout.New(k.outputDriver)
	if err != nil {
		return nil, err
	}

	k.Errors = exterr.New(k.Logger)
	k.Segments = segment.New(k.Errors,
		segment.WithMemory(k.Memory),
		segment.WithLogger(k.Logger))
	k.Enumerator = dta.New(k.Errors, k.Logger, k.loc)

	// The default DTA lives in kernel memory, like any other.
	k.dtaAddr, err = k.Memory.Place(make([]byte, dta.RecordSize))
	if err != nil {
		return nil, err
	}
	k.dtas[k.dtaAddr] = k.Enumerator.DTA()

	k.Install(IntDOS, dosTable())
	k.Install(IntMultiplex, multiplexTable())
	return k, nil
}

// Install places a handler table in the kernel and points vector n at it.
func (k *Kernel) Install(n uint8, t *Table) registers.Address {
	addr := romBase + registers.Address(n)*4

	k.mu.Lock()
	defer k.mu.Unlock()

	k.tables[addr] = t
	k.vectors[n] = addr
	return addr
}

// SetVect points vector n at addr.
//
// Only addresses returned by Install, or read with GetVect, lead to a
// handler.  Other values are stored, so save and restore sequences work,
// but dispatching through them is unsupported.
func (k *Kernel) SetVect(n uint8, addr registers.Address) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.vectors[n] = addr
}

// GetVect returns vector n.
func (k *Kernel) GetVect(n uint8) registers.Address {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.vectors[n]
}

// Setup prepares the console for use.
func (k *Kernel) Setup() error {
	return k.input.Setup()
}

// TearDown restores the console.
func (k *Kernel) TearDown() error {
	return k.input.TearDown()
}

// StuffInput inserts fake console input, returned before anything the
// input driver reads.
func (k *Kernel) StuffInput(input string) {
	k.input.StuffInput(input)
}

// GetInputDriver returns the console input driver.
func (k *Kernel) GetInputDriver() consolein.ConsoleInput {
	return k.input.GetDriver()
}

// GetOutputDriver returns the console output driver.
func (k *Kernel) GetOutputDriver() consoleout.ConsoleOutput {
	return k.output.GetDriver()
}

// Dispatch runs the handler selected by the interrupt number and the
// register bank, which is updated in place.
func (k *Kernel) Dispatch(intnum uint8, b *registers.Bank) error {
	var before registers.Bank
	if k.tracer != nil {
		before = *b
	}

	err := k.dispatch(intnum, b)

	if k.tracer != nil {
		if terr := k.tracer.Record(intnum, &before, b, err); terr != nil {
			k.Logger.Warn("failed to record dispatch",
				slog.String("error", terr.Error()))
		}
	}
	return err
}

// Intr is the single structure form of Dispatch.
func (k *Kernel) Intr(intnum uint8, b *registers.Bank) error {
	return k.Dispatch(intnum, b)
}

// dispatch walks the tables.
func (k *Kernel) dispatch(intnum uint8, b *registers.Bank) error {
	k.mu.Lock()
	t := k.tables[k.vectors[intnum]]
	k.mu.Unlock()

	unsupported := &UnsupportedError{
		Interrupt: intnum,
		AX:        b.AX.U16(),
		BX:        b.BX.U16(),
		CX:        b.CX.U16(),
		DX:        b.DX.U16(),
	}

	if t == nil {
		k.Logger.Error("Unimplemented interrupt",
			slog.Int("interrupt", int(intnum)),
			slog.String("interruptHex", fmt.Sprintf("0x%02X", intnum)),
			slog.String("vector", k.GetVect(intnum).String()))
		return unsupported
	}

	var names []string
	for t != nil {
		sel := Selector{Field: t.Field, Value: t.Field.value(b)}
		unsupported.Path = append(unsupported.Path, sel)

		handler, exists := t.Handlers[sel.Value]
		if !exists {
			k.Logger.Error("Unimplemented function",
				slog.String("table", t.Name),
				slog.Int("interrupt", int(intnum)),
				slog.String("interruptHex", fmt.Sprintf("0x%02X", intnum)),
				slog.String("path", pathString(unsupported.Path)),
				slog.String("error", unsupported.Error()))
			return unsupported
		}

		names = append(names, handler.Desc)
		if handler.Sub != nil {
			t = handler.Sub
			continue
		}

		// Log the call we're going to make
		k.Logger.Debug("Dispatch",
			slog.String("name", strings.Join(names, "/")),
			slog.Int("interrupt", int(intnum)),
			slog.String("interruptHex", fmt.Sprintf("0x%02X", intnum)),
			slog.Int("ah", int(b.AH())),
			slog.String("ahHex", fmt.Sprintf("0x%02X", b.AH())),
			slog.String("path", pathString(unsupported.Path)))

		return handler.Handler(k, b)
	}
	return unsupported
}

// pathString formats a selection path.
func pathString(path []Selector) string {
	parts := make([]string, len(path))
	for i, s := range path {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}
