// Package consoleout is an abstraction over console output.
//
// Characters written by the character output services go through a
// driver, chosen by name.  The "ansi" driver passes bytes straight to
// the terminal, the "cp437" driver translates the DOS character set to
// UTF-8, and the "null" and "logger" drivers exist for testing.
package consoleout

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownDriver is returned when a driver name is not registered.
var ErrUnknownDriver = errors.New("unknown console output driver")

// ConsoleOutput is the interface that must be implemented by anything
// that wishes to be used as a console driver.
//
// Providing this interface is implemented an object may register itself,
// by name, via the Register method.
type ConsoleOutput interface {

	// PutCharacter will output the specified character to the defined writer.
	//
	// The writer will default to STDOUT, but can be changed, via SetWriter.
	PutCharacter(c uint8)

	// GetName will return the name of the driver.
	GetName() string

	// SetWriter will update the writer.
	SetWriter(io.Writer)
}

// ConsoleRecorder is an interface that allows returning the contents that
// have been previously sent to the console.
//
// This is used solely for integration tests.
type ConsoleRecorder interface {

	// GetOutput returns the contents which have been displayed.
	GetOutput() string

	// Reset removes any stored state.
	Reset()
}

// Constructor is the signature of a constructor-function
// which is used to instantiate an instance of a driver.
type Constructor func() ConsoleOutput

// handlers is the map of known drivers.
var handlers = struct {
	mu sync.Mutex
	m  map[string]Constructor
}{m: make(map[string]Constructor)}

// Register makes a console driver available, by name.
//
// When one needs to be created the constructor can be called
// to create an instance of it.
func Register(name string, obj Constructor) {
	handlers.mu.Lock()
	defer handlers.mu.Unlock()

	handlers.m[strings.ToLower(name)] = obj
}

// lookup returns the constructor of the named driver.
func lookup(name string) (Constructor, error) {
	handlers.mu.Lock()
	defer handlers.mu.Unlock()

	ctor, ok := handlers.m[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownDriver, name)
	}
	return ctor, nil
}

// ConsoleOut holds our state, which is basically just a
// pointer to the object handling our output.
type ConsoleOut struct {
	// mu serializes output, so characters from concurrent callers are
	// never interleaved inside an escape sequence.
	mu sync.Mutex

	// driver is the thing that actually writes our output.
	driver ConsoleOutput
}

// New is our constructor, it creates an output device which uses
// the specified driver.
func New(name string) (*ConsoleOut, error) {
	ctor, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return &ConsoleOut{driver: ctor()}, nil
}

// GetDriver allows getting our driver at runtime.
func (co *ConsoleOut) GetDriver() ConsoleOutput {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.driver
}

// ChangeDriver allows changing our driver at runtime.
func (co *ConsoleOut) ChangeDriver(name string) error {
	ctor, err := lookup(name)
	if err != nil {
		return err
	}

	co.mu.Lock()
	co.driver = ctor()
	co.mu.Unlock()
	return nil
}

// GetName returns the name of our selected driver.
func (co *ConsoleOut) GetName() string {
	return co.GetDriver().GetName()
}

// GetDrivers returns all available driver-names, sorted.
//
// We hide the internal "null", and "logger" drivers.
func (co *ConsoleOut) GetDrivers() []string {
	handlers.mu.Lock()
	defer handlers.mu.Unlock()

	valid := []string{}
	for x := range handlers.m {
		if x != "null" && x != "logger" {
			valid = append(valid, x)
		}
	}
	sort.Strings(valid)
	return valid
}

// SetWriter redirects the output of our driver.
func (co *ConsoleOut) SetWriter(w io.Writer) {
	co.mu.Lock()
	defer co.mu.Unlock()
	co.driver.SetWriter(w)
}

// PutCharacter outputs a character, using our selected driver.
func (co *ConsoleOut) PutCharacter(c byte) {
	co.mu.Lock()
	defer co.mu.Unlock()
	co.driver.PutCharacter(c)
}

// PutString outputs each byte of s.
func (co *ConsoleOut) PutString(s string) {
	co.mu.Lock()
	defer co.mu.Unlock()
	for i := 0; i < len(s); i++ {
		co.driver.PutCharacter(s[i])
	}
}
