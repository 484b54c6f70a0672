// Package consolein handles the reading of console input for the
// emulated kernel.
//
// The kernel only ever needs a single character at a time, with or
// without echo, and echoing is the job of the output side.  So drivers
// implement a small interface: report whether input is pending, and
// block until a character arrives.
//
// Drivers register themselves by name, and the ConsoleIn wrapper adds
// the ability to stuff fake input ahead of whatever the driver returns.
package consolein

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownDriver is returned when a driver name is not registered.
var ErrUnknownDriver = errors.New("unknown console input driver")

// ConsoleInput is the interface that must be implemented by anything
// that wishes to be used as an input driver.
type ConsoleInput interface {

	// Setup performs any specific setup which is required.
	Setup() error

	// TearDown performs any specific cleanup which is required.
	TearDown() error

	// PendingInput returns true if there is pending input available
	// to be read.
	PendingInput() bool

	// BlockForCharacterNoEcho reads a single character from the
	// console, without echoing it.
	BlockForCharacterNoEcho() (byte, error)

	// GetName will return the name of the driver.
	GetName() string
}

// Constructor is the signature of a constructor-function which is used
// to instantiate an instance of a driver.
type Constructor func() ConsoleInput

// handlers is the map of known drivers.
var handlers = struct {
	mu sync.Mutex
	m  map[string]Constructor
}{m: make(map[string]Constructor)}

// Register makes a console driver available, by name.
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

// ConsoleIn holds our state, which is basically just a pointer to the
// object handling our input.
type ConsoleIn struct {
	// mu guards stuffed.
	mu sync.Mutex

	// driver is the thing that actually reads our input.
	driver ConsoleInput

	// stuffed holds fake input which is returned before anything the
	// driver offers.
	stuffed string
}

// New is our constructor, it creates an input device which uses the
// specified driver.
func New(name string) (*ConsoleIn, error) {
	ctor, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return &ConsoleIn{driver: ctor()}, nil
}

// GetDriver allows getting our driver at runtime.
func (ci *ConsoleIn) GetDriver() ConsoleInput {
	return ci.driver
}

// ChangeDriver allows changing our driver at runtime.  The old driver is
// torn down and the new one set up.
func (ci *ConsoleIn) ChangeDriver(name string) error {
	ctor, err := lookup(name)
	if err != nil {
		return err
	}

	if err = ci.driver.TearDown(); err != nil {
		return err
	}
	ci.driver = ctor()
	return ci.driver.Setup()
}

// GetName returns the name of our selected driver.
func (ci *ConsoleIn) GetName() string {
	return ci.driver.GetName()
}

// GetDrivers returns all available driver-names, sorted.
//
// We hide the internal "error" driver.
func (ci *ConsoleIn) GetDrivers() []string {
	handlers.mu.Lock()
	defer handlers.mu.Unlock()

	valid := []string{}
	for x := range handlers.m {
		if x != ErrorInputName {
			valid = append(valid, x)
		}
	}
	sort.Strings(valid)
	return valid
}

// Setup proxies into our registered console-input driver.
func (ci *ConsoleIn) Setup() error {
	return ci.driver.Setup()
}

// TearDown proxies into our registered console-input driver.
func (ci *ConsoleIn) TearDown() error {
	return ci.driver.TearDown()
}

// StuffInput inserts fake values into our input-buffer, they are
// returned before anything the driver reads.
func (ci *ConsoleIn) StuffInput(input string) {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	ci.stuffed += input
}

// PendingInput returns true if there is pending input.
func (ci *ConsoleIn) PendingInput() bool {
	ci.mu.Lock()
	stuffed := len(ci.stuffed) > 0
	ci.mu.Unlock()

	if stuffed {
		return true
	}
	return ci.driver.PendingInput()
}

// BlockForCharacterNoEcho returns the next character from the console,
// blocking until one is available.
func (ci *ConsoleIn) BlockForCharacterNoEcho() (byte, error) {
	ci.mu.Lock()
	if len(ci.stuffed) > 0 {
		c := ci.stuffed[0]
		ci.stuffed = ci.stuffed[1:]
		ci.mu.Unlock()
		return c, nil
	}
	ci.mu.Unlock()

	return ci.driver.BlockForCharacterNoEcho()
}
