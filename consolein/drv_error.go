// drv_error.go fails every read, so the kernel's console-read failure
// path can be exercised.  Combined with stuffed input it lets tests feed a
// fixed number of keystrokes and then see 01h/08h fail.

package consolein

import "errors"

var (
	// ErrorInputName is the name the driver registers under.
	ErrorInputName = "error"

	// ErrDriverError is returned by every read.
	ErrDriverError = errors.New("DRV_ERROR")
)

// ErrorInput fails every read.
type ErrorInput struct{}

// Setup has nothing to prepare.
func (ei *ErrorInput) Setup() error { return nil }

// TearDown has nothing to restore.
func (ei *ErrorInput) TearDown() error { return nil }

// PendingInput claims a key is waiting, so callers go on to read and fail.
func (ei *ErrorInput) PendingInput() bool { return true }

// GetName returns ErrorInputName.
func (ei *ErrorInput) GetName() string { return ErrorInputName }

// BlockForCharacterNoEcho returns ErrDriverError.
func (ei *ErrorInput) BlockForCharacterNoEcho() (byte, error) {
	return 0x00, ErrDriverError
}

func init() {
	Register(ErrorInputName, func() ConsoleInput {
		return new(ErrorInput)
	})
}
