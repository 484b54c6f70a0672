package dos

import (
	"time"

	"golang.org/x/sys/unix"
)

// Clock is the source of the date and time services.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Set changes the current time.
	Set(t time.Time) error
}

// SystemClock is the host clock.  Setting it needs privileges.
type SystemClock struct{}

// Now returns the host time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Set changes the host time.
func (SystemClock) Set(t time.Time) error {
	tv := unix.NsecToTimeval(t.UnixNano())
	return unix.Settimeofday(&tv)
}
