//go:build unix

package consolein

import (
	"os"

	"golang.org/x/sys/unix"
)

// pollTimeout bounds how long a pending-input check waits.
const pollTimeout = 200 * 1000 // nanoseconds

// canSelect reports whether a read of stdin would not block.
func canSelect() bool {
	fd := int(os.Stdin.Fd())

	var fds unix.FdSet
	fds.Set(fd)

	tv := unix.NsecToTimeval(pollTimeout)
	n, err := unix.Select(fd+1, &fds, nil, nil, &tv)
	return err == nil && n > 0
}
