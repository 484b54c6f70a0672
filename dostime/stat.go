package dostime

import (
	"time"

	"golang.org/x/sys/unix"
)

// FromTimespec converts a stat timestamp to a host time in loc.  A nil
// location means local time.
func FromTimespec(ts unix.Timespec, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(ts.Unix()).In(loc)
}
