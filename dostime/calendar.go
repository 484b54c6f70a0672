package dostime

import (
	"fmt"
	"time"
)

// DosDate is the broken-down date used by the get/set date services.
type DosDate struct {
	Day       uint8
	Month     uint8
	Year      uint16
	DayOfWeek uint8
}

// DosTime is the broken-down time used by the get/set time services.
//
// Hsecond carries hundredths of a second, a finer resolution than the
// two-second units of a packed Time.
type DosTime struct {
	Hour    uint8
	Minute  uint8
	Second  uint8
	Hsecond uint8
}

// FromTime splits a host time into its date and time structures.
func FromTime(t time.Time) (DosDate, DosTime) {
	d := DosDate{
		Day:       uint8(t.Day()),
		Month:     uint8(t.Month()),
		Year:      uint16(t.Year()),
		DayOfWeek: uint8(t.Weekday()),
	}
	tm := DosTime{
		Hour:    uint8(t.Hour()),
		Minute:  uint8(t.Minute()),
		Second:  uint8(t.Second()),
		Hsecond: uint8(t.Nanosecond() / int(10*time.Millisecond)),
	}
	return d, tm
}

// ToTime joins date and time structures into a host time in the given
// location.  The day of the week is ignored.
func ToTime(d DosDate, t DosTime, loc *time.Location) (time.Time, error) {
	if !ValidDate(int(d.Year), time.Month(d.Month), int(d.Day)) {
		return time.Time{}, fmt.Errorf("%w: date %04d-%02d-%02d", ErrBadArguments, d.Year, d.Month, d.Day)
	}
	if !ValidTime(int(t.Hour), int(t.Minute), int(t.Second)) || t.Hsecond > 99 {
		return time.Time{}, fmt.Errorf("%w: time %02d:%02d:%02d.%02d", ErrBadArguments, t.Hour, t.Minute, t.Second, t.Hsecond)
	}
	return time.Date(int(d.Year), time.Month(d.Month), int(d.Day),
		int(t.Hour), int(t.Minute), int(t.Second),
		int(t.Hsecond)*int(10*time.Millisecond), loc), nil
}

// WithDate returns the host time with its date replaced, keeping the
// time of day.
func WithDate(now time.Time, d DosDate) (time.Time, error) {
	if !ValidDate(int(d.Year), time.Month(d.Month), int(d.Day)) {
		return time.Time{}, fmt.Errorf("%w: date %04d-%02d-%02d", ErrBadArguments, d.Year, d.Month, d.Day)
	}
	return time.Date(int(d.Year), time.Month(d.Month), int(d.Day),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location()), nil
}

// WithTime returns the host time with its time of day replaced, keeping
// the date.
func WithTime(now time.Time, t DosTime) (time.Time, error) {
	if !ValidTime(int(t.Hour), int(t.Minute), int(t.Second)) || t.Hsecond > 99 {
		return time.Time{}, fmt.Errorf("%w: time %02d:%02d:%02d.%02d", ErrBadArguments, t.Hour, t.Minute, t.Second, t.Hsecond)
	}
	return time.Date(now.Year(), now.Month(), now.Day(),
		int(t.Hour), int(t.Minute), int(t.Second),
		int(t.Hsecond)*int(10*time.Millisecond), now.Location()), nil
}
