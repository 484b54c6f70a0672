// Package dostime converts between the packed date and time words used
// by directory entries and file handles, and host time values.
//
// A packed date holds the year since 1980 in bits 9-15, the month in
// bits 5-8 and the day in bits 0-4.  A packed time holds the hour in bits
// 11-15, the minute in bits 5-10 and the seconds divided by two in bits
// 0-4.
//
// Invalid fields are rejected with ErrBadArguments, never normalized.
package dostime

import (
	"errors"
	"fmt"
	"time"
)

// ErrBadArguments is returned for calendar fields which do not describe
// a real date or time, or which cannot be packed.
var ErrBadArguments = errors.New("bad date/time arguments")

const (
	// Epoch is the first year which can be represented.
	Epoch = 1980

	// MaxYear is the last year which can be represented.
	MaxYear = Epoch + 0x7F
)

// Date is a packed date.
type Date uint16

// Time is a packed time.
type Time uint16

// Year returns the year of the date.
func (d Date) Year() int { return int(d>>9) + Epoch }

// Month returns the month of the date.
func (d Date) Month() time.Month { return time.Month((d >> 5) & 0x0F) }

// Day returns the day of the month.
func (d Date) Day() int { return int(d & 0x1F) }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year(), int(d.Month()), d.Day())
}

// Hour returns the hour of the time.
func (t Time) Hour() int { return int(t >> 11) }

// Minute returns the minute of the time.
func (t Time) Minute() int { return int((t >> 5) & 0x3F) }

// Second returns the seconds, which are always even.
func (t Time) Second() int { return int(t&0x1F) * 2 }

// String formats the time as HH:MM:SS.
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ValidDate reports whether the fields describe a representable date.
func ValidDate(year int, month time.Month, day int) bool {
	if year < Epoch || year > MaxYear {
		return false
	}
	if month < time.January || month > time.December {
		return false
	}
	return day >= 1 && day <= daysIn(year, month)
}

// ValidTime reports whether the fields describe a time of day.
func ValidTime(hour, minute, second int) bool {
	return hour >= 0 && hour <= 23 &&
		minute >= 0 && minute <= 59 &&
		second >= 0 && second <= 59
}

// PackDate packs the given fields.
func PackDate(year int, month time.Month, day int) (Date, error) {
	if !ValidDate(year, month, day) {
		return 0, fmt.Errorf("%w: date %04d-%02d-%02d", ErrBadArguments, year, int(month), day)
	}
	return Date((year-Epoch)<<9 | int(month)<<5 | day), nil
}

// PackTime packs the given fields, dropping the odd second.
func PackTime(hour, minute, second int) (Time, error) {
	if !ValidTime(hour, minute, second) {
		return 0, fmt.Errorf("%w: time %02d:%02d:%02d", ErrBadArguments, hour, minute, second)
	}
	return Time(hour<<11 | minute<<5 | second/2), nil
}

// Pack converts a host time into packed date and time words, using the
// location of the time value.
func Pack(t time.Time) (Date, Time, error) {
	d, err := PackDate(t.Year(), t.Month(), t.Day())
	if err != nil {
		return 0, 0, err
	}
	tm, err := PackTime(t.Hour(), t.Minute(), t.Second())
	if err != nil {
		return 0, 0, err
	}
	return d, tm, nil
}

// Unpack converts packed words into a host time in the given location.
//
// A day the month does not have, an hour past 23, a minute past 59 or a
// seconds field past 29 are all ErrBadArguments.
func Unpack(d Date, t Time, loc *time.Location) (time.Time, error) {
	if !ValidDate(d.Year(), d.Month(), d.Day()) {
		return time.Time{}, fmt.Errorf("%w: packed date %04X", ErrBadArguments, uint16(d))
	}
	if !ValidTime(t.Hour(), t.Minute(), t.Second()) {
		return time.Time{}, fmt.Errorf("%w: packed time %04X", ErrBadArguments, uint16(t))
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
}
