// This file implements the date and time functions.

package dos

import (
	"github.com/skx/dosk/dostime"
	"github.com/skx/dosk/exterr"
	"github.com/skx/dosk/registers"
)

// GetDate returns the date, CX is the year, DH the month, DL the day and
// AL the day of the week (0 is Sunday).
func GetDate(k *Kernel, b *registers.Bank) error {
	d := k.DosGetDate()

	b.CX.SetU16(d.Year)
	b.SetDH(d.Month)
	b.SetDL(d.Day)
	b.SetAL(d.DayOfWeek)
	return nil
}

// SetDate sets the date from CX, DH and DL.  AL is 00h on success, or FFh
// when the date is invalid or cannot be set.
func SetDate(k *Kernel, b *registers.Bank) error {
	d := dostime.DosDate{
		Year:  b.CX.U16(),
		Month: b.DH(),
		Day:   b.DL(),
	}
	setResult(b, k.DosSetDate(d))
	return nil
}

// GetTime returns the time, CH is the hour, CL the minute, DH the second
// and DL the hundredths.
func GetTime(k *Kernel, b *registers.Bank) error {
	t := k.DosGetTime()

	b.SetCH(t.Hour)
	b.SetCL(t.Minute)
	b.SetDH(t.Second)
	b.SetDL(t.Hsecond)
	return nil
}

// SetTime sets the time from CH, CL, DH and DL.  AL is 00h on success, or
// FFh when the time is invalid or cannot be set.
func SetTime(k *Kernel, b *registers.Bank) error {
	t := dostime.DosTime{
		Hour:    b.CH(),
		Minute:  b.CL(),
		Second:  b.DH(),
		Hsecond: b.DL(),
	}
	setResult(b, k.DosSetTime(t))
	return nil
}

// setResult stores the outcome of a set date or time call in AL.  The
// carry flag is not used.
func setResult(b *registers.Bank, code exterr.Code) {
	if code != exterr.CodeNone {
		b.SetAL(0xFF)
		return
	}
	b.SetAL(0x00)
}
