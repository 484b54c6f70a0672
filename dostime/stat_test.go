package dostime

import (
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

// TestFromTimespec converts a stat timestamp into a chosen zone.
func TestFromTimespec(t *testing.T) {
	when := time.Date(2020, time.June, 1, 12, 0, 0, 0, time.UTC)
	ts := unix.NsecToTimespec(when.UnixNano())

	plus5 := time.FixedZone("PLUS5", 5*3600)
	got := FromTimespec(ts, plus5)
	if !got.Equal(when) || got.Hour() != 17 || got.Location() != plus5 {
		t.Fatalf("wrong time %s", got)
	}

	if got = FromTimespec(ts, nil); got.Location() != time.Local {
		t.Fatalf("nil location gave %s", got.Location())
	}
}
