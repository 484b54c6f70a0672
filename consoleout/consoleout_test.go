package consoleout

import (
	"bytes"
	"errors"
	"testing"
)

// TestName ensures we can lookup a driver by name
func TestName(t *testing.T) {

	valid := []string{"ansi", "cp437", "null", "logger"}

	for _, nm := range valid {

		d, e := New(nm)
		if e != nil {
			t.Fatalf("failed to lookup driver by name %s:%s", nm, e)
		}
		if d.GetName() != nm {
			t.Fatalf("%s != %s", d.GetName(), nm)
		}
		if d.GetDriver().GetName() != nm {
			t.Fatalf("%s != %s", d.GetDriver().GetName(), nm)
		}
	}

	// Lookup a driver that wont exist
	_, err := New("foo.bar.ba")
	if !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("we got a driver that shouldn't exist")
	}
}

// TestChangeDriver ensures we can change a driver
func TestChangeDriver(t *testing.T) {

	// Start with a known-good driver
	ansi, err := New("ansi")
	if err != nil {
		t.Fatalf("failed to load starting driver %s", err)
	}

	// Change to another known-good driver
	err = ansi.ChangeDriver("CP437")
	if err != nil {
		t.Fatalf("failed to change to new driver %s", err)
	}
	if ansi.GetName() != "cp437" {
		t.Fatalf("driver change didnt work?")
	}

	// Change to a bogus driver
	err = ansi.ChangeDriver("fofdsf-fsdfsd-fsdfdsf-")
	if err == nil {
		t.Fatalf("expected failure to change to new driver, didn't happen")
	}
	if ansi.GetName() != "cp437" {
		t.Fatalf("driver changed unexpectedly")
	}
}

// TestOutput ensures that our two "real" drivers output, as expected
func TestOutput(t *testing.T) {

	// Drivers that should produce output
	valid := []string{"ansi", "cp437"}

	for _, nm := range valid {

		d, e := New(nm)
		if e != nil {
			t.Fatalf("failed to lookup driver by name %s:%s", nm, e)
		}

		// ensure we redirect the output
		tmp := new(bytes.Buffer)
		d.SetWriter(tmp)

		d.PutString("Steve Kemp\x1b[1;31mred")

		// Test we got the output we expected
		if tmp.String() != "Steve Kemp\x1b[1;31mred" {
			t.Fatalf("output driver %s produced '%s'", d.GetName(), tmp.String())
		}
	}
}

// TestCP437 ensures the high half of the character set is translated.
func TestCP437(t *testing.T) {

	type testCase struct {
		input  []byte
		output string
	}

	tests := []testCase{
		{[]byte{0xC9, 0xCD, 0xBB}, "╔═╗"},
		{[]byte{0x82, 't', 0x82}, "été"},
		{[]byte{0xE1}, "ß"},

		// Inside an escape sequence nothing is translated.
		{[]byte{0x1B, '[', 0x82, 'm', 0x82}, "\x1b[\x82mé"},
	}

	for _, tst := range tests {
		d := CP437OutputDriver{}
		tmp := new(bytes.Buffer)
		d.SetWriter(tmp)

		for _, c := range tst.input {
			d.PutCharacter(c)
		}
		if tmp.String() != tst.output {
			t.Fatalf("%v: got %q, expected %q", tst.input, tmp.String(), tst.output)
		}
	}
}

// TestNull ensures nothing is written by the null output driver
func TestNull(t *testing.T) {

	null, err := New("null")
	if err != nil {
		t.Fatalf("failed to load starting driver %s", err)
	}

	// ensure we redirect the output
	tmp := new(bytes.Buffer)
	null.SetWriter(tmp)

	null.PutCharacter('s')

	if tmp.String() != "" {
		t.Fatalf("got output, expected none: '%s'", tmp.String())
	}
}

// TestLogger ensures nothing is written by the logging output driver
func TestLogger(t *testing.T) {

	drv, err := New("logger")
	if err != nil {
		t.Fatalf("failed to load starting driver %s", err)
	}

	// ensure we redirect the output
	tmp := new(bytes.Buffer)
	drv.SetWriter(tmp)

	drv.PutString("steve")

	if tmp.String() != "" {
		t.Fatalf("got output, expected none: '%s'", tmp.String())
	}

	// Cast the driver to get the history
	o, ok := drv.GetDriver().(ConsoleRecorder)
	if !ok {
		t.Fatalf("failed to cast driver")
	}

	// ensure we have the history we expect.
	if o.GetOutput() != "steve" {
		t.Fatalf("wrong history")
	}

	// And that this keeps updating.
	drv.PutCharacter(' ')
	if o.GetOutput() != "steve " {
		t.Fatalf("wrong history")
	}

	// reset the history, and confirm it worked.
	o.Reset()
	if o.GetOutput() != "" {
		t.Fatalf("reseting the history didn't succeed")
	}
}

// TestList ensures that we have the right drivers, in order
func TestList(t *testing.T) {
	x, err := New("ansi")
	if err != nil {
		t.Fatalf("failed to load driver %s", err)
	}

	valid := x.GetDrivers()
	if len(valid) != 2 || valid[0] != "ansi" || valid[1] != "cp437" {
		t.Fatalf("unexpected console drivers %v", valid)
	}
}
