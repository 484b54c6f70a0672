// Integration tests :)

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// quiet are the flags which keep the console out of the way.
var quiet = []string{"-input", "error", "-output", "null"}

// invoke runs a sub-command, returning its exit status and output.
func invoke(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	// Ignore any configuration or environment of the user.
	t.Setenv("DEBUG", "")
	t.Setenv("DOSK_INPUT", "")
	t.Setenv("DOSK_OUTPUT", "")
	t.Setenv("DOSK_TRACE", "")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	status := run(args, stdout, stderr)
	return status, stdout.String(), stderr.String()
}

func TestUsage(t *testing.T) {
	tests := [][]string{
		{},
		{"bogus"},
		{"int"},
		{"int", "zz"},
		{"int", "-input", "error", "-output", "null", "21", "ax"},
		{"run"},
		{"trace"},
		{"trace", "load"},
	}
	for _, args := range tests {
		status, _, stderr := invoke(t, args...)
		if status != exitUsage {
			t.Fatalf("%v: got status %d, expected %d", args, status, exitUsage)
		}
		if !strings.Contains(stderr, "Usage:") {
			t.Fatalf("%v: no usage shown: %q", args, stderr)
		}
	}
}

func TestVersion(t *testing.T) {
	status, stdout, _ := invoke(t, "version")
	if status != exitOK {
		t.Fatalf("wrong status %d", status)
	}
	if !strings.HasPrefix(stdout, "dosk ") {
		t.Fatalf("wrong banner %q", stdout)
	}
}

func TestInt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "new.txt")

	args := append([]string{"int"}, quiet...)
	args = append(args, "21", "ah=3c", "cx=0", `dx="`+path+`"`)

	status, stdout, stderr := invoke(t, args...)
	if status != exitOK {
		t.Fatalf("wrong status %d: %s", status, stderr)
	}
	if !strings.HasSuffix(stdout, "CF=0\n") {
		t.Fatalf("wrong output %q", stdout)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file was not created: %s", err)
	}

	// Searching for something missing fails with file not found.
	args = append([]string{"int"}, quiet...)
	args = append(args, "21", "ax=4e00", "cx=0", `dx="`+filepath.Join(dir, "*.none")+`"`)

	status, stdout, _ = invoke(t, args...)
	if status != exitOK {
		t.Fatalf("wrong status %d", status)
	}
	if !strings.HasPrefix(stdout, "AX=0002 ") || !strings.HasSuffix(stdout, "CF=1\n") {
		t.Fatalf("wrong output %q", stdout)
	}
}

func TestUnsupported(t *testing.T) {
	args := append([]string{"int"}, quiet...)
	args = append(args, "21", "ax=ff00")

	status, _, stderr := invoke(t, args...)
	if status != exitUnsupported {
		t.Fatalf("wrong status %d", status)
	}
	if !strings.Contains(stderr, "AX=FF00h") {
		t.Fatalf("error does not name the call: %q", stderr)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "date.lua")
	err := os.WriteFile(path, []byte(`
local r = int86(0x21, {ax = 0x2a00})
if r.cx >= 1980 then print("ok") end
`), 0644)
	if err != nil {
		t.Fatalf("failed to write: %s", err)
	}

	args := append([]string{"run"}, quiet...)
	status, stdout, stderr := invoke(t, append(args, path)...)
	if status != exitOK {
		t.Fatalf("wrong status %d: %s", status, stderr)
	}
	if stdout != "ok\n" {
		t.Fatalf("wrong output %q", stdout)
	}

	bad := filepath.Join(dir, "bad.lua")
	if err = os.WriteFile(bad, []byte(`int86(0x21, {ax = 0xff00})`), 0644); err != nil {
		t.Fatalf("failed to write: %s", err)
	}
	status, _, _ = invoke(t, append(args, bad)...)
	if status != exitUnsupported {
		t.Fatalf("wrong status %d", status)
	}
}

func TestTrace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calls.trace")

	args := append([]string{"int", "-trace", path}, quiet...)
	args = append(args, "21", "ax=2c00")
	if status, _, stderr := invoke(t, args...); status != exitOK {
		t.Fatalf("wrong status %d: %s", status, stderr)
	}

	status, stdout, stderr := invoke(t, "trace", "dump", "-color=false", path)
	if status != exitOK {
		t.Fatalf("wrong status %d: %s", status, stderr)
	}
	if !strings.Contains(stdout, "INT 21h AX=2C00h") {
		t.Fatalf("wrong dump %q", stdout)
	}

	status, _, _ = invoke(t, "trace", "dump", filepath.Join(dir, "missing"))
	if status != exitFailure {
		t.Fatalf("wrong status %d", status)
	}
}

func TestBuiltin(t *testing.T) {
	status, stdout, _ := invoke(t, "run", "-list")
	if status != exitOK {
		t.Fatalf("wrong status %d", status)
	}
	if !strings.Contains(stdout, "date\n") {
		t.Fatalf("date script not listed: %q", stdout)
	}

	args := append([]string{"run", "-builtin"}, quiet...)
	status, stdout, stderr := invoke(t, append(args, "date")...)
	if status != exitOK {
		t.Fatalf("wrong status %d: %s", status, stderr)
	}
	if len(stdout) < len("Mon 2024-01-01 00:00:00.00") {
		t.Fatalf("wrong output %q", stdout)
	}

	status, _, _ = invoke(t, append(args, "missing")...)
	if status != exitUsage {
		t.Fatalf("wrong status %d", status)
	}
}
