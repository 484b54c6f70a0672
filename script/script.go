// Package script drives the kernel from Lua.
//
// Scripts build register images as tables, and call the kernel with
// int86.  Strings are placed in kernel memory with place, and read back
// with peek, so search patterns and file names can be passed by address
// just as a real caller would.
//
//	local r = int86(0x21, {ax = 0x4e00, cx = 0, dx = place("*.go")})
//	while not r.carry do
//	  print(peek(dta + 30, 0))
//	  r = int86(0x21, {ax = 0x4f00})
//	end
package script

import (
	"errors"
	"fmt"
	"io"
	"strings"

	pkgerrors "github.com/pkg/errors"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/skx/dosk/dos"
	"github.com/skx/dosk/registers"
	"github.com/skx/dosk/version"
)

// Host is a Lua state bound to a kernel.
type Host struct {
	*lua.LState

	k *dos.Kernel
	w io.Writer

	// fault holds the error which stopped the script, when it came
	// from the kernel rather than from Lua.
	fault error

	// lines holds input of the REPL which does not parse yet.
	lines []string
}

// New returns a Lua state bound to k, printing to w.
func New(k *dos.Kernel, w io.Writer) *Host {
	h := &Host{LState: lua.NewState(), k: k, w: w}

	h.SetGlobal("int86", h.NewFunction(h.int86))
	h.SetGlobal("place", h.NewFunction(h.place))
	h.SetGlobal("peek", h.NewFunction(h.peek))
	h.SetGlobal("poke", h.NewFunction(h.poke))
	h.SetGlobal("print", h.NewFunction(h.print))
	h.SetGlobal("version", lua.LString(version.GetVersionString()))

	// The address of the current disk transfer area.
	var b registers.Bank
	b.SetAH(0x2F)
	if err := k.Dispatch(dos.IntDOS, &b); err == nil {
		h.SetGlobal("dta", lua.LNumber(registers.FarPointer(b.ES, b.BX)))
	}
	return h
}

// RunFile runs the named script.
func (h *Host) RunFile(path string) error {
	h.fault = nil
	if err := h.DoFile(path); err != nil {
		return h.failed(err, path)
	}
	return nil
}

// RunString runs a chunk of Lua.
func (h *Host) RunString(code string) error {
	h.fault = nil
	if err := h.DoString(code); err != nil {
		return h.failed(err, "chunk")
	}
	return nil
}

// failed returns the kernel error behind a Lua error, if there is one.
func (h *Host) failed(err error, name string) error {
	if h.fault != nil {
		return h.fault
	}
	return pkgerrors.Wrapf(err, "error running %s", name)
}

// int86 implements int86(intnum, registers), returning the registers
// after the call.  A call the kernel does not support stops the script.
func (h *Host) int86(L *lua.LState) int {
	intnum := L.CheckInt(1)
	in := L.OptTable(2, L.NewTable())

	if intnum < 0 || intnum > 0xFF {
		L.ArgError(1, "interrupt number out of range")
		return 0
	}

	var b registers.Bank
	if err := toBank(in, &b); err != nil {
		L.ArgError(2, err.Error())
		return 0
	}

	if err := h.k.Dispatch(uint8(intnum), &b); err != nil {
		h.fault = err
		L.RaiseError("%s", err.Error())
		return 0
	}

	L.Push(fromBank(L, &b))
	return 1
}

// place implements place(string), which copies a NUL-terminated string
// into kernel memory and returns its address.
func (h *Host) place(L *lua.LState) int {
	addr, err := h.k.Memory.PlaceString(L.CheckString(1))
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LNumber(addr))
	return 1
}

// peek implements peek(address, length).  A length of zero reads up to
// the next NUL.
func (h *Host) peek(L *lua.LState) int {
	addr := registers.Address(L.CheckInt64(1))
	size := L.OptInt(2, 0)

	var out string
	var err error
	if size <= 0 {
		out, err = h.k.Memory.ReadString(addr, 0x00)
	} else {
		var data []byte
		data, err = h.k.Memory.GetRange(addr, size)
		out = string(data)
	}
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LString(out))
	return 1
}

// poke implements poke(address, string).
func (h *Host) poke(L *lua.LState) int {
	addr := registers.Address(L.CheckInt64(1))
	data := L.CheckString(2)

	if err := h.k.Memory.SetRange(addr, []byte(data)...); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// print writes its arguments to our writer.
func (h *Host) print(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	fmt.Fprintln(h.w, strings.Join(parts, "\t"))
	return 0
}

// toBank loads the registers named in the table.  Keys are register
// names in either case, plus "carry".
func toBank(t *lua.LTable, b *registers.Bank) error {
	var err error
	t.ForEach(func(k, v lua.LValue) {
		if err != nil {
			return
		}
		name := strings.ToUpper(k.String())

		if name == "CARRY" {
			b.SetCarry(lua.LVAsBool(v))
			return
		}

		n, ok := v.(lua.LNumber)
		if !ok {
			err = fmt.Errorf("register %s: number expected, got %s", name, v.Type())
			return
		}

		if name == "FLAGS" {
			b.Flags = uint64(n)
			return
		}
		r := b.Lookup(name)
		if r == nil {
			err = fmt.Errorf("unknown register %s", name)
			return
		}
		*r = registers.Reg(uint64(n))
	})
	return err
}

// fromBank returns the registers as a table, with lower-case names.
func fromBank(L *lua.LState, b *registers.Bank) *lua.LTable {
	t := L.NewTable()
	for i, v := range b.Values() {
		t.RawSetString(strings.ToLower(registers.Names[i]), lua.LNumber(v))
	}
	t.RawSetString("ah", lua.LNumber(b.AH()))
	t.RawSetString("al", lua.LNumber(b.AL()))
	t.RawSetString("bh", lua.LNumber(b.BH()))
	t.RawSetString("bl", lua.LNumber(b.BL()))
	t.RawSetString("ch", lua.LNumber(b.CH()))
	t.RawSetString("cl", lua.LNumber(b.CL()))
	t.RawSetString("dh", lua.LNumber(b.DH()))
	t.RawSetString("dl", lua.LNumber(b.DL()))
	t.RawSetString("carry", lua.LBool(b.Carry()))
	return t
}

// loadstring compiles the pending lines, reporting whether more input
// is needed.  The input is first tried as an expression.
func (h *Host) loadstring(lines []string, recurse bool) (*lua.LFunction, bool, error) {
	code := strings.Join(lines, "\n")
	if recurse {
		code = "return " + code
	}

	fn, err := h.LoadString(code)
	if err == nil {
		return fn, false, nil
	}

	// check for incomplete parse
	var lerr *lua.ApiError
	if errors.As(err, &lerr) {
		if perr, ok := lerr.Cause.(*parse.Error); ok {
			if perr.Pos.Line == parse.EOF || perr.Token == "EOF" {
				return nil, true, err
			} else if recurse {
				// still a parse error: try without return
				return h.loadstring(lines, false)
			}
		}
	}
	return nil, false, err
}

// Feed adds a line of input, running it once it parses.  It returns true
// if more input is needed.  Errors are printed.
func (h *Host) Feed(line string) bool {
	h.lines = append(h.lines, line)

	fn, incomplete, err := h.loadstring(h.lines, true)
	if incomplete {
		return true
	}
	h.lines = nil
	if err != nil {
		fmt.Fprintln(h.w, err)
		return false
	}

	top := h.GetTop()
	h.Push(fn)
	if err = h.PCall(0, lua.MultRet, nil); err != nil {
		fmt.Fprintln(h.w, err)
		return false
	}

	count := h.GetTop() - top
	if count > 0 {
		parts := make([]string, count)
		for i := 0; i < count; i++ {
			parts[i] = pretty(h.Get(top + i + 1))
		}
		fmt.Fprintln(h.w, strings.Join(parts, " "))
	}
	h.SetTop(top)
	return false
}

// pretty formats a value for the REPL.
func pretty(v lua.LValue) string {
	switch s := v.(type) {
	case lua.LNumber:
		n := uint64(s)
		if float64(s) != float64(n) {
			return s.String()
		}
		if n < 10 {
			return fmt.Sprintf("%d", n)
		} else if n > 0x10000 {
			return fmt.Sprintf("%#x", n)
		}
		return fmt.Sprintf("%#x(%d)", n, n)
	case lua.LString:
		return fmt.Sprintf("%q", string(s))
	case *lua.LTable:
		var parts []string
		s.ForEach(func(k, v lua.LValue) {
			parts = append(parts, k.String()+"="+pretty(v))
		})
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return v.String()
}
