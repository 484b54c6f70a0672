// This file holds the split register forms of the interrupt call, which
// take the general and segment registers as separate structures.

package dos

import "github.com/skx/dosk/registers"

// Int86x dispatches intnum with the registers in in and seg, storing the
// results in out and seg.  The returned value is out.AX.
func (k *Kernel) Int86x(intnum uint8, in, out *registers.Regs, seg *registers.SRegs) (registers.Reg, error) {
	var b registers.Bank
	b.Load(in, seg)

	err := k.Dispatch(intnum, &b)

	b.Store(out, seg)
	return out.AX, err
}

// Int86 is Int86x without segment registers.
func (k *Kernel) Int86(intnum uint8, in, out *registers.Regs) (registers.Reg, error) {
	return k.Int86x(intnum, in, out, nil)
}

// IntDos calls the DOS function dispatcher.
func (k *Kernel) IntDos(in, out *registers.Regs) (registers.Reg, error) {
	return k.Int86x(IntDOS, in, out, nil)
}

// IntDosx calls the DOS function dispatcher with segment registers.
func (k *Kernel) IntDosx(in, out *registers.Regs, seg *registers.SRegs) (registers.Reg, error) {
	return k.Int86x(IntDOS, in, out, seg)
}
