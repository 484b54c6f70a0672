package dos

import "github.com/skx/dosk/registers"

// SetVector points interrupt vector AL at DS:DX.
func SetVector(k *Kernel, b *registers.Bank) error {
	k.SetVect(b.AL(), registers.FarPointer(b.DS, b.DX))
	return nil
}

// GetVector returns interrupt vector AL in ES:BX.
func GetVector(k *Kernel, b *registers.Bank) error {
	addr := k.GetVect(b.AL())
	b.ES = registers.Segment(addr)
	b.BX = registers.Offset(addr)
	return nil
}
