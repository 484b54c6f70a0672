package dta

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/lunixbochs/struc"
	"github.com/skx/dosk/dostime"
)

// RecordSize is the size of a disk transfer area laid out in memory.
const RecordSize = 21 + 1 + 2 + 2 + 4 + NameMax

// record is the layout of a disk transfer area in caller memory.  The
// reserved bytes belong to the kernel, we keep the search state on the
// host side and leave them zeroed.
type record struct {
	Reserved []byte `struc:"[21]byte"`
	Attrib   uint8
	WrTime   uint16
	WrDate   uint16
	Size     uint32
	Name     []byte `struc:"[255]byte"`
}

// Encode lays out the public part of the cursor for caller memory.  Sizes
// which do not fit are clamped.
func (f *FindData) Encode() ([]byte, error) {
	size := uint32(math.MaxUint32)
	if f.Size >= 0 && f.Size < math.MaxUint32 {
		size = uint32(f.Size)
	}

	r := record{
		Reserved: make([]byte, 21),
		Attrib:   uint8(f.Attrib),
		WrTime:   uint16(f.WrTime),
		WrDate:   uint16(f.WrDate),
		Size:     size,
		Name:     f.Name[:],
	}

	var buf bytes.Buffer
	if err := struc.PackWithOrder(&buf, &r, binary.LittleEndian); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a record laid out by Encode.
func Decode(data []byte) (FindData, error) {
	var r record
	if err := struc.UnpackWithOrder(bytes.NewReader(data), &r, binary.LittleEndian); err != nil {
		return FindData{}, err
	}

	f := FindData{
		Attrib: Attr(r.Attrib),
		WrTime: dostime.Time(r.WrTime),
		WrDate: dostime.Date(r.WrDate),
		Size:   int64(r.Size),
	}
	copy(f.Name[:NameMax-1], r.Name)
	return f, nil
}
