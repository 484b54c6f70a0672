package exterr

import (
	"bytes"
	"encoding/binary"

	"github.com/lunixbochs/struc"
)

// WireSize is the size of a record laid out in caller memory.
const WireSize = 8

// wireRecord is the layout of a record in caller memory, as read by the
// "set extended error" multiplex service.
type wireRecord struct {
	Code   int32
	Class  uint8
	Action uint8
	Locus  uint8
	Pad    uint8
}

// Encode lays the record out for caller memory.
func Encode(rec Record) ([]byte, error) {
	w := wireRecord{
		Code:   int32(rec.Code),
		Class:  uint8(rec.Class),
		Action: uint8(rec.Action),
		Locus:  uint8(rec.Locus),
	}

	var buf bytes.Buffer
	if err := struc.PackWithOrder(&buf, &w, binary.LittleEndian); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a record laid out by Encode, or by the caller.
func Decode(data []byte) (Record, error) {
	var w wireRecord
	if err := struc.UnpackWithOrder(bytes.NewReader(data), &w, binary.LittleEndian); err != nil {
		return Record{}, err
	}
	return Record{
		Code:   Code(w.Code),
		Class:  Class(w.Class),
		Action: Action(w.Action),
		Locus:  Locus(w.Locus),
	}, nil
}
