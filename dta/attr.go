package dta

import (
	"strings"

	"golang.org/x/sys/unix"
)

// Attr holds file attribute bits.
type Attr uint8

// File attributes.
const (
	Normal   Attr = 0x00
	ReadOnly Attr = 0x01
	Hidden   Attr = 0x02
	System   Attr = 0x04
	VolumeID Attr = 0x08
	Subdir   Attr = 0x10
	Archive  Attr = 0x20
)

// String returns the attributes in the style of the ATTRIB command.
func (a Attr) String() string {
	var sb strings.Builder
	for _, f := range []struct {
		bit Attr
		c   byte
	}{
		{Archive, 'A'}, {Subdir, 'D'}, {VolumeID, 'V'},
		{System, 'S'}, {Hidden, 'H'}, {ReadOnly, 'R'},
	} {
		if a&f.bit != 0 {
			sb.WriteByte(f.c)
		} else {
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

// GetFileAttr returns the attributes of the named file.
//
// Directories have just the Subdir bit.  Anything else is a normal file
// with its archive bit set, and read-only if it cannot be written.
func GetFileAttr(path string) (Attr, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, err
	}

	if st.Mode&unix.S_IFMT == unix.S_IFDIR {
		return Subdir, nil
	}

	attr := Normal | Archive
	if err := unix.Access(path, unix.W_OK); err != nil {
		switch err {
		case unix.EROFS, unix.EACCES:
			attr |= ReadOnly
		default:
			return 0, err
		}
	}
	return attr, nil
}

// SetFileAttr updates the attributes of the named file.
//
// Only the read-only bit means anything to the host: when it is set all
// write permissions are removed, otherwise they are all granted.
func SetFileAttr(path string, attr Attr) error {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return err
	}

	mode := st.Mode &^ unix.S_IFMT
	if attr&ReadOnly != 0 {
		mode &^= unix.S_IWUSR | unix.S_IWGRP | unix.S_IWOTH
	} else {
		mode |= unix.S_IWUSR | unix.S_IWGRP | unix.S_IWOTH
	}
	return unix.Chmod(path, mode)
}
