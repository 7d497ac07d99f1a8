package tifile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/utz82/tipack/pkg/calc"
)

// familyForSignature maps a file signature to the family that writes it.
// Shared signatures map to the older model.
var familyForSignature = map[string]calc.Family{
	"**TI73**": calc.TI73,
	"**TI82**": calc.TI82,
	"**TI83**": calc.TI83,
	"**TI83F*": calc.TI83P,
	"**TI85**": calc.TI85,
	"**TI86**": calc.TI86,
	"**TI89**": calc.TI89,
	"**TI92**": calc.TI92,
	"**TI92P*": calc.TI92P,
}

// ReadFile parses the single-variable file at path.
func ReadFile(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Read parses a single-variable file from r.
func Read(r io.Reader) (*Content, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode parses an encoded file and verifies its checksum. 68k group files
// holding more than one variable are rejected.
func Decode(data []byte) (*Content, error) {
	if len(data) < SignatureSize {
		return nil, ErrTruncated
	}
	sig := string(data[:SignatureSize])
	f, ok := familyForSignature[sig]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSignature, sig)
	}

	if f.IsTI9x() {
		return decode9x(f, data)
	}
	return decode8x(f, data)
}

// cursor reads little-endian fields and remembers the first overrun.
type cursor struct {
	data []byte
	pos  int
	err  error
}

func (c *cursor) bytes(n int) []byte {
	if c.err != nil {
		return nil
	}
	if n < 0 || c.pos+n > len(c.data) {
		c.err = ErrTruncated
		return nil
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b
}

func (c *cursor) u8() uint8 {
	if b := c.bytes(1); b != nil {
		return b[0]
	}
	return 0
}

func (c *cursor) u16() uint16 {
	if b := c.bytes(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (c *cursor) u32() uint32 {
	if b := c.bytes(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func decode8x(f calc.Family, data []byte) (*Content, error) {
	cur := &cursor{data: data, pos: SignatureSize}
	if !bytes.Equal(cur.bytes(len(preamble8xMagic)), preamble8xMagic) && cur.err == nil {
		return nil, fmt.Errorf("%w: bad preamble", ErrInvalidSignature)
	}
	comment := unpadded(cur.bytes(Comment8xSize), 0)
	sectionLen := int(cur.u16())
	section := cur.bytes(sectionLen)
	stored := cur.u16()
	if cur.err != nil {
		return nil, cur.err
	}
	if sum := Checksum(section); sum != stored {
		return nil, fmt.Errorf("%w: stored 0x%04x, computed 0x%04x", ErrChecksumMismatch, stored, sum)
	}

	entry := &VarEntry{}
	sec := &cursor{data: section}
	hdrLen := int(sec.u16())
	dataLen := int(sec.u16())
	entry.Type = calc.TypeID(sec.u8())

	if f.IsTI8586() {
		nameLen := int(sec.u8())
		nameField := nameLen
		if f == calc.TI86 {
			nameField = VarNameMax
		}
		raw := sec.bytes(nameField)
		if raw != nil && nameLen <= len(raw) {
			raw = raw[:nameLen]
		}
		entry.Name = string(raw)
	} else {
		entry.Name = unpaddedName(sec.bytes(VarNameMax))
		if hdrLen == entryHeaderLong {
			sec.u8() // version
			if sec.u8()&flag8xArchived != 0 {
				entry.Attr = AttrArchived
			}
		}
	}

	if n := int(sec.u16()); n != dataLen && sec.err == nil {
		return nil, fmt.Errorf("%w: data length %d != %d", ErrTruncated, n, dataLen)
	}
	entry.Data = sec.bytes(dataLen)
	if sec.err != nil {
		return nil, sec.err
	}
	entry.Size = len(entry.Data)

	return &Content{Family: f, Comment: comment, Entry: entry, Checksum: stored}, nil
}

func decode9x(f calc.Family, data []byte) (*Content, error) {
	cur := &cursor{data: data, pos: SignatureSize}
	if !bytes.Equal(cur.bytes(len(header9xMagic)), header9xMagic) && cur.err == nil {
		return nil, fmt.Errorf("%w: bad header", ErrInvalidSignature)
	}
	folder := unpadded(cur.bytes(FolderNameMax), 0)
	comment := unpadded(cur.bytes(Comment9xSize), 0)
	count := int(cur.u16())
	switch {
	case cur.err != nil:
		return nil, cur.err
	case count < 1:
		return nil, ErrNoEntry
	case count > 1:
		return nil, fmt.Errorf("%w: %d entries", ErrNotSingleVar, count)
	}

	offset := int(cur.u32())
	entry := &VarEntry{
		Folder: folder,
		Name:   unpadded(cur.bytes(VarNameMax), 0),
		Type:   calc.TypeID(cur.u8()),
	}
	if cur.u8() == attr9xArchived {
		entry.Attr = AttrArchived
	}
	cur.bytes(2)
	fileSize := int(cur.u32())
	if !bytes.Equal(cur.bytes(len(dataMarker9x)), dataMarker9x) && cur.err == nil {
		return nil, fmt.Errorf("%w: missing data marker", ErrInvalidSignature)
	}
	if cur.err != nil {
		return nil, cur.err
	}

	// The variable runs from just after its 4 zero bytes to the trailing
	// checksum.
	if fileSize > len(data) || offset+4 > fileSize-2 {
		return nil, fmt.Errorf("%w: offset %d, file size %d", ErrTruncated, offset, fileSize)
	}
	entry.Data = data[offset+4 : fileSize-2]
	entry.Size = len(entry.Data)
	stored := binary.LittleEndian.Uint16(data[fileSize-2 : fileSize])
	if sum := Checksum(entry.Data); sum != stored {
		return nil, fmt.Errorf("%w: stored 0x%04x, computed 0x%04x", ErrChecksumMismatch, stored, sum)
	}

	return &Content{Family: f, Comment: comment, Entry: entry, Checksum: stored}, nil
}
