// Package tifile reads and writes single-variable TI calculator files
// (.8xp, .86s, .89t and friends).
package tifile

import (
	"github.com/utz82/tipack/pkg/calc"
)

// VarEntry is one calculator variable. Size always equals len(Data),
// including any length prefix stored in Data.
type VarEntry struct {
	Folder string
	Name   string
	Type   calc.TypeID
	Attr   uint8
	Size   int
	Data   []byte
}

// Content is the in-memory form of a single-variable file.
type Content struct {
	Family   calc.Family
	Comment  string
	Entry    *VarEntry
	Checksum uint16 // filled in by Write and Read
}

// NewVarEntry builds a variable record. Names longer than VarNameMax are
// truncated; data is taken over, not copied.
func NewVarEntry(name string, id calc.TypeID, attr uint8, data []byte) *VarEntry {
	return &VarEntry{
		Name: truncate(name, VarNameMax),
		Type: id,
		Attr: attr,
		Size: len(data),
		Data: data,
	}
}

// NewContent wraps one entry in a file container. The comment is truncated
// to CommentMax bytes.
func NewContent(f calc.Family, comment string, entry *VarEntry) *Content {
	return &Content{
		Family:  f,
		Comment: truncate(comment, CommentMax),
		Entry:   entry,
	}
}

// Archived reports whether the entry is flagged for archive memory.
func (e *VarEntry) Archived() bool {
	return e.Attr == AttrArchived
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// padded returns s as exactly n bytes, cut or filled with pad.
func padded(s string, n int, pad byte) []byte {
	b := make([]byte, n)
	copy(b, s)
	for i := len(s); i < n; i++ {
		b[i] = pad
	}
	return b
}

// unpadded strips trailing NUL bytes and the given pad byte.
func unpadded(b []byte, pad byte) string {
	end := len(b)
	for end > 0 && (b[end-1] == 0 || b[end-1] == pad) {
		end--
	}
	return string(b[:end])
}

// unpaddedName strips the NUL padding of a Z80 name field without eating
// the index byte of a tokenized name like L1 (5D 00).
func unpaddedName(b []byte) string {
	name := unpadded(b, 0)
	if len(name) == 1 && len(b) >= 2 && calc.IsTokenPrefix(name[0]) {
		return string(b[:2])
	}
	return name
}
