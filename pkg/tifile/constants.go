package tifile

import "github.com/utz82/tipack/pkg/calc"

// Field widths fixed by the file formats
const (
	SignatureSize  = 8
	VarNameMax     = calc.VarNameMax
	FolderNameMax  = 8
	CommentMax     = 40 // longest comment accepted from the user
	Comment8xSize  = 42 // comment field of the Z80 formats
	Comment9xSize  = 40 // comment field of the 68k formats
	preamble8xSize = SignatureSize + 3 + Comment8xSize + 2
	header9xSize   = SignatureSize + 2 + FolderNameMax + Comment9xSize + 2
	entry9xSize    = 16
)

// Entry header lengths of the Z80 formats
const (
	entryHeaderShort = 0x0B // TI-82, TI-83
	entryHeaderLong  = 0x0D // TI-73 and Plus models: version and flag bytes
	entryHeader86    = 0x0C
)

// Attributes
const (
	AttrNone     uint8 = 0
	AttrArchived uint8 = 3
)

// On-disk attribute encodings
const (
	flag8xArchived = 0x80
	attr9xArchived = 0x03
)

// DefaultFolder is the folder 68k variables land in when none is given.
const DefaultFolder = "main"

var (
	// preamble8xMagic follows the signature in every Z80 file.
	preamble8xMagic = []byte{0x1A, 0x0A, 0x00}
	// header9xMagic follows the signature in every 68k file.
	header9xMagic = []byte{0x01, 0x00}
	// dataMarker9x separates the 68k entry table from variable data.
	dataMarker9x = []byte{0xA5, 0x5A}
)

var signatures = map[calc.Family]string{
	calc.TI73:  "**TI73**",
	calc.TI82:  "**TI82**",
	calc.TI83:  "**TI83**",
	calc.TI83P: "**TI83F*",
	calc.TI84P: "**TI83F*",
	calc.TI85:  "**TI85**",
	calc.TI86:  "**TI86**",
	calc.TI89:  "**TI89**",
	calc.TI92:  "**TI92**",
	calc.TI92P: "**TI92P*",
	calc.V200:  "**TI92P*",
}

// Signature returns the 8-byte file signature of a family.
func Signature(f calc.Family) string {
	return signatures[f]
}
