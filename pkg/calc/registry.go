package calc

import (
	"fmt"
	"strings"
)

// TypeID is a variable type code. It is only meaningful together with the
// Family it was resolved for.
type TypeID uint8

// Type ids of the tokenized Z80 models. TI-73, TI-82, TI-83 and the Plus
// models share the low numbering.
const (
	TI83Real        TypeID = 0x00
	TI83List        TypeID = 0x01
	TI83Matrix      TypeID = 0x02
	TI83Equ         TypeID = 0x03 // YVAR on the TI-82/83
	TI83String      TypeID = 0x04
	TI83Program     TypeID = 0x05
	TI83ProtProgram TypeID = 0x06 // ASM on the TI-73 and Plus models
	TI83Picture     TypeID = 0x07
	TI83GDB         TypeID = 0x08
	TI83Complex     TypeID = 0x0C // also the real-to-complex offset
	TI83CList       TypeID = 0x0D
	TI83PAppVar     TypeID = 0x15
	TI83PGroup      TypeID = 0x17
	TI73AppVar      TypeID = 0x1A
)

// Type ids of the TI-85 and TI-86.
const (
	TI85Real    TypeID = 0x00
	TI85Cplx    TypeID = 0x01
	TI85Vector  TypeID = 0x02
	TI85CVector TypeID = 0x03
	TI85List    TypeID = 0x04
	TI85CList   TypeID = 0x05
	TI85Matrix  TypeID = 0x06
	TI85CMatrix TypeID = 0x07
	TI85Const   TypeID = 0x08
	TI85CConst  TypeID = 0x09
	TI85Equ     TypeID = 0x0A
	TI85String  TypeID = 0x0C
	TI85GDB     TypeID = 0x0D
	TI85Picture TypeID = 0x11
	TI85Program TypeID = 0x12
	TI85Backup  TypeID = 0x1D
)

// Type ids of the 68k models.
const (
	TI89Expr     TypeID = 0x00
	TI89List     TypeID = 0x04
	TI89Matrix   TypeID = 0x06
	TI89Data     TypeID = 0x0A
	TI89Text     TypeID = 0x0B
	TI89String   TypeID = 0x0C
	TI89GDB      TypeID = 0x0D
	TI89Figure   TypeID = 0x0E
	TI89Picture  TypeID = 0x10
	TI89Program  TypeID = 0x12
	TI89Function TypeID = 0x13
	TI89Macro    TypeID = 0x14
	TI89Other    TypeID = 0x1C
	TI89Asm      TypeID = 0x21
)

// typeEntry is one registered variable type. suffix is the last character
// of the file extension; the first two come from the family prefix.
type typeEntry struct {
	id     TypeID
	name   string
	suffix string
}

var ti73Types = []typeEntry{
	{TI83Real, "REAL", "n"},
	{TI83List, "LIST", "l"},
	{TI83Matrix, "MATRX", "m"},
	{TI83Equ, "EQU", "y"},
	{TI83String, "STRNG", "s"},
	{TI83Program, "PRGM", "p"},
	{TI83ProtProgram, "ASM", "p"},
	{TI83Picture, "PIC", "i"},
	{TI83GDB, "GDB", "g"},
	{TI83Complex, "CPLX", "c"},
	{TI83CList, "CLIST", "l"},
	{0x0F, "WDW", "w"},
	{0x10, "ZSTO", "z"},
	{0x11, "TAB", "t"},
	{0x13, "BKUP", "b"},
	{TI73AppVar, "APPVAR", "v"},
}

var ti82Types = []typeEntry{
	{TI83Real, "REAL", "n"},
	{TI83List, "LIST", "l"},
	{TI83Matrix, "MATRX", "m"},
	{TI83Equ, "YVAR", "y"},
	{TI83Program, "PRGM", "p"},
	{TI83ProtProgram, "PPGM", "p"},
	{TI83Picture, "PIC", "i"},
	{TI83GDB, "GDB", "d"},
	{0x0B, "WDW", "w"},
	{0x0C, "ZSTO", "z"},
	{0x0D, "TAB", "t"},
	{0x0F, "BKUP", "b"},
}

var ti83Types = []typeEntry{
	{TI83Real, "REAL", "n"},
	{TI83List, "LIST", "l"},
	{TI83Matrix, "MATRX", "m"},
	{TI83Equ, "YVAR", "y"},
	{TI83String, "STRNG", "s"},
	{TI83Program, "PRGM", "p"},
	{TI83ProtProgram, "PPGM", "p"},
	{TI83Picture, "PIC", "i"},
	{TI83GDB, "GDB", "d"},
	{TI83Complex, "CPLX", "c"},
	{TI83CList, "CLIST", "l"},
	{0x0F, "WDW", "w"},
	{0x10, "ZSTO", "z"},
	{0x11, "TAB", "t"},
	{0x13, "BKUP", "b"},
}

var ti83pTypes = []typeEntry{
	{TI83Real, "REAL", "n"},
	{TI83List, "LIST", "l"},
	{TI83Matrix, "MATRX", "m"},
	{TI83Equ, "EQU", "y"},
	{TI83String, "STRNG", "s"},
	{TI83Program, "PRGM", "p"},
	{TI83ProtProgram, "ASM", "p"},
	{TI83Picture, "PIC", "i"},
	{TI83GDB, "GDB", "d"},
	{TI83Complex, "CPLX", "c"},
	{TI83CList, "CLIST", "l"},
	{0x0F, "WDW", "w"},
	{0x10, "ZSTO", "z"},
	{0x11, "TAB", "t"},
	{0x13, "BKUP", "b"},
	{TI83PAppVar, "APPVAR", "v"},
	{TI83PGroup, "GROUP", "g"},
}

var ti85Types = []typeEntry{
	{TI85Real, "REAL", "n"},
	{TI85Cplx, "CPLX", "c"},
	{TI85Vector, "VECTR", "v"},
	{TI85CVector, "CVECT", "v"},
	{TI85List, "LIST", "l"},
	{TI85CList, "CLIST", "l"},
	{TI85Matrix, "MATRX", "m"},
	{TI85CMatrix, "CMATR", "m"},
	{TI85Const, "CONS", "k"},
	{TI85CConst, "CCONS", "k"},
	{TI85Equ, "EQU", "y"},
	{TI85String, "STRNG", "s"},
	{TI85GDB, "GDB", "d"},
	{TI85Picture, "PICT", "i"},
	{TI85Program, "PRGM", "p"},
	{TI85Backup, "BKUP", "b"},
}

var ti89Types = []typeEntry{
	{TI89Expr, "EXPR", "e"},
	{TI89List, "LIST", "l"},
	{TI89Matrix, "MAT", "m"},
	{TI89Data, "DATA", "c"},
	{TI89Text, "TEXT", "t"},
	{TI89String, "STR", "s"},
	{TI89GDB, "GDB", "d"},
	{TI89Figure, "FIG", "a"},
	{TI89Picture, "PIC", "i"},
	{TI89Program, "PRGM", "p"},
	{TI89Function, "FUNC", "f"},
	{TI89Macro, "MAC", "x"},
	{TI89Other, "OTHER", "y"},
	{TI89Asm, "ASM", "z"},
}

func typeTable(f Family) []typeEntry {
	switch f {
	case TI73:
		return ti73Types
	case TI82:
		return ti82Types
	case TI83:
		return ti83Types
	case TI83P, TI84P:
		return ti83pTypes
	case TI85, TI86:
		return ti85Types
	case TI89, TI92, TI92P, V200:
		return ti89Types
	default:
		return nil
	}
}

func lookupType(f Family, id TypeID) (typeEntry, bool) {
	for _, e := range typeTable(f) {
		if e.id == id {
			return e, true
		}
	}
	return typeEntry{}, false
}

// Resolve maps an extension such as "8xp" or "89l" to the first family in
// ResolutionOrder that registers it, together with its canonical type id.
func Resolve(ext string) (Family, TypeID, error) {
	for _, f := range ResolutionOrder {
		if id, err := ResolveFor(f, ext); err == nil {
			return f, id, nil
		}
	}
	return FamilyUnknown, 0, fmt.Errorf("%w %s", ErrUnknownType, ext)
}

// ResolveFor looks ext up in the table of one family only. When two types
// share an extension the first registered one wins.
func ResolveFor(f Family, ext string) (TypeID, error) {
	key := strings.ToLower(strings.TrimPrefix(ext, "."))
	prefix := f.ExtPrefix()
	if prefix == "" || len(key) != len(prefix)+1 || !strings.HasPrefix(key, prefix) {
		return 0, fmt.Errorf("%w %s for %s", ErrUnknownType, ext, f)
	}

	suffix := key[len(prefix):]
	for _, e := range typeTable(f) {
		if e.suffix == suffix {
			return e.id, nil
		}
	}
	return 0, fmt.Errorf("%w %s for %s", ErrUnknownType, ext, f)
}

// ExtensionFor is the inverse of Resolve. It returns "" for ids the family
// does not register.
func ExtensionFor(f Family, id TypeID) string {
	e, ok := lookupType(f, id)
	if !ok {
		return ""
	}
	return f.ExtPrefix() + e.suffix
}

// TypeName returns the on-device name of a type, e.g. "PRGM", or a hex
// placeholder for ids the family does not register.
func TypeName(f Family, id TypeID) string {
	if e, ok := lookupType(f, id); ok {
		return e.name
	}
	return fmt.Sprintf("0x%02X", uint8(id))
}

// Types lists every registered type id of f in table order.
func Types(f Family) []TypeID {
	table := typeTable(f)
	ids := make([]TypeID, 0, len(table))
	for _, e := range table {
		ids = append(ids, e.id)
	}
	return ids
}
