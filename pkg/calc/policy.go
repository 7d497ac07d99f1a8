package calc

// typeSet is a fixed set of type ids for one family.
type typeSet map[TypeID]struct{}

func setOf(ids ...TypeID) typeSet {
	s := make(typeSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s typeSet) has(id TypeID) bool {
	_, ok := s[id]
	return ok
}

var (
	plainNamesTI73 = setOf(TI83Program, TI83ProtProgram, TI73AppVar)
	plainNamesTI83 = setOf(TI83Program, TI83ProtProgram, TI83PAppVar)

	lengthPrefixTI8586 = setOf(TI85Equ, TI85String, TI85Picture, TI85Program)
	lengthPrefixTI8283 = setOf(TI83Equ, TI83String, TI83Program, TI83ProtProgram, TI83Picture)
	lengthPrefixTI73   = setOf(TI83Equ, TI83String, TI83Program, TI83ProtProgram, TI83Picture, TI73AppVar)
	lengthPrefixTI83P  = setOf(TI83Equ, TI83String, TI83Program, TI83ProtProgram, TI83Picture, TI83PAppVar)

	complexTI9x   = setOf(TI89List, TI89Matrix)
	complexTI8586 = setOf(TI85Real, TI85Vector, TI85List, TI85Matrix, TI85Const)
	complexTI83   = setOf(TI83Real, TI83List)
)

// IsTokenizedName reports whether names of this type are stored as BASIC
// tokens rather than plain uppercase text.
func IsTokenizedName(f Family, id TypeID) bool {
	switch f {
	case TI89, TI92, TI92P, V200:
		return false
	case TI85, TI86:
		return false
	case TI73:
		return !plainNamesTI73.has(id)
	case TI82, TI83, TI83P, TI84P:
		return !plainNamesTI83.has(id)
	default:
		return false
	}
}

// HasLengthPrefix reports whether the on-device representation of the type
// starts with a 2-byte little-endian count of the bytes that follow it.
func HasLengthPrefix(f Family, id TypeID) bool {
	switch f {
	case TI89, TI92, TI92P, V200:
		return false
	case TI85, TI86:
		return lengthPrefixTI8586.has(id)
	case TI82, TI83:
		return lengthPrefixTI8283.has(id)
	case TI73:
		return lengthPrefixTI73.has(id)
	case TI83P, TI84P:
		return lengthPrefixTI83P.has(id)
	default:
		return false
	}
}

// ProtectedVariant returns the protected-program id for a plain program on
// the tokenized Z80 models and id unchanged otherwise.
func ProtectedVariant(f Family, id TypeID) TypeID {
	switch f {
	case TI73, TI82, TI83, TI83P, TI84P:
		if id == TI83Program {
			return TI83ProtProgram
		}
		return id
	case TI85, TI86, TI89, TI92, TI92P, V200:
		return id
	default:
		return id
	}
}

// ComplexVariant returns the complex counterpart of a numeric type. Families
// without complex types return id unchanged.
func ComplexVariant(f Family, id TypeID) TypeID {
	switch f {
	case TI89, TI92, TI92P, V200:
		if complexTI9x.has(id) {
			return id + 1
		}
		return id
	case TI85, TI86:
		if complexTI8586.has(id) {
			return id + 1
		}
		return id
	case TI82, TI73:
		return id
	case TI83, TI83P, TI84P:
		if complexTI83.has(id) {
			return id + TI83Complex
		}
		return id
	default:
		return id
	}
}

// ApplyAttributes derives the final type id from a resolved base id.
// Protection is applied before complexification; each at most once.
func ApplyAttributes(f Family, id TypeID, protect, complexify bool) TypeID {
	if protect {
		id = ProtectedVariant(f, id)
	}
	if complexify {
		id = ComplexVariant(f, id)
	}
	return id
}
