package calc

import (
	"path/filepath"
	"strings"
)

// VarNameMax is the width of the on-device variable name field.
const VarNameMax = 8

// Placeholder replaces every character a plain name cannot hold.
const Placeholder = '['

// Transliterate uppercases ASCII letters, keeps digits and maps every other
// byte to Placeholder. The result has the same length as s.
func Transliterate(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			out[i] = c
		case c >= 'a' && c <= 'z':
			out[i] = c - 'a' + 'A'
		default:
			out[i] = Placeholder
		}
	}
	return string(out)
}

// BaseName strips the directory and the last extension from path.
func BaseName(path string) string {
	base := filepath.Base(path)
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return base
}

// DeriveName builds a variable name from an output file path when none was
// given. Tokenized types go through conv; the rest are transliterated.
func DeriveName(f Family, id TypeID, path string, conv NameConverter) (string, error) {
	base := BaseName(path)
	if base == "" || base == "." {
		return "", ErrEmptyName
	}
	if IsTokenizedName(f, id) {
		return conv.Tokenize(f, base)
	}
	return Transliterate(base), nil
}
