package calc

import (
	"fmt"
	"strings"
)

// NameConverter turns a plain-text name into the representation the device
// stores for a variable of the given family.
type NameConverter interface {
	Tokenize(f Family, name string) (string, error)
}

// Tokenizer is the built-in NameConverter. It knows the system variable
// tokens of the TI-73/82/83/83+/84+ (lists, matrices, Y-vars, pictures,
// GDBs and strings) and passes ordinary names through.
type Tokenizer struct{}

const (
	tokenMatrix  = 0x5C
	tokenList    = 0x5D
	tokenEquYVar = 0x5E
	tokenPicture = 0x60
	tokenGDB     = 0x61
	tokenString  = 0xAA
)

// numberedTokens maps a name prefix to the token it is stored under.
var numberedTokens = []struct {
	prefix string
	token  byte
}{
	{"PIC", tokenPicture},
	{"GDB", tokenGDB},
	{"STR", tokenString},
}

// Tokenize implements NameConverter.
func (Tokenizer) Tokenize(f Family, name string) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}
	if !f.IsTI8x() || f.IsTI8586() {
		return Transliterate(name), nil
	}

	upper := strings.ToUpper(name)
	if tok, ok := systemToken(upper); ok {
		return tok, nil
	}

	// Ordinary names pass through; the record builder truncates them.
	for i := 0; i < len(upper); i++ {
		if upper[i] < 0x20 || upper[i] > 0x7E {
			return "", fmt.Errorf("%w: %q", ErrUntokenizable, name)
		}
	}
	return upper, nil
}

func systemToken(s string) (string, bool) {
	switch {
	case len(s) == 2 && s[0] == 'L' && s[1] >= '1' && s[1] <= '6':
		return string([]byte{tokenList, s[1] - '1'}), true
	case len(s) == 3 && s[0] == '[' && s[2] == ']' && s[1] >= 'A' && s[1] <= 'J':
		return string([]byte{tokenMatrix, s[1] - 'A'}), true
	case len(s) == 2 && s[0] == 'Y' && isDigit(s[1]):
		return string([]byte{tokenEquYVar, 0x10 + digitIndex(s[1])}), true
	}

	for _, nt := range numberedTokens {
		if len(s) == len(nt.prefix)+1 && strings.HasPrefix(s, nt.prefix) && isDigit(s[len(s)-1]) {
			return string([]byte{nt.token, digitIndex(s[len(s)-1])}), true
		}
	}
	return "", false
}

// IsTokenPrefix reports whether b starts a two-byte system variable token.
// The second byte of such a token may be zero.
func IsTokenPrefix(b byte) bool {
	switch b {
	case tokenMatrix, tokenList, tokenEquYVar, tokenPicture, tokenGDB, tokenString:
		return true
	}
	return false
}

// digitIndex orders digits the way the calculator menus do: 1..9 then 0.
func digitIndex(c byte) byte {
	if c == '0' {
		return 9
	}
	return c - '1'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
