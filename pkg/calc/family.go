// Package calc describes the TI calculator families tipack can target: their
// variable type tables, the extension naming scheme, and the per-family rules
// that decide how a variable is framed and named.
package calc

import (
	"fmt"
	"strings"
)

// Family identifies one calculator generation sharing a file format and a
// type-id numbering.
type Family int

const (
	FamilyUnknown Family = iota
	TI73
	TI82
	TI83
	TI83P
	TI84P
	TI85
	TI86
	TI89
	TI92
	TI92P
	V200
)

// ResolutionOrder is the fixed priority used when an extension is valid for
// more than one family. TI83P precedes TI84P, so "8x?" files resolve to the
// TI-83 Plus unless a model is forced.
var ResolutionOrder = []Family{
	TI73, TI82, TI83, TI83P, TI84P, TI85, TI86, TI89, TI92, TI92P, V200,
}

var familyNames = map[Family]string{
	TI73:  "TI73",
	TI82:  "TI82",
	TI83:  "TI83",
	TI83P: "TI83+",
	TI84P: "TI84+",
	TI85:  "TI85",
	TI86:  "TI86",
	TI89:  "TI89",
	TI92:  "TI92",
	TI92P: "TI92+",
	V200:  "V200",
}

var familyPrefixes = map[Family]string{
	TI73:  "73",
	TI82:  "82",
	TI83:  "83",
	TI83P: "8x",
	TI84P: "8x",
	TI85:  "85",
	TI86:  "86",
	TI89:  "89",
	TI92:  "92",
	TI92P: "9x",
	V200:  "v2",
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN_%d", int(f))
}

// ExtPrefix returns the two-character extension prefix used by the family,
// e.g. "8x" for the TI-83 Plus.
func (f Family) ExtPrefix() string {
	return familyPrefixes[f]
}

// IsTI8x reports whether f belongs to the Z80 group (TI-73 through TI-86).
func (f Family) IsTI8x() bool {
	switch f {
	case TI73, TI82, TI83, TI83P, TI84P, TI85, TI86:
		return true
	default:
		return false
	}
}

// IsTI9x reports whether f belongs to the 68k group (TI-89, TI-92, V200).
func (f Family) IsTI9x() bool {
	switch f {
	case TI89, TI92, TI92P, V200:
		return true
	default:
		return false
	}
}

// IsTI8586 reports whether f is one of the non-tokenized Z80 models.
func (f Family) IsTI8586() bool {
	return f == TI85 || f == TI86
}

// HasArchive reports whether the family has archive memory at all.
func (f Family) HasArchive() bool {
	switch f {
	case TI73, TI83P, TI84P, TI89, TI92P, V200:
		return true
	default:
		return false
	}
}

// ParseFamily accepts names such as "ti83+", "TI-84 Plus", "83p" or "v200".
func ParseFamily(name string) (Family, error) {
	key := strings.ToLower(name)
	key = strings.NewReplacer("-", "", " ", "", "_", "", "plus", "+").Replace(key)
	key = strings.TrimPrefix(key, "ti")
	if strings.HasSuffix(key, "p") && len(key) == 3 {
		key = key[:2] + "+"
	}

	switch key {
	case "73":
		return TI73, nil
	case "82":
		return TI82, nil
	case "83":
		return TI83, nil
	case "83+", "8x":
		return TI83P, nil
	case "84+":
		return TI84P, nil
	case "85":
		return TI85, nil
	case "86":
		return TI86, nil
	case "89":
		return TI89, nil
	case "92":
		return TI92, nil
	case "92+", "9x":
		return TI92P, nil
	case "v200", "v2", "voyage200":
		return V200, nil
	}
	return FamilyUnknown, fmt.Errorf("%w: %q", ErrUnknownModel, name)
}
