// Package permissions parses the file modes used for emitted files.
package permissions

import (
	"fmt"
	"strconv"
	"strings"
)

// Default modes of emitted files and the directories created for them.
const (
	DefaultFilePerms = 0o644
	DefaultDirPerms  = 0o755
)

// ParseOctalString parses a mode such as "644", "0644" or "0o644". An empty
// string yields DefaultFilePerms.
func ParseOctalString(s string) (uint16, error) {
	if s == "" {
		return DefaultFilePerms, nil
	}

	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0o"), "0")
	if digits == "" {
		return 0, nil
	}
	val, err := strconv.ParseUint(digits, 8, 16)
	if err != nil || val > 0o777 {
		return DefaultFilePerms, fmt.Errorf("invalid file mode %q", s)
	}
	return uint16(val), nil
}

// FormatOctal formats a mode the way ParseOctalString accepts it.
func FormatOctal(perm uint16) string {
	return fmt.Sprintf("0%o", perm)
}
