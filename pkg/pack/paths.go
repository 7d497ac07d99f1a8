package pack

import (
	"path/filepath"
	"strings"
)

// DefaultOutputBase is used for the output name when reading standard input.
const DefaultOutputBase = "a"

// OutputPath derives the output file name from the input name by replacing
// its last extension with typ.
func OutputPath(input, typ string) string {
	if input == "" || input == "-" {
		return DefaultOutputBase + "." + typ
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + typ
}

// TypeFromPath returns the extension of path without its dot.
func TypeFromPath(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}
