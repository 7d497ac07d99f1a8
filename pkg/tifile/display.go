package tifile

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/utz82/tipack/pkg/calc"
)

// Display logs a summary of c, one line for the file and one for its
// variable.
func Display(logger hclog.Logger, c *Content) {
	logger.Info("📄 File",
		"signature", Signature(c.Family),
		"model", c.Family,
		"comment", c.Comment,
		"checksum", fmt.Sprintf("0x%04x", c.Checksum),
	)
	if c.Entry == nil {
		return
	}

	e := c.Entry
	logger.Info("🧮 Variable",
		"name", PrintableName(e.Name),
		"folder", e.Folder,
		"type", fmt.Sprintf("%s (0x%02x)", calc.TypeName(c.Family, e.Type), uint8(e.Type)),
		"archived", e.Archived(),
		"size", e.Size,
	)
}

// PrintableName renders a possibly tokenized name with non-printable bytes
// escaped as \xNN.
func PrintableName(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 0x20 && c < 0x7F {
			out = append(out, c)
			continue
		}
		out = append(out, fmt.Sprintf(`\x%02X`, c)...)
	}
	return string(out)
}
