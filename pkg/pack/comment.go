package pack

import (
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
	"github.com/utz82/tipack/pkg/tifile"
)

// ExpandComment returns the comment stored in the file. A comment holding a
// '%' is a strftime template evaluated against now. The result is cut to
// the comment field width.
func ExpandComment(comment string, now time.Time) (string, error) {
	if strings.ContainsRune(comment, '%') {
		expanded, err := strftime.Format(comment, now)
		if err != nil {
			return "", err
		}
		comment = expanded
	}
	if len(comment) > tifile.CommentMax {
		comment = comment[:tifile.CommentMax]
	}
	return comment, nil
}
