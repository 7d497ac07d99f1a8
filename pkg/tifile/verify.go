package tifile

import (
	"bytes"
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// Verify re-reads the file at path and checks that it holds exactly what
// want describes. Every mismatch is logged; the returned error wraps
// ErrVerifyFailed when there was at least one.
func Verify(path string, want *Content, logger hclog.Logger) (*Content, error) {
	got, err := ReadFile(path)
	if err != nil {
		logger.Error("File could not be decoded", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrVerifyFailed, err)
	}
	logger.Debug("✓ Signature and checksum valid", "checksum", fmt.Sprintf("0x%04x", got.Checksum))

	var problems []string
	check := func(field string, ok bool, gotVal, wantVal any) {
		if ok {
			logger.Trace("✓ Field matches", "field", field)
			return
		}
		problems = append(problems, field)
		logger.Error("Field mismatch", "field", field, "got", gotVal, "want", wantVal)
	}

	if want.Entry != nil && got.Entry != nil {
		check("name", got.Entry.Name == want.Entry.Name, PrintableName(got.Entry.Name), PrintableName(want.Entry.Name))
		check("type", got.Entry.Type == want.Entry.Type, got.Entry.Type, want.Entry.Type)
		check("archived", got.Entry.Archived() == want.Entry.Archived(), got.Entry.Archived(), want.Entry.Archived())
		check("data", bytes.Equal(got.Entry.Data, want.Entry.Data), got.Entry.Size, want.Entry.Size)
	}
	check("comment", got.Comment == want.Comment, got.Comment, want.Comment)
	check("checksum", got.Checksum == want.Checksum, got.Checksum, want.Checksum)

	if len(problems) > 0 {
		logger.Error("✗ Verification failed", "error_count", len(problems))
		return got, fmt.Errorf("%w: %v", ErrVerifyFailed, problems)
	}
	logger.Debug("✓ Verification passed", "path", path)
	return got, nil
}
