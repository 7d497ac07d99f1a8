package tifile

import "errors"

var (
	// Format errors 📦
	ErrInvalidSignature = errors.New("❌ invalid file signature")
	ErrChecksumMismatch = errors.New("❌ checksum mismatch")
	ErrTruncated        = errors.New("❌ file is truncated")
	ErrUnsupportedModel = errors.New("❌ unsupported calculator model")

	// Content errors 📂
	ErrInvalidAttribute = errors.New("❌ attribute not supported by this model")
	ErrDataTooLarge     = errors.New("❌ variable data too large for this format")
	ErrNoEntry          = errors.New("❌ content holds no variable")
	ErrNotSingleVar     = errors.New("❌ not a single-variable file")

	// Security errors 🔒
	ErrVerifyFailed = errors.New("❌ written file does not match its content")
)
