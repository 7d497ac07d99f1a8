// Package payload reads the raw data that becomes a variable's contents.
package payload

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/utz82/tipack/pkg/payload/operations"

	// Register decode operations
	_ "github.com/utz82/tipack/pkg/payload/operations/compress"
)

// LengthPrefixSize is the size of the little-endian length field some
// variable types start with.
const LengthPrefixSize = 2

// StdinName is shown in place of a file name when reading standard input.
const StdinName = "(standard input)"

// Assembler collects an input stream into one owned buffer.
type Assembler struct {
	// Reserve makes room for a length prefix that is filled in once the
	// final size is known.
	Reserve bool

	Logger hclog.Logger
}

// ReadFrom reads r to EOF. Every byte is kept as is. With Reserve set, the
// first two bytes hold (len-2) truncated to 16 bits.
func (a *Assembler) ReadFrom(r io.Reader) ([]byte, error) {
	logger := a.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var buf bytes.Buffer
	if a.Reserve {
		buf.Write(make([]byte, LengthPrefixSize))
	}

	n, err := buf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	logger.Debug("📥 Payload read", "bytes", n, "reserved", a.Reserve)

	data := buf.Bytes()
	if a.Reserve {
		body := len(data) - LengthPrefixSize
		if body > 0xFFFF {
			logger.Warn("⚠️ Payload exceeds 16-bit length field, prefix wraps", "bytes", body)
		}
		binary.LittleEndian.PutUint16(data[:LengthPrefixSize], uint16(body))
	}
	return data, nil
}

// Open returns a reader for the named file, or standard input when name is
// empty or "-". The returned display name is suitable for messages.
func Open(name string) (io.ReadCloser, string, error) {
	if name == "" || name == "-" {
		return io.NopCloser(os.Stdin), StdinName, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, name, err
	}
	return f, name, nil
}

// Decode wraps r so the operations named by ops (e.g. "gzip") are reversed
// while reading. An empty or "raw" ops string returns r unchanged.
func Decode(r io.Reader, ops string) (io.ReadCloser, error) {
	packed, err := operations.StringToOperations(ops)
	if err != nil {
		return nil, err
	}
	if packed == 0 {
		return io.NopCloser(r), nil
	}
	return operations.ReverseReader(r, operations.UnpackOperations(packed))
}
