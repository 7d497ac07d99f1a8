package compress

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/utz82/tipack/pkg/payload/operations"
)

func init() {
	operations.Register(NewZstdOperation())
}

// ZstdOperation decodes Zstandard-compressed input
type ZstdOperation struct {
	operations.BaseOperation
}

// NewZstdOperation creates a new Zstandard operation
func NewZstdOperation() *ZstdOperation {
	return &ZstdOperation{
		BaseOperation: operations.BaseOperation{
			OpID:   operations.OP_ZSTD,
			OpName: "ZSTD",
		},
	}
}

// NewReader decompresses a Zstandard stream
func (o *ZstdOperation) NewReader(input io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(input)
	if err != nil {
		return nil, fmt.Errorf("creating zstd reader: %w", err)
	}
	return dec.IOReadCloser(), nil
}
