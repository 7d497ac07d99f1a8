package compress

import (
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/utz82/tipack/pkg/payload/operations"
)

func init() {
	operations.Register(NewBzip2Operation())
}

// Bzip2Operation decodes BZIP2-compressed input
type Bzip2Operation struct {
	operations.BaseOperation
}

// NewBzip2Operation creates a new BZIP2 operation
func NewBzip2Operation() *Bzip2Operation {
	return &Bzip2Operation{
		BaseOperation: operations.BaseOperation{
			OpID:   operations.OP_BZIP2,
			OpName: "BZIP2",
		},
	}
}

// NewReader decompresses a BZIP2 stream
func (o *Bzip2Operation) NewReader(input io.Reader) (io.ReadCloser, error) {
	br, err := bzip2.NewReader(input, &bzip2.ReaderConfig{})
	if err != nil {
		return nil, fmt.Errorf("creating bzip2 reader: %w", err)
	}
	return br, nil
}
