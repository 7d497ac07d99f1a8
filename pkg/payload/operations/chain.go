package operations

import (
	"fmt"
	"io"
	"strings"
)

// maxChain is the number of operations a packed chain can hold.
const maxChain = 8

// PackOperations packs a list of operations into a 64-bit integer.
// Each operation takes 8 bits; the first operation sits in the LSB.
func PackOperations(operations []uint8) (uint64, error) {
	if len(operations) > maxChain {
		return 0, fmt.Errorf("maximum %d operations allowed, got %d", maxChain, len(operations))
	}

	var packed uint64
	for i, op := range operations {
		packed |= uint64(op) << (i * 8)
	}

	return packed, nil
}

// UnpackOperations unpacks a 64-bit integer into a list of operations.
func UnpackOperations(packed uint64) []uint8 {
	var operations []uint8

	for i := 0; i < maxChain; i++ {
		op := uint8((packed >> (i * 8)) & 0xFF)
		if op == OP_NONE { // terminates the chain
			break
		}
		operations = append(operations, op)
	}

	return operations
}

// OperationsToString converts packed operations to a human-readable string.
func OperationsToString(packed uint64) string {
	if packed == 0 {
		return "raw"
	}

	var names []string
	for _, op := range UnpackOperations(packed) {
		names = append(names, strings.ToLower(GetName(op)))
	}
	return strings.Join(names, "|")
}

// StringToOperations parses an operation string such as "gzip", "gz" or
// "bzip2|gzip" into packed operations. Operations are listed in the order
// they were applied when the input was produced.
func StringToOperations(opString string) (uint64, error) {
	opString = strings.ToLower(strings.TrimSpace(opString))
	if opString == "" || opString == "raw" {
		return 0, nil
	}

	var operations []uint8
	for _, part := range strings.Split(opString, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		op, ok := namedOperations[part]
		if !ok {
			return 0, fmt.Errorf("unknown operation string: %s", part)
		}
		operations = append(operations, op)
	}
	return PackOperations(operations)
}

// Named operations for parsing
var namedOperations = map[string]uint8{
	"gzip":  OP_GZIP,
	"gz":    OP_GZIP,
	"bzip2": OP_BZIP2,
	"bz2":   OP_BZIP2,
	"zstd":  OP_ZSTD,
	"zst":   OP_ZSTD,
}

// ReverseReader wraps input so that reading from the result yields the data
// with the chain reversed. Closing the result closes every decoder.
func ReverseReader(input io.Reader, operations []uint8) (io.ReadCloser, error) {
	chain := &readerChain{Reader: input}

	for i := len(operations) - 1; i >= 0; i-- {
		op, err := Get(operations[i])
		if err != nil {
			chain.Close()
			return nil, fmt.Errorf("operation 0x%02x: %w", operations[i], err)
		}

		rc, err := op.NewReader(chain.Reader)
		if err != nil {
			chain.Close()
			return nil, fmt.Errorf("reversing %s: %w", op.Name(), err)
		}
		chain.Reader = rc
		chain.closers = append(chain.closers, rc)
	}

	return chain, nil
}

type readerChain struct {
	io.Reader
	closers []io.Closer
}

func (c *readerChain) Close() error {
	var first error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}
