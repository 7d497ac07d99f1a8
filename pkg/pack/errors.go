package pack

import (
	"errors"
	"fmt"
)

var (
	// Argument errors 🧾
	ErrUsage  = errors.New("❌ usage error")
	ErrNoType = errors.New("❌ no variable type given and none derivable from the output name")

	// I/O errors 💾
	ErrInput  = errors.New("❌ cannot open input")
	ErrOutput = errors.New("❌ cannot write output")
)

// Process exit codes.
const (
	ExitOK     = 0
	ExitUsage  = 1
	ExitInput  = 2
	ExitOutput = 3
)

// ExitError carries the exit code a failed run should end the process with,
// along with the phase that failed.
type ExitError struct {
	Code int
	Op   string
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// UsageError marks err as a bad or missing argument.
func UsageError(op string, err error) error {
	return &ExitError{Code: ExitUsage, Op: op, Err: fmt.Errorf("%w: %w", ErrUsage, err)}
}

// InputError marks err as a failure to open the input.
func InputError(op string, err error) error {
	return &ExitError{Code: ExitInput, Op: op, Err: fmt.Errorf("%w: %w", ErrInput, err)}
}

// OutputError marks err as a failure to produce the output file.
func OutputError(op string, err error) error {
	return &ExitError{Code: ExitOutput, Op: op, Err: fmt.Errorf("%w: %w", ErrOutput, err)}
}

// ExitCode maps err to a process exit code. Unclassified errors count as
// usage errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUsage
}

// FailedOp names the phase that produced err, or "" when unknown.
func FailedOp(err error) string {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Op
	}
	return ""
}
