package logging

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Prefix marks every non-JSON log line.
const Prefix = "📟 "

// DefaultLevel keeps the tool quiet unless asked otherwise.
const DefaultLevel = "warn"

// NewLogger creates a new hclog logger with standard settings
func NewLogger(name string, level string, jsonFormat bool, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}
	if level == "" {
		level = DefaultLevel
	}

	// Add prefix for non-JSON output
	if !jsonFormat {
		output = NewPrefixWriter(Prefix, output)
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	return hclog.New(opts)
}

// VerboseLevel raises level to at least info, which is what -v asks for.
func VerboseLevel(level string) string {
	if hclog.LevelFromString(level) == hclog.NoLevel || hclog.LevelFromString(level) > hclog.Info {
		return "info"
	}
	return level
}
