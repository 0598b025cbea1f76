package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// EnvVarLogLevel is the environment variable name for setting the log level.
	EnvVarLogLevel = "LOG_LEVEL"
)

// New creates a structured logger writing to w at the given level.
// Module name and version are included in every event.
func New(w io.Writer, module, version, level string) zerolog.Logger {
	return zerolog.New(w).
		Level(ParseLogLevel(level)).
		With().
		Timestamp().
		Str("module", module).
		Str("version", version).
		Logger()
}

// Setup installs the structured logger as the global zerolog logger.
// An empty level falls back to the LOG_LEVEL environment variable.
func Setup(w io.Writer, module, version, level string) {
	if level == "" {
		level = os.Getenv(EnvVarLogLevel)
	}
	log.Logger = New(w, module, version, level)
}

// SetupConsole logs human-readable lines to stderr. Used outside the TUI,
// where stderr is not owned by the alternate screen.
func SetupConsole(module, version, level string) {
	Setup(zerolog.ConsoleWriter{Out: os.Stderr}, module, version, level)
}

// OpenFile opens (or creates) a log file for appending.
// The caller owns the returned file.
func OpenFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}

// ParseLogLevel converts a string representation of a log level into a
// zerolog.Level. Unrecognized strings default to info.
func ParseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
