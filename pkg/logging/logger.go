// Package logging configures zerolog for statecache and the tools built on it.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs every cache operation.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs lifecycle events and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs degraded store access and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"

	// LevelDisabled turns logging off.
	LevelDisabled LogLevel = "disabled"
)

// Field names shared by every component that logs cache activity.
const (
	FieldComponent = "component"
	FieldOp        = "op"
	FieldKey       = "key"
	FieldField     = "field"
	FieldChannel   = "channel"
	FieldKind      = "kind"
	FieldTTL       = "ttl"
	FieldHit       = "hit"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output instead of JSON.
	Pretty bool

	// Output is the destination writer (default: os.Stderr).
	Output io.Writer
}

// DefaultConfig returns JSON logging at info level to stderr.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// Setup configures the global zerolog logger and returns it.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out}
	}

	logger := zerolog.New(out).With().Timestamp().Logger()
	log.Logger = logger

	return logger
}

// ParseLevel converts a LogLevel to a zerolog.Level.
// Unknown values fall back to info.
func ParseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(string(level))) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off", "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger derives a logger from the global one, tagged with component.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str(FieldComponent, component).Logger()
}

// Level guidelines:
//
// Debug: per-operation detail
//   - op, key, hit/miss, ttl
//
// Info: lifecycle
//   - connection configured (endpoint without credentials, db, codec)
//   - facade closed
//
// Warn: degraded store access that was absorbed by a safe default
//   - transport failures (refused, timeout, server error reply)
//   - encoding failures (value could not be encoded/decoded)
//   - failed ping
//
// Error: configuration problems that stop a tool from starting
