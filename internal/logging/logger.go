// Package logging builds the zerolog logger. The TUI owns the terminal, so logs go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// EnvLevel overrides the configured level: trace, debug, info, warn, error
const EnvLevel = "CM_LOG_LEVEL"

// Config holds logging configuration
type Config struct {
	File       string
	Level      zerolog.Level
	TimeFormat string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		TimeFormat: time.RFC3339,
	}
}

// ParseLevel maps a level name to a zerolog level, defaulting to info
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New creates a console-formatted logger writing to w
func New(cfg Config, w io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: cfg.TimeFormat,
		NoColor:    true,
	}
	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// Open creates the log file (and its directory) and returns a logger writing to it.
// The returned closer must be called on exit. An empty File disables logging.
func Open(cfg Config) (zerolog.Logger, io.Closer, error) {
	if level := os.Getenv(EnvLevel); level != "" {
		cfg.Level = ParseLevel(level)
	}
	if cfg.File == "" || cfg.Level == zerolog.Disabled {
		return zerolog.Nop(), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("open log file: %w", err)
	}
	return New(cfg, f), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
