// Package debug sets up hungie's log output. The terminal belongs to the
// chat view, so logs go to a file unless a writer is given explicitly.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hungie/paths"

	"github.com/rs/zerolog"
)

// Level parses a config log level; empty means info
func Level(level string) (zerolog.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q: %w", level, err)
	}
	return parsed, nil
}

// LogToFile opens (appending) the log file at path and returns a JSON logger
// writing to it. An empty path uses ~/.hungie/hungie.log.
func LogToFile(path, level string) (zerolog.Logger, io.Closer, error) {
	lvl, err := Level(level)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	if path == "" {
		path, err = paths.GetDefaultLogPath()
		if err != nil {
			return zerolog.Nop(), nil, err
		}
	}
	if err := paths.EnsureDir(filepath.Dir(path)); err != nil {
		return zerolog.Nop(), nil, err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := zerolog.New(f).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return logger, f, nil
}

// Console returns a human-readable logger on w
func Console(w io.Writer, level string) zerolog.Logger {
	lvl, err := Level(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
