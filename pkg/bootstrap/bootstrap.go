// Package bootstrap wires up process-level infrastructure: logging and the
// local storage backend.
package bootstrap

import (
	"log/slog"
	"os"

	"github.com/kaozx001/project-nawatakum/pkg/storage"
)

// NewLogger creates a slog.Logger emitting JSON at the given level.
func NewLogger(level string) *slog.Logger {
	logLevel := toLevel(level)
	opts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// NewStorage opens the file-backed collection store under dir.
func NewStorage(dir string, logger *slog.Logger) (storage.KV, error) {
	return storage.NewFileKV(dir, logger)
}

// toLevel converts a string representation of a log level to slog.Level.
func toLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
