package testutil

import (
	"io"
	"log/slog"

	"github.com/dtroode/tasktracker-server/internal/logger"
)

// MakeNoopLogger returns a logger that discards everything.
func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, int(slog.LevelError)+4)
}
