// Package logger configures structured logging for arenakit commands.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// L is the global logger instance. It's initialized to discard all output by
// default. Call Init() to enable logging.
var L *slog.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	Level   slog.Level // Minimum log level. Default: LevelInfo when enabled
	Writer  io.Writer  // Destination. Default: os.Stderr
}

// Init configures logging. Call from main() before any log calls.
// If opts.Enabled is false, all log output is discarded.
func Init(opts Options) {
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	L = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: opts.Level}))
}
