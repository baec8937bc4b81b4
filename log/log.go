// Package log builds the logger the detached recorder worker writes with.
// The worker's stdout and stderr are redirected by the supervisor into a
// single append-only per-user file, so panics and child process noise land
// in the same place as structured log lines.
package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger writing human-readable timestamped lines to w,
// tagged with this process's pid so interleaved runs can be told apart.
func New(w io.Writer) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	return zerolog.New(cw).With().Timestamp().Int("pid", os.Getpid()).Logger()
}

// OpenFile opens the worker log for appending, creating it if needed.
func OpenFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}
