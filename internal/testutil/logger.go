package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger whose output is discarded. Every service
// constructor takes a logger, so suites pass this to keep test runs
// quiet.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
