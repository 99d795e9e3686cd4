// Package cli implements the texatlas command-line interface.
//
// # Commands
//
// The main commands are:
//   - build: Build an atlas from a folder or a list of images and export it
//   - export: Save every processed image on its own
//   - layout: Preview the canvas size, placements, and setting bounds
//   - tui: Adjust settings interactively and save when satisfied
//
// # Configuration
//
// Settings come from, in increasing priority: built-in defaults, a config
// file (--config or TEXATLAS_CONFIG; TOML, YAML, or JSON), and flags. A .env
// file in the working directory is loaded on startup.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging;
// TEXATLAS_LOG_LEVEL sets the level otherwise. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          appName,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Packed 12 images (41ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
