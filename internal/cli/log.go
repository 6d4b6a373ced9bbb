// Package cli implements the gridsolve command-line interface.
//
// The commands are thin wrappers over the layout library for inspecting how
// an arrangement is classified, solved and rendered. The CLI is built using
// cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - solve: Compute subplot rectangles and write them as JSON or a table
//   - classify: Show the geometry of an arrangement and whether it is a grid
//   - lines: Print the column and row boundaries in figure fraction
//   - graph: Draw the adjacency graph of an arrangement as DOT or SVG
//   - preview: Render the computed rectangles to SVG, PDF or PNG
//   - inset: Place an inset colorbar and its frame inside host axes
//   - explore: Browse a layout interactively while resizing the figure
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context, so the layout engine's fallback warnings
// and the command's own progress share one stream on stderr.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long an operation took once it is done.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time rounded to the millisecond.
// Example output: "Positioned 4 subplots (2ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a copy of ctx carrying l.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
			return l
		}
	}
	return log.Default()
}
