package ggprint

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record and reports every level as disabled, so log
// calls made while printing cost only the Enabled check.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (discard) WithAttrs([]slog.Attr) slog.Handler        { return discard{} }
func (discard) WithGroup(string) slog.Handler             { return discard{} }

var silent = slog.New(discard{})

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent)
}

// SetLogger routes the diagnostics of the print pipeline to l. A nil l
// silences them again, which is also the initial state.
//
// What is logged:
//   - Debug: job and page boundaries from the ps device (page number,
//     format, layout, resources released) and every image written
//   - Warn: repairs and skipped work, namely clip or translate stacks
//     left open at EndPage, sequencing errors recorded by primitives,
//     read-back chunks that failed and were skipped, a front window that
//     could not be restored, and surface printers that failed so the
//     widget was drawn instead
//
// SetLogger may be called while a job is running on another goroutine.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger set with SetLogger. The page devices, the
// recorder and the capture printer all log through it.
func Logger() *slog.Logger {
	return current.Load()
}
