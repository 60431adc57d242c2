// Package logging builds the slog handler used for diagnostics.
package logging

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// NewTerminalHandler returns a handler writing human-readable logs to w,
// colored only when w is a terminal. Debug logs are emitted when debug is
// true; otherwise the level is Info, which keeps the steady-state loop
// silent.
func NewTerminalHandler(w *os.File, debug bool) slog.Handler {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return tint.NewHandler(w, &tint.Options{
		Level:   level,
		NoColor: !isatty.IsTerminal(w.Fd()),
	})
}
