package telemetry

import (
	"log/slog"
	"os"
)

// InitSlog installs the default logger for the process. debug mode turns on
// source locations and drops the level to debug.
func InitSlog(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})))
}
