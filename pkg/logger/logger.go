package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Log is safe to use before Init; it starts as the slog default and is
// replaced with the configured JSON logger at startup.
var Log = slog.Default()

// Init configures the process-wide JSON logger. LOG_LEVEL controls verbosity
// and defaults to info.
func Init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
	Log = slog.New(handler)
	slog.SetDefault(Log)
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
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
