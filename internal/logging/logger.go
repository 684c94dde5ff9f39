package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/defihorse/horse-deploy/internal/domain/config"
	"github.com/google/wire"
)

var LoggingSet = wire.NewSet(
	NewLogger,
)

// NewLogger creates a new logger based on runtime configuration
func NewLogger(cfg *config.RuntimeConfig) *slog.Logger {
	return newLogger(os.Stderr, levelFor(cfg), cfg != nil && cfg.Debug)
}

func levelFor(cfg *config.RuntimeConfig) slog.Level {
	level := slog.LevelWarn
	if cfg != nil && cfg.Debug {
		level = slog.LevelDebug
	}

	switch strings.ToLower(os.Getenv("HORSE_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		// unset or unknown, keep default
	}
	return level
}

func newLogger(w io.Writer, level slog.Level, addSource bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Deployment output is read by humans, drop timestamps
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					source.File = shortPath(source.File)
				}
			}
			return a
		},
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// shortPath returns a shortened version of the file path
func shortPath(file string) string {
	if idx := strings.Index(file, "horse-deploy/"); idx != -1 {
		return file[idx+len("horse-deploy/"):]
	}
	parts := strings.Split(file, "/")
	return parts[len(parts)-1]
}
