package app

import (
	"log/slog"
	"os"
	"strings"

	"github.com/resilientme/backend/internal/config"
)

// NewLogger builds the process-wide *slog.Logger from LogConfig and
// installs it with slog.SetDefault, so packages that log through the
// default logger pick it up too.
//
// Format "json" is for production; "text" adds source locations for local
// runs. Level accepts debug, info, warn, error (any case) and falls back
// to info. Everything goes to os.Stderr.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	level := parseLevel(cfg.Level)

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
