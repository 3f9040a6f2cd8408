// Package logger builds the application's slog.Logger: a console handler
// and, when enabled, a handler forwarding records to fluentd/fluent-bit.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/lmittmann/tint"
)

type Config struct {
	Level  string
	Format string // "text" (colored), "json" or "plain"
	Writer io.Writer

	FluentEnabled bool
	FluentHost    string
	FluentPort    int
	FluentTag     string
}

// New returns the logger and a function that flushes and closes any
// forwarding client.
func New(cfg Config) (*slog.Logger, func() error, error) {
	level := ParseLevel(cfg.Level)
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}

	var console slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		console = slog.NewJSONHandler(cfg.Writer, &slog.HandlerOptions{Level: level})
	case "plain":
		console = slog.NewTextHandler(cfg.Writer, &slog.HandlerOptions{Level: level})
	default:
		console = tint.NewHandler(cfg.Writer, &tint.Options{
			Level:      level,
			TimeFormat: "2006-01-02 15:04:05",
		})
	}

	closer := func() error { return nil }
	if !cfg.FluentEnabled {
		return slog.New(console), closer, nil
	}

	if cfg.FluentTag == "" {
		return nil, nil, fmt.Errorf("fluent tag prefix is required")
	}
	client, err := fluent.New(fluent.Config{
		FluentHost: cfg.FluentHost,
		FluentPort: cfg.FluentPort,
		TagPrefix:  cfg.FluentTag,
		Async:      true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create fluent client: %w", err)
	}

	handler := NewMultiHandler(console, NewFluentHandler(client, level))
	return slog.New(handler), client.Close, nil
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
