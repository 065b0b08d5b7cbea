package logutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"rhystmorgan/contactterm/internal/config"
)

const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 14
)

// NewFileLogger writes to a rotating log file. The TUI owns the terminal, so
// it never logs to stdout or stderr. The returned closer flushes the file.
func NewFileLogger(cfg config.LoggingConfig) (*slog.Logger, io.Closer, error) {
	path := strings.TrimSpace(cfg.File)
	if path == "" {
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
	}

	logger, err := New(cfg, sink)
	if err != nil {
		_ = sink.Close()
		return nil, nil, err
	}
	return logger, sink, nil
}

// New builds a slog logger for w from the level and format settings.
func New(cfg config.LoggingConfig, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown logging.format: %s", cfg.Format)
	}

	return slog.New(h), nil
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown logging.level: %s", s)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
