package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/andrescamacho/recipe-resolver/internal/infrastructure/config"
)

// SlogLogger adapts a slog.Logger to the application's Logger interface
type SlogLogger struct {
	logger *slog.Logger
	closer io.Closer
}

// New builds a logger from configuration. The returned logger must be closed
// when it writes to a file.
func New(cfg config.LoggingConfig) (*SlogLogger, error) {
	var (
		out    io.Writer
		closer io.Closer
	)

	switch cfg.Output {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closer = f
	default:
		return nil, fmt.Errorf("unsupported log output: %s", cfg.Output)
	}

	logger := NewWithWriter(out, cfg.Level, cfg.Format, cfg.IncludeCaller)
	logger.closer = closer
	return logger, nil
}

// NewWithWriter builds a logger writing to w
func NewWithWriter(w io.Writer, level, format string, includeCaller bool) *SlogLogger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(level),
		AddSource: includeCaller,
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &SlogLogger{logger: slog.New(handler)}
}

// ParseLevel maps configuration and call-site level names to slog levels.
// Unknown names log at INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Log writes message at level with metadata as attributes
func (l *SlogLogger) Log(level, message string, metadata map[string]interface{}) {
	attrs := make([]slog.Attr, 0, len(metadata))
	for key, value := range metadata {
		attrs = append(attrs, slog.Any(key, value))
	}
	l.logger.LogAttrs(context.Background(), ParseLevel(level), message, attrs...)
}

// With returns a logger that adds component to every record
func (l *SlogLogger) With(component string) *SlogLogger {
	return &SlogLogger{logger: l.logger.With("component", component)}
}

// Slog exposes the underlying slog logger
func (l *SlogLogger) Slog() *slog.Logger {
	return l.logger
}

// Close releases the log file, if any
func (l *SlogLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
