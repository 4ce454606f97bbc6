// Package logger provides structured logging for tdialog. Standard error
// usually carries dialog output, so nothing is logged unless a log file is
// configured.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Logger wraps slog.Logger.
type Logger struct {
	*slog.Logger
	closer io.Closer
}

// Level is a log level name.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format is a log line format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config holds logger configuration. A nil Output discards everything.
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(New(Config{Level: LevelInfo, Format: FormatText}))
}

// New creates a logger.
func New(cfg Config) *Logger {
	output := cfg.Output
	if output == nil {
		output = io.Discard
	}
	opts := &slog.HandlerOptions{Level: cfg.Level.slog()}

	var handler slog.Handler
	if cfg.Format == FormatJSON {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}
	return &Logger{Logger: slog.New(handler)}
}

// OpenFile creates a logger appending to path. Close releases the file.
func OpenFile(path string, level Level, format Format) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	l := New(Config{Level: level, Format: format, Output: f})
	l.closer = f
	return l, nil
}

// ParseLevel accepts debug, info, warn or error; anything else is info.
func ParseLevel(s string) Level {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelDebug:
		return LevelDebug
	case LevelWarn:
		return LevelWarn
	case LevelError:
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a logger with the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Debug logs at debug level on the default logger.
func Debug(msg string, args ...any) { GetDefault().Debug(msg, args...) }

// Info logs at info level on the default logger.
func Info(msg string, args ...any) { GetDefault().Info(msg, args...) }

// Warn logs at warn level on the default logger.
func Warn(msg string, args ...any) { GetDefault().Warn(msg, args...) }

// Error logs at error level on the default logger.
func Error(msg string, args ...any) { GetDefault().Error(msg, args...) }

// With returns the default logger with the given attributes.
func With(args ...any) *Logger { return GetDefault().With(args...) }

// SetDefault replaces the default logger.
func SetDefault(l *Logger) { defaultLogger.Store(l) }

// GetDefault returns the default logger.
func GetDefault() *Logger { return defaultLogger.Load() }
