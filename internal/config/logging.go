package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LogLevel represents logging verbosity.
type LogLevel int

// Log level constants, off by default so a normal split/combine run
// never touches the filesystem beyond reading/writing shares.
const (
	LogLevelOff LogLevel = iota
	LogLevelError
	LogLevelDebug
)

// ParseLogLevel parses a log level string, defaulting to off for
// anything unrecognized.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogLevelDebug
	case "error":
		return LogLevelError
	default:
		return LogLevelOff
	}
}

// String returns the string representation of a log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "debug"
	case LogLevelError:
		return "error"
	default:
		return "off"
	}
}

// Logger is a minimal file-backed logger. Split and Combine accept
// one and use it only for operational events (field degree chosen,
// share counts, warnings raised) — secret material is never logged.
type Logger struct {
	mu      sync.Mutex
	level   LogLevel
	file    *os.File
	slogger *slog.Logger
}

// NewLogger creates a Logger writing to filePath at level. A level of
// LogLevelOff or an empty filePath yields a logger that discards
// everything without touching the filesystem.
func NewLogger(level LogLevel, filePath string) (*Logger, error) {
	logger := &Logger{level: level}

	if level == LogLevelOff || filePath == "" {
		return logger, nil
	}

	if strings.HasPrefix(filePath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		filePath = filepath.Join(home, filePath[2:])
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0o750); err != nil {
		return nil, err
	}

	// #nosec G304 -- log file path is derived from validated config, not arbitrary input
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	logger.file = f
	logger.slogger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: logger.slogLevel(),
	}))

	return logger, nil
}

// NullLogger returns a logger that discards all output.
func NullLogger() *Logger {
	return &Logger{level: LogLevelOff}
}

func (l *Logger) slogLevel() slog.Level {
	switch l.level {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelError
	}
}

// Debug logs an operational debug event with structured attributes.
// A nil *Logger is valid and logs nothing, so callers that receive an
// optional logger (e.g. internal/gfshare's orchestration functions)
// don't need their own nil check before every call.
func (l *Logger) Debug(msg string, attrs ...slog.Attr) {
	l.log(LogLevelDebug, msg, attrs...)
}

// Error logs an operational error event with structured attributes.
// A nil *Logger is valid and logs nothing.
func (l *Logger) Error(msg string, attrs ...slog.Attr) {
	l.log(LogLevelError, msg, attrs...)
}

func (l *Logger) log(level LogLevel, msg string, attrs ...slog.Attr) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.level == LogLevelOff || level > l.level || l.slogger == nil {
		return
	}

	slevel := slog.LevelDebug
	if level == LogLevelError {
		slevel = slog.LevelError
	}
	l.slogger.LogAttrs(context.Background(), slevel, msg, attrs...)
}

// Close closes the underlying log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
