package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mrz1836/xrbwallet/internal/fileutil"
)

// LogLevel represents logging verbosity levels.
type LogLevel int

// Log level constants.
const (
	LogLevelOff LogLevel = iota
	LogLevelError
	LogLevelInfo
	LogLevelDebug
)

// ParseLogLevel parses a log level string.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none":
		return LogLevelOff
	case "error":
		return LogLevelError
	case "info":
		return LogLevelInfo
	case "debug":
		return LogLevelDebug
	default:
		return LogLevelError
	}
}

// String returns the string representation of a log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelOff:
		return "off"
	case LogLevelError:
		return "error"
	case LogLevelInfo:
		return "info"
	case LogLevelDebug:
		return "debug"
	default:
		return "error"
	}
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case LogLevelOff:
		return zerolog.Disabled
	case LogLevelError:
		return zerolog.ErrorLevel
	case LogLevelInfo:
		return zerolog.InfoLevel
	case LogLevelDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.ErrorLevel
	}
}

// Logger writes leveled log lines to a file through zerolog.
type Logger struct {
	mu    sync.Mutex
	level LogLevel
	zl    zerolog.Logger
	file  *os.File
}

// NewLogger creates a logger writing JSON lines to filePath. An empty path
// or LogLevelOff yields a logger that discards everything.
func NewLogger(level LogLevel, filePath string) (*Logger, error) {
	return newLogger(level, filePath, true)
}

// NewConsoleFileLogger is NewLogger with human-readable lines instead of
// JSON.
func NewConsoleFileLogger(level LogLevel, filePath string) (*Logger, error) {
	return newLogger(level, filePath, false)
}

func newLogger(level LogLevel, filePath string, jsonOutput bool) (*Logger, error) {
	if level == LogLevelOff || filePath == "" {
		return NullLogger(), nil
	}

	filePath = ExpandPath(filePath)
	if err := fileutil.EnsureDir(filepath.Dir(filePath)); err != nil {
		return nil, err
	}

	// #nosec G304 -- log file path is from validated config
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, fileutil.PrivateFilePerm)
	if err != nil {
		return nil, err
	}

	var w io.Writer = f
	if !jsonOutput {
		w = zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: "2006-01-02 15:04:05.000"}
	}

	return &Logger{
		level: level,
		zl:    zerolog.New(w).Level(level.zerolog()).With().Timestamp().Logger(),
		file:  f,
	}, nil
}

// NewWriterLogger logs JSON lines to w. Used by tests.
func NewWriterLogger(level LogLevel, w io.Writer) *Logger {
	return &Logger{
		level: level,
		zl:    zerolog.New(w).Level(level.zerolog()).With().Timestamp().Logger(),
	}
}

// NullLogger returns a logger that discards all output.
func NullLogger() *Logger {
	return &Logger{level: LogLevelOff, zl: zerolog.Nop()}
}

// With returns a child logger tagging every line with component. The
// child shares the parent's file; only the parent should be closed.
func (l *Logger) With(component string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &Logger{
		level: l.level,
		zl:    l.zl.With().Str("component", component).Logger(),
	}
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.zl = zerolog.Nop()
	return err
}

// SetLevel changes the log level.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.zl = l.zl.Level(level.zerolog())
}

// Level returns the current log level.
func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.Debug().Msgf(format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.Info().Msgf(format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.Error().Msgf(format, args...)
}
