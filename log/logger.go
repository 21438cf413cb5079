// Package log provides the internal logging facility shared by every
// package in this module. It keeps the small, dependency-light call
// surface the rest of the module is written against (Debugf, Infof,
// Warnf, Errorf, SetLevel, SetOutput) but backs it with
// go.uber.org/zap instead of a hand-rolled formatter, the way a parser
// in this corpus wires a structured logger into its construction loop.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents the severity level of a log message.
type Level int

const (
	// DebugLevel is for detailed debugging information, e.g. insertion-mode transitions.
	DebugLevel Level = iota
	// InfoLevel is for general informational messages.
	InfoLevel
	// WarnLevel is for warning messages about potential issues, e.g. a recovered parse anomaly.
	WarnLevel
	// ErrorLevel is for error messages.
	ErrorLevel
)

// String returns the string representation of a log level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// Logger represents a logger instance backed by a zap sugared logger.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	level  Level
	prefix string
	sugar  *zap.SugaredLogger
}

// New creates a new Logger instance writing to out at the given minimum level.
func New(out io.Writer, level Level) *Logger {
	l := &Logger{out: out, level: level}
	l.rebuild()
	return l
}

// global logger instance, defaulting to WarnLevel on stderr.
var std = New(os.Stderr, WarnLevel)

// rebuild constructs the underlying zap logger from the current output and level.
// Must be called with mu held.
func (l *Logger) rebuild() {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.AddSync(l.out),
		l.level.zapLevel(),
	)
	l.sugar = zap.New(core).Sugar()
}

// SetOutput sets the output destination for the standard logger.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.out = w
	std.rebuild()
}

// SetLevel sets the minimum log level for the standard logger.
func SetLevel(level Level) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.level = level
	std.rebuild()
}

// GetLevel returns the current log level of the standard logger.
func GetLevel() Level {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.level
}

// SetPrefix sets a prefix prepended to every message logged by the standard logger.
func SetPrefix(prefix string) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.prefix = prefix
}

func (l *Logger) message(msg string) string {
	if l.prefix == "" {
		return msg
	}
	return fmt.Sprintf("[%s] %s", l.prefix, msg)
}

func (l *Logger) log(level Level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	sugar := l.sugar
	msg = l.message(msg)
	l.mu.Unlock()

	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}

	switch level {
	case DebugLevel:
		sugar.Debugw(msg, args...)
	case InfoLevel:
		sugar.Infow(msg, args...)
	case WarnLevel:
		sugar.Warnw(msg, args...)
	default:
		sugar.Errorw(msg, args...)
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) { l.log(DebugLevel, msg, nil) }

// Debugf logs a formatted debug message.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Info logs an info message.
func (l *Logger) Info(msg string) { l.log(InfoLevel, msg, nil) }

// Infof logs a formatted info message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) { l.log(WarnLevel, msg, nil) }

// Warnf logs a formatted warning message.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(WarnLevel, fmt.Sprintf(format, args...), nil)
}

// Error logs an error message.
func (l *Logger) Error(msg string) { l.log(ErrorLevel, msg, nil) }

// Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// WithFields logs a message with structured key-value fields.
func (l *Logger) WithFields(level Level, msg string, fields map[string]interface{}) {
	l.log(level, msg, fields)
}

// Debug logs a debug message using the standard logger.
func Debug(msg string) { std.log(DebugLevel, msg, nil) }

// Debugf logs a formatted debug message using the standard logger.
func Debugf(format string, args ...interface{}) { std.log(DebugLevel, fmt.Sprintf(format, args...), nil) }

// Info logs an info message using the standard logger.
func Info(msg string) { std.log(InfoLevel, msg, nil) }

// Infof logs a formatted info message using the standard logger.
func Infof(format string, args ...interface{}) { std.log(InfoLevel, fmt.Sprintf(format, args...), nil) }

// Warn logs a warning message using the standard logger.
func Warn(msg string) { std.log(WarnLevel, msg, nil) }

// Warnf logs a formatted warning message using the standard logger.
func Warnf(format string, args ...interface{}) { std.log(WarnLevel, fmt.Sprintf(format, args...), nil) }

// Error logs an error message using the standard logger.
func Error(msg string) { std.log(ErrorLevel, msg, nil) }

// Errorf logs a formatted error message using the standard logger.
func Errorf(format string, args ...interface{}) { std.log(ErrorLevel, fmt.Sprintf(format, args...), nil) }

// WithFields logs a message with structured key-value fields using the standard logger.
func WithFields(level Level, msg string, fields map[string]interface{}) {
	std.log(level, msg, fields)
}
