package logging

import (
	"fmt"
	"log/slog"
	"os"
)

// Fields carries structured key/value pairs attached to a log entry.
type Fields map[string]any

// Logger is a component-scoped structured logger.
type Logger struct {
	sl *slog.Logger
}

var base = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
	Level: level(),
}))

func level() slog.Level {
	if os.Getenv("LOG_LEVEL") == "debug" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// New creates a logger scoped to the given component name.
func New(component string) *Logger {
	return &Logger{sl: base.With(slog.String("component", component))}
}

func (l *Logger) Debug(msg string, fields ...Fields) {
	l.sl.Debug(msg, attrs(fields)...)
}

func (l *Logger) Info(msg string, fields ...Fields) {
	l.sl.Info(msg, attrs(fields)...)
}

func (l *Logger) Warn(msg string, fields ...Fields) {
	l.sl.Warn(msg, attrs(fields)...)
}

func (l *Logger) Error(msg string, fields ...Fields) {
	l.sl.Error(msg, attrs(fields)...)
}

// Fatal logs at error level and exits the process.
func (l *Logger) Fatal(msg string, fields ...Fields) {
	l.sl.Error(msg, attrs(fields)...)
	os.Exit(1)
}

// Infof logs a printf-style message without structured fields.
func Infof(format string, args ...any) {
	base.Info(fmt.Sprintf(format, args...))
}

func attrs(fields []Fields) []any {
	var out []any
	for _, f := range fields {
		for k, v := range f {
			out = append(out, slog.Any(k, v))
		}
	}
	return out
}
