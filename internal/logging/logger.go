package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger with key/value convenience methods.
type Logger struct {
	zl zerolog.Logger
}

var global = New(os.Stderr, "info", "console")

// New builds a logger writing to w. format is "console" (human readable) or "json".
// Unknown levels fall back to info.
func New(w io.Writer, level, format string) *Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	out := w
	if format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return &Logger{zl: zerolog.New(out).Level(lvl).With().Timestamp().Logger()}
}

// SetGlobal replaces the package logger.
func SetGlobal(l *Logger) { global = l }

// Global returns the package logger.
func Global() *Logger { return global }

// With returns a child logger carrying the given key/value pairs.
func (l *Logger) With(fields ...interface{}) *Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		if k, ok := fields[i].(string); ok {
			ctx = ctx.Interface(k, fields[i+1])
		}
	}
	return &Logger{zl: ctx.Logger()}
}

func (l *Logger) Debug(msg string, fields ...interface{}) { emit(l.zl.Debug(), msg, fields) }
func (l *Logger) Info(msg string, fields ...interface{})  { emit(l.zl.Info(), msg, fields) }
func (l *Logger) Warn(msg string, fields ...interface{})  { emit(l.zl.Warn(), msg, fields) }
func (l *Logger) Error(msg string, fields ...interface{}) { emit(l.zl.Error(), msg, fields) }

func emit(e *zerolog.Event, msg string, fields []interface{}) {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		if err, isErr := fields[i+1].(error); isErr {
			e.Str(key, err.Error())
			continue
		}
		e.Interface(key, fields[i+1])
	}
	e.Msg(msg)
}

func Debug(msg string, fields ...interface{}) { global.Debug(msg, fields...) }
func Info(msg string, fields ...interface{})  { global.Info(msg, fields...) }
func Warn(msg string, fields ...interface{})  { global.Warn(msg, fields...) }
func Error(msg string, fields ...interface{}) { global.Error(msg, fields...) }
