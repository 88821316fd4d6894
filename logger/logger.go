// Package logger is a small structured logging facade over logrus.
package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Ctx is the logging context attached to a message.
type Ctx map[string]any

// Logger is the logging interface used across the module.
type Logger interface {
	Panic(msg string, ctx ...Ctx)
	Fatal(msg string, ctx ...Ctx)
	Error(msg string, ctx ...Ctx)
	Warn(msg string, ctx ...Ctx)
	Info(msg string, ctx ...Ctx)
	Debug(msg string, ctx ...Ctx)
	Trace(msg string, ctx ...Ctx)
	AddContext(ctx Ctx) Logger
}

// targetLogger is satisfied by both *logrus.Logger and *logrus.Entry.
type targetLogger interface {
	Panic(args ...any)
	Fatal(args ...any)
	Error(args ...any)
	Warn(args ...any)
	Info(args ...any)
	Debug(args ...any)
	Trace(args ...any)
	WithFields(fields logrus.Fields) *logrus.Entry
}

// Log is the default logger. It discards everything until replaced.
var Log = New(logrus.PanicLevel, io.Discard)

// New returns a text logger writing to w at level.
func New(level logrus.Level, w io.Writer) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return newWrapper(l)
}

// NewLogrus wraps an existing logrus logger or entry.
func NewLogrus(l targetLogger) Logger {
	return newWrapper(l)
}

// ParseLevel maps a level name such as "debug" to a logrus level. The empty
// string selects warn.
func ParseLevel(s string) (logrus.Level, error) {
	if s == "" {
		return logrus.WarnLevel, nil
	}
	return logrus.ParseLevel(s)
}
