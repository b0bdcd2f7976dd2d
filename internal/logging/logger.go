// Package logging provides the structured logger used across pour.
//
// Components depend on the small Logger interface and default to a no-op
// implementation; the CLI wires in a charmbracelet/log backed logger.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Logger provides structured logging with key-value pairs.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}

// Noop returns a Logger that discards everything.
func Noop() Logger {
	return noopLogger{}
}

// OrNoop returns l, or the no-op logger when l is nil.
func OrNoop(l Logger) Logger {
	if l == nil {
		return Noop()
	}
	return l
}

// Options configures a charm-backed logger.
type Options struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Prefix is printed before every message.
	Prefix string
	// Timestamps enables the time column.
	Timestamps bool
}

// charmLogger adapts *log.Logger to Logger.
type charmLogger struct {
	l *log.Logger
}

// New creates a Logger writing to w.
func New(w io.Writer, opts Options) (Logger, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	l := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          opts.Prefix,
		ReportTimestamp: opts.Timestamps,
	})
	return &charmLogger{l: l}, nil
}

func (c *charmLogger) Debug(msg string, keysAndValues ...interface{}) {
	c.l.Debug(msg, keysAndValues...)
}

func (c *charmLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Info(msg, keysAndValues...)
}

func (c *charmLogger) Warn(msg string, keysAndValues ...interface{}) {
	c.l.Warn(msg, keysAndValues...)
}

func (c *charmLogger) Error(msg string, keysAndValues ...interface{}) {
	c.l.Error(msg, keysAndValues...)
}

// With returns a Logger that adds keysAndValues to every entry.
// Loggers that are not charm-backed are returned unchanged.
func With(l Logger, keysAndValues ...interface{}) Logger {
	if c, ok := l.(*charmLogger); ok {
		return &charmLogger{l: c.l.With(keysAndValues...)}
	}
	return OrNoop(l)
}
