// Package telemetry provides the dependency-injected logging and progress
// seams the optimizer reports through, following the `log.With(...)`
// structured-field idiom used across the pack (charmbracelet/log).
package telemetry

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the narrow surface the core packages log through. It is an
// interface rather than a concrete *log.Logger so callers can substitute
// their own backend (or a no-op logger in tests).
type Logger interface {
	With(keyvals ...interface{}) Logger
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// charmLogger adapts *log.Logger to the Logger interface.
type charmLogger struct {
	l *log.Logger
}

// NewLogger returns the default charmbracelet/log-backed Logger, writing
// to stderr at info level.
func NewLogger() Logger {
	return &charmLogger{l: log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})}
}

func (c *charmLogger) With(keyvals ...interface{}) Logger {
	return &charmLogger{l: c.l.With(keyvals...)}
}

func (c *charmLogger) Debugf(format string, args ...interface{}) { c.l.Debugf(format, args...) }
func (c *charmLogger) Infof(format string, args ...interface{})  { c.l.Infof(format, args...) }
func (c *charmLogger) Warnf(format string, args ...interface{})  { c.l.Warnf(format, args...) }
func (c *charmLogger) Errorf(format string, args ...interface{}) { c.l.Errorf(format, args...) }

// NopLogger discards everything; useful in tests and for callers that
// never supplied a Logger.
type NopLogger struct{}

func (NopLogger) With(...interface{}) Logger            { return NopLogger{} }
func (NopLogger) Debugf(string, ...interface{})         {}
func (NopLogger) Infof(string, ...interface{})          {}
func (NopLogger) Warnf(string, ...interface{})          {}
func (NopLogger) Errorf(string, ...interface{})         {}
