// Package logging defines the logger used throughout debmagic and its CLI
// implementation.
package logging

import (
	"io"

	"github.com/debmagic/debmagic/internal/style"
)

// Logger defines behavior required by a logging package used by debmagic
type Logger interface {
	Debug(msg string)
	Debugf(format string, v ...interface{})

	Info(msg string)
	Infof(format string, v ...interface{})

	Warn(msg string)
	Warnf(format string, v ...interface{})

	Error(msg string)
	Errorf(format string, v ...interface{})

	// Writer returns the writer build tools and containers stream into.
	Writer() io.Writer

	IsVerbose() bool
}

// Level is a logging level, mirroring the levels of the underlying handler.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

type writerForLevel interface {
	WriterForLevel(level Level) io.Writer
}

// GetWriterForLevel returns a writer for the given level if the logger
// supports it, otherwise its default writer.
func GetWriterForLevel(logger Logger, level Level) io.Writer {
	if l, ok := logger.(writerForLevel); ok {
		return l.WriterForLevel(level)
	}
	return logger.Writer()
}

// IsQuiet reports whether the logger was configured to show only warnings and errors.
func IsQuiet(logger Logger) bool {
	if l, ok := logger.(interface{ IsQuiet() bool }); ok {
		return l.IsQuiet()
	}
	return false
}

// Tip logs a tip.
func Tip(l Logger, format string, v ...interface{}) {
	l.Infof(style.Tip("Tip: ")+format, v...)
}

type discardLogger struct{}

// NewDiscardLogger returns a Logger that drops everything.
func NewDiscardLogger() Logger {
	return discardLogger{}
}

func (discardLogger) Debug(string)                  {}
func (discardLogger) Debugf(string, ...interface{}) {}
func (discardLogger) Info(string)                   {}
func (discardLogger) Infof(string, ...interface{})  {}
func (discardLogger) Warn(string)                   {}
func (discardLogger) Warnf(string, ...interface{})  {}
func (discardLogger) Error(string)                  {}
func (discardLogger) Errorf(string, ...interface{}) {}
func (discardLogger) Writer() io.Writer             { return io.Discard }
func (discardLogger) IsVerbose() bool               { return false }
