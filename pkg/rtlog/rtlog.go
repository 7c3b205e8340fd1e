// Package rtlog implements core.Logger over zerolog, replacing the
// teacher's fmt.Printf-wrapping DefaultLogger with structured,
// leveled output.
package rtlog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/lumenray/tracer/pkg/core"
)

// Logger adapts a zerolog.Logger to core.Logger's Printf contract, so
// callers written against the teacher's logging convention (pass/worker
// progress messages via Printf) keep working unchanged while output
// gains levels, timestamps, and structured fields.
type Logger struct {
	zl zerolog.Logger
}

var _ core.Logger = (*Logger)(nil)

// New builds a Logger writing human-readable, colorized output to w at
// the given level (use zerolog.InfoLevel for normal runs, zerolog.Disabled
// to silence rendering progress entirely).
func New(w io.Writer, level zerolog.Level) *Logger {
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	zl := zerolog.New(console).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// NewDefault builds a Logger writing to stderr at info level, the
// rough equivalent of the teacher's NewDefaultLogger.
func NewDefault() *Logger {
	return New(os.Stderr, zerolog.InfoLevel)
}

// Printf implements core.Logger by routing the formatted message through
// zerolog at info level, preserving the Printf-style call sites already
// used by the scheduler.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

// With returns a Logger carrying an additional structured field,
// for call sites that want richer context than Printf's single string
// (e.g. tagging a message with the active tile or pass index).
func (l *Logger) With(key string, value interface{}) *Logger {
	return &Logger{zl: l.zl.With().Interface(key, value).Logger()}
}

// Errorf routes a formatted message through zerolog at error level,
// for failures that should stand out from ordinary progress output.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}
