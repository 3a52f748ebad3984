package logging

import (
	"github.com/rs/zerolog"
)

// RuntimeLogger adapts a zerolog.Logger to the leveled logger contract the
// runtime hands to modules: a message plus an optional error payload.
type RuntimeLogger struct {
	logger zerolog.Logger
}

// NewRuntimeLogger wraps logger.
func NewRuntimeLogger(logger zerolog.Logger) *RuntimeLogger {
	return &RuntimeLogger{logger: logger}
}

// NopLogger discards everything.
func NopLogger() *RuntimeLogger {
	return &RuntimeLogger{logger: zerolog.Nop()}
}

func (l *RuntimeLogger) Debug(msg string) {
	l.logger.Debug().Msg(msg)
}

func (l *RuntimeLogger) Error(msg string, err error) {
	l.logger.Error().Err(err).Msg(msg)
}

// With returns a copy carrying an extra string field on every entry.
func (l *RuntimeLogger) With(key, value string) *RuntimeLogger {
	return &RuntimeLogger{logger: l.logger.With().Str(key, value).Logger()}
}
