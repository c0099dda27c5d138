package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	zl zerolog.Logger
}

func New(service string) *Logger { return NewWithWriter(service, os.Stdout) }

func NewWithWriter(service string, w io.Writer) *Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zl := zerolog.New(w).With().
		Timestamp().
		Str("service", service).
		Str("hostname", hostname()).
		Logger()
	return &Logger{zl: zl}
}

// SetLevel accepts zerolog level names ("debug", "info", ...). Unknown
// names leave the level unchanged.
func (l *Logger) SetLevel(level string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil && level != "" {
		l.zl = l.zl.Level(lvl)
	}
}

// WithRequestID returns a child logger that stamps every entry with id.
func (l *Logger) WithRequestID(id string) *Logger {
	return &Logger{zl: l.zl.With().Str("request_id", id).Logger()}
}

func (l *Logger) Info(action string, fields map[string]any) {
	l.zl.Info().Str("action", action).Fields(fields).Msg(action)
}

func (l *Logger) Debug(action string, fields map[string]any) {
	l.zl.Debug().Str("action", action).Fields(fields).Msg(action)
}

func (l *Logger) Error(action string, err error, fields map[string]any) {
	l.zl.Error().Str("action", action).Err(err).Fields(fields).Msg(action)
}

func hostname() string { h, _ := os.Hostname(); return h }
