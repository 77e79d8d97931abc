package logger

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Output formats accepted by SetFormat.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

var format atomic.Value

// SetFormat forces the output format of loggers created afterwards. An empty
// value falls back to APP_ENV detection.
func SetFormat(f string) {
	format.Store(strings.ToLower(f))
}

func console() bool {
	if f, _ := format.Load().(string); f != "" {
		return f == FormatConsole
	}
	return strings.ToLower(os.Getenv("APP_ENV")) == "dev"
}

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a ZerologLogger writing to stdout. All logs include
// the provided component field.
func NewZerologLogger(component string) Logger {
	return NewWithWriter(component, os.Stdout, console())
}

// NewWithWriter creates a ZerologLogger writing to w, as JSON lines or
// through a console writer.
func NewWithWriter(component string, w io.Writer, pretty bool) *ZerologLogger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	z := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: z}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
