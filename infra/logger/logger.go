package logger

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	corelogger "github.com/kilianp07/solar4farm/core/logger"
)

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger = corelogger.NopLogger

// New returns a Logger for the given component. The output format is
// detected via the APP_ENV variable unless SetFormat was called.
func New(component string) Logger {
	return NewZerologLogger(component)
}

// SetLevel sets the global minimum level from its name ("debug", "info",
// "warn", "error"). An empty name keeps the current level.
func SetLevel(name string) error {
	if name == "" {
		return nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return fmt.Errorf("logging level %q: %w", name, err)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}
