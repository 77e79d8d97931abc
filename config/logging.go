package config

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kilianp07/solar4farm/infra/logger"
)

// LoggingConfig selects the global log level and output format.
type LoggingConfig struct {
	// Level is a zerolog level name such as "debug" or "warn".
	Level string `json:"level"`
	// Format is "json" or "console".
	Format string `json:"format"`
}

func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = logger.FormatJSON
	}
}

func (c LoggingConfig) Validate() error {
	if _, err := zerolog.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("level: %w", err)
	}
	if c.Format != logger.FormatJSON && c.Format != logger.FormatConsole {
		return fmt.Errorf("unknown format %q", c.Format)
	}
	return nil
}

// Apply configures the process-wide logger.
func (c LoggingConfig) Apply() error {
	logger.SetFormat(c.Format)
	return logger.SetLevel(c.Level)
}
