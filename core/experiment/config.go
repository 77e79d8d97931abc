package experiment

import (
	"errors"
	"fmt"

	"github.com/kilianp07/solar4farm/core/calendar"
)

var (
	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid experiment config")
	// ErrNoSystems is returned when an experiment has nothing to simulate.
	ErrNoSystems = errors.New("experiment needs at least one system")
	// ErrNilProcess is returned when the weather or load process is missing.
	ErrNilProcess = errors.New("weather and load processes are required")
)

// Config selects how many years are simulated and which months they cover.
type Config struct {
	// Epochs is the number of simulated years.
	Epochs int `json:"epochs" yaml:"epochs"`
	// Months restricts every epoch to these months. Empty means all year.
	Months []int `json:"months" yaml:"months"`
	// Parallel steps the systems concurrently over each epoch.
	Parallel bool `json:"parallel" yaml:"parallel"`
	// Workers bounds the number of concurrent systems. Zero means no bound.
	Workers int `json:"workers" yaml:"workers"`
}

// SetDefaults runs one epoch when none is configured.
func (c *Config) SetDefaults() {
	if c.Epochs == 0 {
		c.Epochs = 1
	}
}

// Validate checks the epoch count and the month filter.
func (c Config) Validate() error {
	if c.Epochs < 1 {
		return fmt.Errorf("%w: epochs must be positive, got %d", ErrInvalidConfig, c.Epochs)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	for _, m := range c.Months {
		if err := calendar.ValidateMonth(m); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Clock returns the clock matching the month filter.
func (c Config) Clock() calendar.Clock {
	if len(c.Months) == 0 {
		return calendar.NewClock()
	}
	return calendar.NewClock(calendar.WithMonths(c.Months...))
}
