package load

import (
	"errors"
	"fmt"

	"github.com/kilianp07/solar4farm/core/calendar"
)

var (
	// ErrInvalidProbability is returned when the initial activation
	// probability is outside [0,1].
	ErrInvalidProbability = errors.New("initial probability must be within [0,1]")
	// ErrInvalidConfig groups the other configuration errors.
	ErrInvalidConfig = errors.New("invalid load configuration")
	// ErrNilSource is returned when no random source is provided.
	ErrNilSource = errors.New("random source is required")
)

// Increments holds the per-season growth of the activation probability.
type Increments struct {
	Winter float64 `json:"winter" yaml:"winter"`
	Spring float64 `json:"spring" yaml:"spring"`
	Summer float64 `json:"summer" yaml:"summer"`
	Fall   float64 `json:"fall" yaml:"fall"`
}

// For returns the increment of a season.
func (i Increments) For(s calendar.Season) float64 {
	switch s {
	case calendar.Winter:
		return i.Winter
	case calendar.Spring:
		return i.Spring
	case calendar.Summer:
		return i.Summer
	default:
		return i.Fall
	}
}

// Config describes the robot load.
type Config struct {
	// InitialProbability is the activation probability right after an activation.
	InitialProbability float64    `json:"initial_probability" yaml:"initial_probability"`
	Increments         Increments `json:"increments" yaml:"increments"`
	// ActiveCurrent and PassiveCurrent are the draws in amperes.
	ActiveCurrent  float64 `json:"active_current" yaml:"active_current"`
	PassiveCurrent float64 `json:"passive_current" yaml:"passive_current"`
	// WindowStart and WindowEnd bound, inclusively, the hours in which the
	// activation probability grows. Nil bounds take the defaults, so 0..0
	// (midnight only) stays expressible.
	WindowStart *int `json:"window_start" yaml:"window_start"`
	WindowEnd   *int `json:"window_end" yaml:"window_end"`
}

// DefaultConfig returns the farm robot profile.
func DefaultConfig() Config {
	return Config{
		InitialProbability: 0.005,
		Increments:         Increments{Winter: 0.01, Spring: 0.03, Summer: 0.05, Fall: 0.02},
		ActiveCurrent:      13.25,
		PassiveCurrent:     2.5,
		WindowStart:        hour(DefaultWindowStart),
		WindowEnd:          hour(DefaultWindowEnd),
	}
}

// Default activity window, inclusive.
const (
	DefaultWindowStart = 6
	DefaultWindowEnd   = 20
)

func hour(h int) *int { return &h }

// SetWindow sets both activity window bounds.
func (c *Config) SetWindow(start, end int) {
	c.WindowStart, c.WindowEnd = hour(start), hour(end)
}

// Window returns the activity window bounds, defaults filling unset ones.
func (c Config) Window() (start, end int) {
	start, end = DefaultWindowStart, DefaultWindowEnd
	if c.WindowStart != nil {
		start = *c.WindowStart
	}
	if c.WindowEnd != nil {
		end = *c.WindowEnd
	}
	return start, end
}

// SetDefaults fills unset currents and window bounds.
func (c *Config) SetDefaults() {
	d := DefaultConfig()
	if c.ActiveCurrent == 0 {
		c.ActiveCurrent = d.ActiveCurrent
	}
	if c.PassiveCurrent == 0 {
		c.PassiveCurrent = d.PassiveCurrent
	}
	if c.WindowStart == nil {
		c.WindowStart = d.WindowStart
	}
	if c.WindowEnd == nil {
		c.WindowEnd = d.WindowEnd
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.InitialProbability < 0 || c.InitialProbability > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidProbability, c.InitialProbability)
	}
	for _, s := range calendar.Seasons {
		if inc := c.Increments.For(s); inc < 0 {
			return fmt.Errorf("%w: negative %s increment %v", ErrInvalidConfig, s, inc)
		}
	}
	if c.ActiveCurrent < 0 || c.PassiveCurrent < 0 {
		return fmt.Errorf("%w: currents must be non-negative", ErrInvalidConfig)
	}
	start, end := c.Window()
	if err := calendar.ValidateHour(start); err != nil {
		return fmt.Errorf("%w: window start: %v", ErrInvalidConfig, err)
	}
	if err := calendar.ValidateHour(end); err != nil {
		return fmt.Errorf("%w: window end: %v", ErrInvalidConfig, err)
	}
	if start > end {
		return fmt.Errorf("%w: window start %d after end %d", ErrInvalidConfig, start, end)
	}
	return nil
}
