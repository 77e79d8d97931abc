// Package load simulates the current drawn by a farm robot.
//
// The robot idles at a passive current and occasionally runs a task at an
// active current. Activations follow a renewal process: during the daily
// activity window the activation probability grows by a seasonal increment
// every hour, and it drops back to its initial value after each activation.
package load

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kilianp07/solar4farm/core/calendar"
)

// Generator draws one load current per simulated hour. It is not safe for
// concurrent use.
type Generator struct {
	cfg        Config
	start, end int
	p          float64
	uniform    distuv.Uniform
}

// NewGenerator validates cfg and returns a generator starting at the initial
// probability.
func NewGenerator(cfg Config, src rand.Source) (*Generator, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start, end := cfg.Window()
	cfg.SetWindow(start, end)
	return &Generator{
		cfg:     cfg,
		start:   start,
		end:     end,
		p:       cfg.InitialProbability,
		uniform: distuv.Uniform{Min: 0, Max: 1, Src: src},
	}, nil
}

// Probability returns the current activation probability.
func (g *Generator) Probability() float64 { return g.p }

// Config returns the generator configuration.
func (g *Generator) Config() Config { return g.cfg }

// Active reports whether current is the active draw.
func (g *Generator) Active(current float64) bool { return current == g.cfg.ActiveCurrent }

// Step draws the load current for the given hour and month.
func (g *Generator) Step(hour, month int) (float64, error) {
	if err := calendar.ValidateHour(hour); err != nil {
		return 0, fmt.Errorf("load step: %w", err)
	}
	season, err := calendar.SeasonOf(month)
	if err != nil {
		return 0, fmt.Errorf("load step: %w", err)
	}
	if g.uniform.Rand() <= g.p {
		g.p = g.cfg.InitialProbability
		return g.cfg.ActiveCurrent, nil
	}
	if hour >= g.start && hour <= g.end {
		g.p = math.Min(g.p+g.cfg.Increments.For(season), 1)
	}
	return g.cfg.PassiveCurrent, nil
}
