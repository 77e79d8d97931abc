package weather

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kilianp07/solar4farm/core/calendar"
)

// Option configures a Process.
type Option func(*options)

type options struct {
	tBins int
	rBins int
}

// WithBins sets the number of temperature and irradiance bins.
func WithBins(temperature, irradiance int) Option {
	return func(o *options) {
		o.tBins = temperature
		o.rBins = irradiance
	}
}

// Process is the weather Markov chain. It is not safe for concurrent use.
type Process struct {
	grid     Grid
	matrices [calendar.SeasonCount]*TransitionMatrix
	current  Sample
	cell     int
	uniform  distuv.Uniform
}

// NewProcess learns the seasonal transition matrices from obs, which must be
// consecutive hourly observations. Each transition is attributed to the season
// of its origin row. The initial state is clamped to the observed range.
func NewProcess(obs []Observation, initial Sample, src rand.Source, opts ...Option) (*Process, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	o := options{tBins: DefaultTemperatureBins, rBins: DefaultIrradianceBins}
	for _, fn := range opts {
		fn(&o)
	}
	if len(obs) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrDatasetTooSmall, len(obs))
	}
	for i, ob := range obs {
		if err := ob.Validate(); err != nil {
			return nil, fmt.Errorf("observation %d: %w", i, err)
		}
	}
	grid, err := NewGrid(obs, o.tBins, o.rBins)
	if err != nil {
		return nil, err
	}

	p := &Process{
		grid:    grid,
		current: grid.Clamp(initial),
		uniform: distuv.Uniform{Min: 0, Max: 1, Src: src},
	}
	p.cell = grid.Cell(p.current)
	for i := range p.matrices {
		p.matrices[i] = newCountMatrix(grid.Size())
	}
	for i := 0; i < len(obs)-1; i++ {
		season, err := calendar.SeasonOf(obs[i].Month)
		if err != nil {
			return nil, fmt.Errorf("observation %d: %w", i, err)
		}
		from := grid.Cell(obs[i].Sample())
		to := grid.Cell(obs[i+1].Sample())
		p.matrices[season].count(from, to)
	}
	for _, m := range p.matrices {
		m.normalize()
	}
	return p, nil
}

// Grid returns the discretization learned from the dataset.
func (p *Process) Grid() Grid { return p.grid }

// Matrix returns the transition matrix of a season.
func (p *Process) Matrix(s calendar.Season) *TransitionMatrix {
	if s < 0 || int(s) >= len(p.matrices) {
		return nil
	}
	return p.matrices[s]
}

// Current returns the state the next Step call will emit.
func (p *Process) Current() Sample { return p.current }

// CurrentCell returns the grid cell of Current. It is the row the next Step
// samples from.
func (p *Process) CurrentCell() int { return p.cell }

// Step returns the current state and then moves the chain one hour forward
// using the matrix of month's season. The returned value lags the internal
// state by one call.
func (p *Process) Step(month int) (Sample, error) {
	season, err := calendar.SeasonOf(month)
	if err != nil {
		return Sample{}, fmt.Errorf("weather step: %w", err)
	}
	emitted := p.current
	p.cell = p.matrices[season].Next(p.cell, p.uniform.Rand())
	p.current = p.grid.Sample(p.cell)
	return emitted, nil
}
