package config

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/kilianp07/solar4farm/core/experiment"
	"github.com/kilianp07/solar4farm/core/power"
	"github.com/kilianp07/solar4farm/core/weather"
	"github.com/kilianp07/solar4farm/infra/dataset"
)

// ErrInvalidSection is wrapped by section validators.
var ErrInvalidSection = errors.New("invalid configuration")

// SimulationConfig drives the experiment runner.
type SimulationConfig struct {
	Epochs   int   `json:"epochs"`
	Months   []int `json:"months"`
	Parallel bool  `json:"parallel"`
	Workers  int   `json:"workers"`
	// Seed and Stream seed the PCG sources. The weather uses (Seed, Stream)
	// and the load (Seed, Stream+1), so a run is reproducible from the pair.
	Seed   uint64 `json:"seed"`
	Stream uint64 `json:"stream"`
	// InitialTemperature and InitialIrradiance set the first weather state.
	InitialTemperature float64 `json:"initial_temperature"`
	InitialIrradiance  float64 `json:"initial_irradiance"`
	// Panels lists the candidate installations when no panel file is given.
	Panels []power.Panel `json:"panels"`
}

// DefaultSimulation runs a single year starting from a mild sunny hour.
func DefaultSimulation() SimulationConfig {
	return SimulationConfig{
		Epochs:             1,
		Seed:               42,
		Stream:             1024,
		InitialTemperature: 20,
		InitialIrradiance:  500,
	}
}

func (c *SimulationConfig) SetDefaults() {
	if c.Epochs == 0 {
		c.Epochs = 1
	}
}

func (c SimulationConfig) Validate() error {
	if err := c.Experiment().Validate(); err != nil {
		return err
	}
	for _, v := range []float64{c.InitialTemperature, c.InitialIrradiance} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: initial weather state must be finite", ErrInvalidSection)
		}
	}
	for i, p := range c.Panels {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("panel %d: %w", i, err)
		}
	}
	return nil
}

// Experiment returns the experiment runner configuration.
func (c SimulationConfig) Experiment() experiment.Config {
	return experiment.Config{
		Epochs:   c.Epochs,
		Months:   c.Months,
		Parallel: c.Parallel,
		Workers:  c.Workers,
	}
}

// InitialWeather returns the configured first weather state.
func (c SimulationConfig) InitialWeather() weather.Sample {
	return weather.Sample{Temperature: c.InitialTemperature, Irradiance: c.InitialIrradiance}
}

// WeatherSource returns the random source of the weather process.
func (c SimulationConfig) WeatherSource() rand.Source {
	return rand.NewPCG(c.Seed, c.Stream)
}

// LoadSource returns the random source of the load generator.
func (c SimulationConfig) LoadSource() rand.Source {
	return rand.NewPCG(c.Seed, c.Stream+1)
}

// WeatherConfig sets the discretization grid and the dataset layout.
type WeatherConfig struct {
	TemperatureBins int                    `json:"temperature_bins"`
	IrradianceBins  int                    `json:"irradiance_bins"`
	Columns         dataset.WeatherColumns `json:"columns"`
}

func DefaultWeather() WeatherConfig {
	return WeatherConfig{
		TemperatureBins: weather.DefaultTemperatureBins,
		IrradianceBins:  weather.DefaultIrradianceBins,
		Columns:         dataset.DefaultWeatherColumns(),
	}
}

func (c *WeatherConfig) SetDefaults() {
	if c.TemperatureBins == 0 {
		c.TemperatureBins = weather.DefaultTemperatureBins
	}
	if c.IrradianceBins == 0 {
		c.IrradianceBins = weather.DefaultIrradianceBins
	}
	c.Columns.SetDefaults()
}

func (c WeatherConfig) Validate() error {
	if c.TemperatureBins < 1 || c.IrradianceBins < 1 {
		return fmt.Errorf("%w: bins must be positive, got %dx%d", ErrInvalidSection, c.TemperatureBins, c.IrradianceBins)
	}
	return nil
}

// Options returns the weather process options.
func (c WeatherConfig) Options() []weather.Option {
	return []weather.Option{weather.WithBins(c.TemperatureBins, c.IrradianceBins)}
}

// PrometheusConfig enables the /metrics endpoint when Addr is set.
type PrometheusConfig struct {
	Addr string `json:"addr"`
}
