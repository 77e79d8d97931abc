// Package scenarios loads YAML experiment scenarios and checks their
// expected outcomes. Scenarios pin weather and load to simple profiles so that
// battery behavior can be asserted exactly.
package scenarios

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/solar4farm/core/load"
	"github.com/kilianp07/solar4farm/core/power"
)

// WeatherDef is either a constant sample or a daily irradiance profile of 24
// hourly values repeated every day.
type WeatherDef struct {
	Temperature float64   `yaml:"temperature"`
	Irradiance  float64   `yaml:"irradiance"`
	Daily       []float64 `yaml:"daily,omitempty"`
}

// LoadDef is either a constant current or a seeded load generator.
type LoadDef struct {
	Constant *float64    `yaml:"constant,omitempty"`
	Seed     uint64      `yaml:"seed"`
	Config   load.Config `yaml:"config"`
}

// Expectation bounds the result of one panel, selected by index.
type Expectation struct {
	Panel         int      `yaml:"panel"`
	Satisfied     *int     `yaml:"satisfied,omitempty"`
	MinEfficiency *float64 `yaml:"min_efficiency,omitempty"`
	MaxEfficiency *float64 `yaml:"max_efficiency,omitempty"`
}

type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Epochs      int           `yaml:"epochs"`
	Months      []int         `yaml:"months,omitempty"`
	Parallel    bool          `yaml:"parallel,omitempty"`
	Weather     WeatherDef    `yaml:"weather"`
	Load        LoadDef       `yaml:"load"`
	Panels      []power.Panel `yaml:"panels"`
	Expected    []Expectation `yaml:"expected"`
}

// Validate checks the profile length and the expectation indexes.
func (sc Scenario) Validate() error {
	if len(sc.Panels) == 0 {
		return fmt.Errorf("scenario %s: no panels", sc.Name)
	}
	if n := len(sc.Weather.Daily); n != 0 && n != 24 {
		return fmt.Errorf("scenario %s: daily profile needs 24 values, got %d", sc.Name, n)
	}
	for _, e := range sc.Expected {
		if e.Panel < 0 || e.Panel >= len(sc.Panels) {
			return fmt.Errorf("scenario %s: expectation for unknown panel %d", sc.Name, e.Panel)
		}
	}
	return nil
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// LoadDir loads every *.yaml file of dir in name order.
func LoadDir(dir string) ([]*Scenario, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	out := make([]*Scenario, 0, len(files))
	for _, f := range files {
		sc, err := Load(f)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}
