package scenarios

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/kilianp07/solar4farm/core/calendar"
	"github.com/kilianp07/solar4farm/core/experiment"
	"github.com/kilianp07/solar4farm/core/load"
	"github.com/kilianp07/solar4farm/core/power"
	"github.com/kilianp07/solar4farm/core/weather"
)

// profileWeather replays a daily irradiance profile. It relies on being
// stepped once per tick starting at hour 0.
type profileWeather struct {
	def WeatherDef
	n   int
}

func (p *profileWeather) Step(month int) (weather.Sample, error) {
	if err := calendar.ValidateMonth(month); err != nil {
		return weather.Sample{}, err
	}
	s := weather.Sample{Temperature: p.def.Temperature, Irradiance: p.def.Irradiance}
	if len(p.def.Daily) == calendar.HoursPerDay {
		s.Irradiance = p.def.Daily[p.n%calendar.HoursPerDay]
	}
	p.n++
	return s, nil
}

type constantLoad float64

func (c constantLoad) Step(hour, month int) (float64, error) {
	if err := calendar.ValidateHour(hour); err != nil {
		return 0, err
	}
	if err := calendar.ValidateMonth(month); err != nil {
		return 0, err
	}
	return float64(c), nil
}

func (sc Scenario) loadProcess() (experiment.Load, float64, error) {
	cfg := sc.Load.Config
	if cfg == (load.Config{}) {
		cfg = load.DefaultConfig()
	}
	cfg.SetDefaults()
	if sc.Load.Constant != nil {
		return constantLoad(*sc.Load.Constant), cfg.ActiveCurrent, nil
	}
	g, err := load.NewGenerator(cfg, rand.NewPCG(sc.Load.Seed, sc.Load.Seed+1))
	if err != nil {
		return nil, 0, err
	}
	return g, cfg.ActiveCurrent, nil
}

// Run executes the scenario with the default footprint tables.
func Run(ctx context.Context, sc *Scenario) ([]experiment.Result, error) {
	l, active, err := sc.loadProcess()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	cands, err := experiment.NewCandidates(sc.Panels, power.DefaultTables(), active)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	cfg := experiment.Config{Epochs: sc.Epochs, Months: sc.Months, Parallel: sc.Parallel}
	exp, err := experiment.New(cfg, &profileWeather{def: sc.Weather}, l, cands, experiment.WithRunID(sc.Name))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	return exp.Run(ctx)
}

// Check compares results with the expectations and returns one message per
// violation.
func (sc Scenario) Check(results []experiment.Result) []string {
	var failures []string
	for _, e := range sc.Expected {
		if e.Panel >= len(results) {
			failures = append(failures, fmt.Sprintf("no result for panel %d", e.Panel))
			continue
		}
		r := results[e.Panel]
		if e.Satisfied != nil && r.Satisfied != *e.Satisfied {
			failures = append(failures, fmt.Sprintf("%s: satisfied %d, want %d", r.Name, r.Satisfied, *e.Satisfied))
		}
		if e.MinEfficiency != nil && r.Efficiency < *e.MinEfficiency {
			failures = append(failures, fmt.Sprintf("%s: efficiency %.3f below %.3f", r.Name, r.Efficiency, *e.MinEfficiency))
		}
		if e.MaxEfficiency != nil && r.Efficiency > *e.MaxEfficiency {
			failures = append(failures, fmt.Sprintf("%s: efficiency %.3f above %.3f", r.Name, r.Efficiency, *e.MaxEfficiency))
		}
	}
	return failures
}
