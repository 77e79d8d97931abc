package experiment

import (
	"cmp"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/solar4farm/core/metrics"
	"github.com/kilianp07/solar4farm/core/power"
)

// Result aggregates the epochs of one candidate.
type Result struct {
	Name  string      `json:"name"`
	Panel power.Panel `json:"panel"`
	// Satisfied and Total count ticks over all epochs.
	Satisfied int `json:"satisfied"`
	Total     int `json:"total"`
	// Efficiency is the share of satisfied ticks over all epochs, in percent.
	Efficiency float64 `json:"efficiency"`
	// Footprint is the lifetime footprint in kgCO2eq after the last epoch.
	Footprint         float64   `json:"footprint"`
	EmbodiedFootprint float64   `json:"embodied_footprint"`
	EpochEfficiencies []float64 `json:"epoch_efficiencies"`
	EpochFootprints   []float64 `json:"epoch_footprints"`
	MeanEfficiency    float64   `json:"mean_efficiency"`
	// StdDevEfficiency is the sample standard deviation of the epoch
	// efficiencies, zero with fewer than two epochs.
	StdDevEfficiency float64 `json:"stddev_efficiency"`
}

// Epochs returns the number of recorded epochs.
func (r Result) Epochs() int { return len(r.EpochEfficiencies) }

// EfficiencyPerKg returns efficiency points per kgCO2eq of lifetime
// footprint, or 0 for a zero footprint.
func (r Result) EfficiencyPerKg() float64 {
	if r.Footprint == 0 {
		return 0
	}
	return r.Efficiency / r.Footprint
}

// Summary converts the result to a metrics run summary.
func (r Result) Summary(runID string, at time.Time) metrics.RunSummary {
	return metrics.RunSummary{
		RunID:            runID,
		System:           r.Name,
		Epochs:           r.Epochs(),
		MeanEfficiency:   r.MeanEfficiency,
		StdDevEfficiency: r.StdDevEfficiency,
		Footprint:        r.Footprint,
		EfficiencyPerKg:  r.EfficiencyPerKg(),
		Time:             at,
	}
}

func (r *Result) addEpoch(ev metrics.EpochEvent) {
	r.Satisfied += ev.Satisfied
	r.Total += ev.Total
	r.Footprint = ev.LifetimeFootprint
	r.EpochEfficiencies = append(r.EpochEfficiencies, ev.Efficiency)
	r.EpochFootprints = append(r.EpochFootprints, ev.EpochFootprint)
}

func (r *Result) summarize() {
	r.Efficiency = percent(r.Satisfied, r.Total)
	switch len(r.EpochEfficiencies) {
	case 0:
		r.MeanEfficiency, r.StdDevEfficiency = 0, 0
	case 1:
		r.MeanEfficiency, r.StdDevEfficiency = r.EpochEfficiencies[0], 0
	default:
		r.MeanEfficiency, r.StdDevEfficiency = stat.MeanStdDev(r.EpochEfficiencies, nil)
	}
	if r.Footprint == 0 {
		r.Footprint = r.EmbodiedFootprint
	}
}

// Rank returns the results ordered by decreasing efficiency per kgCO2eq.
// Ties keep the input order. The input slice is not modified.
func Rank(results []Result) []Result {
	out := slices.Clone(results)
	slices.SortStableFunc(out, func(a, b Result) int {
		return cmp.Compare(b.EfficiencyPerKg(), a.EfficiencyPerKg())
	})
	return out
}
