// Package ecokpi fills eco KPI stores from results computed earlier.
package ecokpi

import (
	"fmt"

	"github.com/kilianp07/solar4farm/core/experiment"
	eco "github.com/kilianp07/solar4farm/core/metrics/eco"
)

// Backfill stores one record per epoch of every result. Results whose epoch
// series have different lengths are rejected before anything is written.
func Backfill(store eco.Store, results []experiment.Result) (int, error) {
	for _, r := range results {
		if len(r.EpochEfficiencies) != len(r.EpochFootprints) {
			return 0, fmt.Errorf("%s: %d efficiencies for %d footprints", r.Name, len(r.EpochEfficiencies), len(r.EpochFootprints))
		}
	}
	n := 0
	for _, r := range results {
		for e, fp := range r.EpochFootprints {
			rec := eco.Record{
				System:        r.Name,
				Epoch:         e,
				EmbodiedKg:    r.EmbodiedFootprint,
				OperationalKg: fp - r.EmbodiedFootprint,
				Efficiency:    r.EpochEfficiencies[e],
			}
			if err := store.Add(rec); err != nil {
				return n, fmt.Errorf("%s epoch %d: %w", r.Name, e, err)
			}
			n++
		}
	}
	return n, nil
}

// Summary is the per-system view of a store.
type Summary struct {
	System         string
	Epochs         int
	MeanEfficiency float64
	// MeanOperationalKg is the average discharge footprint per epoch.
	MeanOperationalKg float64
	EmbodiedKg        float64
}

// Summarize aggregates the records of every system for epochs in [from, to].
func Summarize(store eco.Store, from, to int) ([]Summary, error) {
	systems, err := store.Systems()
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(systems))
	for _, name := range systems {
		recs, err := store.Query(name, from, to)
		if err != nil {
			return nil, err
		}
		if len(recs) == 0 {
			continue
		}
		s := Summary{System: name, Epochs: len(recs)}
		for _, r := range recs {
			s.MeanEfficiency += r.Efficiency
			s.MeanOperationalKg += r.OperationalKg
			s.EmbodiedKg = r.EmbodiedKg
		}
		s.MeanEfficiency /= float64(len(recs))
		s.MeanOperationalKg /= float64(len(recs))
		out = append(out, s)
	}
	return out, nil
}
