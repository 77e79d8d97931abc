package metrics

import "time"

// EpochEvent summarizes one system over one simulated epoch.
type EpochEvent struct {
	RunID     string    `json:"run_id"`
	System    string    `json:"system"`
	Epoch     int       `json:"epoch"`
	Satisfied int       `json:"satisfied"`
	Total     int       `json:"total"`
	Time      time.Time `json:"time"`
	// Efficiency is the share of satisfied ticks, in percent.
	Efficiency float64 `json:"efficiency"`
	// EmbodiedFootprint, EpochFootprint and LifetimeFootprint are in kgCO2eq.
	EmbodiedFootprint float64 `json:"embodied_footprint"`
	EpochFootprint    float64 `json:"epoch_footprint"`
	LifetimeFootprint float64 `json:"lifetime_footprint"`
	DischargedAh      float64 `json:"discharged_ah"`
}

// Unsatisfied returns the number of ticks the load was not served.
func (e EpochEvent) Unsatisfied() int { return e.Total - e.Satisfied }

// OperationalFootprint returns the epoch footprint caused by discharges.
func (e EpochEvent) OperationalFootprint() float64 {
	return e.EpochFootprint - e.EmbodiedFootprint
}

// MetricsSink records epoch results.
type MetricsSink interface {
	RecordEpoch(ev EpochEvent) error
}

// RunSummary aggregates all epochs of one system.
type RunSummary struct {
	RunID            string    `json:"run_id"`
	System           string    `json:"system"`
	Epochs           int       `json:"epochs"`
	MeanEfficiency   float64   `json:"mean_efficiency"`
	StdDevEfficiency float64   `json:"stddev_efficiency"`
	Footprint        float64   `json:"footprint"`
	EfficiencyPerKg  float64   `json:"efficiency_per_kg"`
	Time             time.Time `json:"time"`
}

// RunRecorder is implemented by sinks able to record run summaries.
type RunRecorder interface {
	RecordRun(s RunSummary) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordEpoch(EpochEvent) error { return nil }
func (NopSink) RecordRun(RunSummary) error   { return nil }
