package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/solar4farm/core/metrics"
)

// PromSink exposes epoch results as Prometheus metrics labelled by system.
type PromSink struct {
	efficiency  *prometheus.GaugeVec
	footprint   *prometheus.GaugeVec
	lifetime    *prometheus.GaugeVec
	unsatisfied *prometheus.CounterVec
	epochs      *prometheus.CounterVec
	perKg       *prometheus.GaugeVec
}

// NewPromSink registers the metrics on the default Prometheus registerer.
// The HTTP endpoint is started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	labels := []string{"system"}
	s := &PromSink{
		efficiency: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "solar_epoch_efficiency_percent",
			Help: "Share of satisfied hours over the last epoch",
		}, labels),
		footprint: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "solar_epoch_footprint_kg",
			Help: "Embodied plus operational footprint of the last epoch in kgCO2eq",
		}, labels),
		lifetime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "solar_lifetime_footprint_kg",
			Help: "Footprint accumulated since the system was built in kgCO2eq",
		}, labels),
		unsatisfied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "solar_unsatisfied_hours_total",
			Help: "Hours where neither battery could serve the load",
		}, labels),
		epochs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "solar_epochs_total",
			Help: "Simulated epochs",
		}, labels),
		perKg: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "solar_run_efficiency_per_kg",
			Help: "Mean efficiency divided by the lifetime footprint",
		}, labels),
	}
	var err error
	if s.efficiency, err = register(reg, s.efficiency); err != nil {
		return nil, err
	}
	if s.footprint, err = register(reg, s.footprint); err != nil {
		return nil, err
	}
	if s.lifetime, err = register(reg, s.lifetime); err != nil {
		return nil, err
	}
	if s.unsatisfied, err = register(reg, s.unsatisfied); err != nil {
		return nil, err
	}
	if s.epochs, err = register(reg, s.epochs); err != nil {
		return nil, err
	}
	if s.perKg, err = register(reg, s.perKg); err != nil {
		return nil, err
	}
	return s, nil
}

// register returns the already registered collector when c was registered
// before, so several sinks can share one registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordEpoch updates the per-system gauges and counters.
func (s *PromSink) RecordEpoch(ev coremetrics.EpochEvent) error {
	s.efficiency.WithLabelValues(ev.System).Set(ev.Efficiency)
	s.footprint.WithLabelValues(ev.System).Set(ev.EpochFootprint)
	s.lifetime.WithLabelValues(ev.System).Set(ev.LifetimeFootprint)
	s.unsatisfied.WithLabelValues(ev.System).Add(float64(ev.Unsatisfied()))
	s.epochs.WithLabelValues(ev.System).Inc()
	return nil
}

// RecordRun sets the efficiency per kg gauge.
func (s *PromSink) RecordRun(sum coremetrics.RunSummary) error {
	s.perKg.WithLabelValues(sum.System).Set(sum.EfficiencyPerKg)
	return nil
}
