package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	core "github.com/kilianp07/solar4farm/core/metrics"
	eco "github.com/kilianp07/solar4farm/core/metrics/eco"
)

// EcoSink stores epoch footprints and exposes their split per system.
type EcoSink struct {
	store       eco.Store
	embodied    *prometheus.GaugeVec
	operational *prometheus.GaugeVec
	perKg       *prometheus.GaugeVec
}

// NewEcoSink creates a sink with Prometheus gauges registered on reg.
func NewEcoSink(store eco.Store, reg prometheus.Registerer) (*EcoSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if store == nil {
		store = eco.NewMemoryStore()
	}
	embodied := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "solar_embodied_footprint_kg",
		Help: "Production and transport footprint per system",
	}, []string{"system"})
	operational := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "solar_operational_footprint_kg",
		Help: "Discharge footprint per system and epoch",
	}, []string{"system", "epoch"})
	perKg := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "solar_epoch_efficiency_per_kg",
		Help: "Epoch efficiency divided by the epoch footprint",
	}, []string{"system", "epoch"})
	var err error
	if embodied, err = register(reg, embodied); err != nil {
		return nil, err
	}
	if operational, err = register(reg, operational); err != nil {
		return nil, err
	}
	if perKg, err = register(reg, perKg); err != nil {
		return nil, err
	}
	return &EcoSink{store: store, embodied: embodied, operational: operational, perKg: perKg}, nil
}

// Store returns the underlying record store.
func (s *EcoSink) Store() eco.Store { return s.store }

// RecordEpoch stores the epoch record and updates the gauges.
func (s *EcoSink) RecordEpoch(ev core.EpochEvent) error {
	rec := eco.Record{
		System:        ev.System,
		Epoch:         ev.Epoch,
		EmbodiedKg:    ev.EmbodiedFootprint,
		OperationalKg: ev.OperationalFootprint(),
		Efficiency:    ev.Efficiency,
	}
	if err := s.store.Add(rec); err != nil {
		return err
	}
	epoch := strconv.Itoa(ev.Epoch)
	s.embodied.WithLabelValues(ev.System).Set(rec.EmbodiedKg)
	s.operational.WithLabelValues(ev.System, epoch).Set(rec.OperationalKg)
	s.perKg.WithLabelValues(ev.System, epoch).Set(rec.EfficiencyPerKg())
	return nil
}

// Close releases the store when it holds resources.
func (s *EcoSink) Close() error {
	if c, ok := s.store.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
