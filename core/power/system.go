// Package power simulates a solar panel feeding two batteries that take turns
// serving a load, and tracks the installation's carbon footprint.
//
// The serving battery discharges while it holds at least the load and the
// low threshold; meanwhile strong sun recharges the standby battery. When
// the main battery runs low the backup takes over, and service only returns
// to the main battery once it has been recharged above the high threshold.
package power

import (
	"fmt"
	"math"

	"github.com/kilianp07/solar4farm/core/weather"
)

// System is one panel and battery pair. Systems share no state and a System
// is not safe for concurrent use.
type System struct {
	panel  Panel
	tables Tables

	maxCap float64
	low    float64
	high   float64

	batteries [2]float64
	state     State
	footprint Footprint
	embodied  float64
}

// Snapshot is a read-only view of a System's battery state.
type Snapshot struct {
	State  State   `json:"state"`
	Main   float64 `json:"main"`
	Backup float64 `json:"backup"`
}

// NewSystem builds a System with both batteries full and the main battery
// serving. activeLoad is the largest current the load can draw.
func NewSystem(panel Panel, tables Tables, activeLoad float64) (*System, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	if err := panel.Validate(); err != nil {
		return nil, err
	}
	embodied, err := tables.Embodied(panel)
	if err != nil {
		return nil, err
	}
	maxCap := tables.CapacityCoefficient * panel.RatedPower / tables.OperatingVoltage
	s := &System{
		panel:    panel,
		tables:   tables,
		maxCap:   maxCap,
		low:      tables.DischargeFraction * maxCap,
		high:     tables.ChargeFraction * maxCap,
		embodied: embodied,
	}
	if s.high <= activeLoad {
		return nil, fmt.Errorf("%w: high threshold %.2f, active load %.2f", ErrUnreachableRecovery, s.high, activeLoad)
	}
	s.Reset()
	return s, nil
}

// Step serves one hour of load with the given weather. It reports whether
// the load was satisfied. At most one battery switch happens per call.
func (s *System) Step(load float64, w weather.Sample) (bool, error) {
	if load < 0 || math.IsNaN(load) {
		return false, fmt.Errorf("%w: %v", ErrInvalidLoad, load)
	}
	solar := s.SolarCurrent(w)
	switched := false
	for {
		if s.discharge(load, solar) {
			return true, nil
		}
		tr := transitions[s.state]
		if !tr.guard(s) {
			return false, nil
		}
		if switched {
			return false, fmt.Errorf("%w: %s -> %s (main %.2f, backup %.2f)",
				ErrDoubleTransition, s.state, tr.to, s.batteries[MainBattery], s.batteries[BackupBattery])
		}
		s.state = tr.to
		switched = true
	}
}

// discharge tries to draw load from the serving battery. On success strong
// sun recharges the standby battery by half the capacity.
func (s *System) discharge(load, solar float64) bool {
	serving := s.state.Serving()
	level := s.batteries[serving]
	if level < load || level < s.low {
		return false
	}
	s.batteries[serving] = level - load
	s.footprint.Add(load)
	half := s.maxCap / 2
	if solar >= half {
		standby := s.state.Standby()
		s.batteries[standby] = math.Min(s.batteries[standby]+half, s.maxCap)
	}
	return true
}

// SolarCurrent converts irradiance to the panel's output current.
func (s *System) SolarCurrent(w weather.Sample) float64 {
	return w.Irradiance * s.panel.Area * s.panel.Efficiency / s.tables.OperatingVoltage
}

// Reset refills both batteries and gives service back to the main battery.
// The lifetime footprint is kept; the epoch footprint restarts at zero.
func (s *System) Reset() {
	s.batteries[MainBattery] = s.maxCap
	s.batteries[BackupBattery] = s.maxCap
	s.state = ActiveMain
	s.footprint.ResetEpoch()
}

// CarbonFootprint returns the lifetime footprint in kgCO2eq: embodied plus
// every Ah discharged since construction.
func (s *System) CarbonFootprint() float64 {
	return s.embodied + s.footprint.Lifetime()*s.tables.AhFootprint()
}

// EpochCarbonFootprint returns the embodied footprint plus the Ah discharged
// since the last Reset.
func (s *System) EpochCarbonFootprint() float64 {
	return s.embodied + s.footprint.Epoch()*s.tables.AhFootprint()
}

// Panel returns the panel the system was built from.
func (s *System) Panel() Panel { return s.panel }

// State returns which battery is serving.
func (s *System) State() State { return s.state }

// Main returns the main battery charge in Ah.
func (s *System) Main() float64 { return s.batteries[MainBattery] }

// Backup returns the backup battery charge in Ah.
func (s *System) Backup() float64 { return s.batteries[BackupBattery] }

// MaxCapacity is the capacity of each battery in Ah.
func (s *System) MaxCapacity() float64 { return s.maxCap }

// LowThreshold is the charge below which the serving battery stops serving.
func (s *System) LowThreshold() float64 { return s.low }

// HighThreshold is the main battery charge needed to take service back.
func (s *System) HighThreshold() float64 { return s.high }

// EmbodiedFootprint returns the production and transport footprint in kgCO2eq.
func (s *System) EmbodiedFootprint() float64 { return s.embodied }

// DischargedAh returns the Ah discharged since construction.
func (s *System) DischargedAh() float64 { return s.footprint.Lifetime() }

// EpochDischargedAh returns the Ah discharged since the last Reset.
func (s *System) EpochDischargedAh() float64 { return s.footprint.Epoch() }

// Snapshot returns the current battery state.
func (s *System) Snapshot() Snapshot {
	return Snapshot{State: s.state, Main: s.Main(), Backup: s.Backup()}
}
