package power

import (
	"errors"
	"fmt"
)

const (
	// TablesVersion is the only table layout this package understands.
	TablesVersion = 1
	// UnitPerKWc marks production footprints expressed per whole kWc.
	UnitPerKWc = "kgCO2eq/kWc"
)

// ErrInvalidTables is returned by Tables.Validate.
var ErrInvalidTables = errors.New("invalid footprint tables")

// Tables is the canonical set of constants used by the power model. Every
// footprint and distance lives here so that units cannot drift between
// copies.
type Tables struct {
	Version int `json:"version"`
	// Unit of CountryFootprint and MaterialFootprint.
	Unit string `json:"unit"`
	// CountryFootprint is the panel production footprint per country of origin.
	CountryFootprint map[string]float64 `json:"country_footprint"`
	// MaterialFootprint is the panel production footprint per cell material.
	MaterialFootprint map[string]float64 `json:"material_footprint"`
	// CountryDistanceKm is the transport distance from the country of origin.
	CountryDistanceKm map[string]float64 `json:"country_distance_km"`
	// KmFootprint is the transport footprint in kgCO2eq per km (20 t truck).
	KmFootprint float64 `json:"km_footprint"`
	// EnergyFootprint is the operational footprint in kgCO2eq per kWh.
	EnergyFootprint float64 `json:"energy_footprint"`

	OperatingVoltage    float64 `json:"operating_voltage"`
	CapacityCoefficient float64 `json:"capacity_coefficient"`
	// DischargeFraction and ChargeFraction are the low and high switching
	// thresholds as fractions of the maximum battery capacity.
	DischargeFraction float64 `json:"discharge_fraction"`
	ChargeFraction    float64 `json:"charge_fraction"`
}

// DefaultTables returns the reference values for panels delivered to France.
func DefaultTables() Tables {
	return Tables{
		Version: TablesVersion,
		Unit:    UnitPerKWc,
		CountryFootprint: map[string]float64{
			"France":  355,
			"Germany": 416,
			"Mexico":  374,
			"Czech":   376,
			"Asia":    389,
		},
		MaterialFootprint: map[string]float64{
			"Monosillicium": 339,
			"Polysillicium": 480,
			"Thin":          300,
		},
		CountryDistanceKm: map[string]float64{
			"France":  100,
			"Germany": 500,
			"Mexico":  7000,
			"Czech":   1000,
			"Asia":    9000,
		},
		KmFootprint:         2.4,
		EnergyFootprint:     0.175,
		OperatingVoltage:    25,
		CapacityCoefficient: 1.8,
		DischargeFraction:   0.1,
		ChargeFraction:      0.9,
	}
}

// SetDefaults fills every zero field from DefaultTables.
func (t *Tables) SetDefaults() {
	d := DefaultTables()
	if t.Version == 0 {
		t.Version = d.Version
	}
	if t.Unit == "" {
		t.Unit = d.Unit
	}
	if len(t.CountryFootprint) == 0 {
		t.CountryFootprint = d.CountryFootprint
	}
	if len(t.MaterialFootprint) == 0 {
		t.MaterialFootprint = d.MaterialFootprint
	}
	if len(t.CountryDistanceKm) == 0 {
		t.CountryDistanceKm = d.CountryDistanceKm
	}
	if t.KmFootprint == 0 {
		t.KmFootprint = d.KmFootprint
	}
	if t.EnergyFootprint == 0 {
		t.EnergyFootprint = d.EnergyFootprint
	}
	if t.OperatingVoltage == 0 {
		t.OperatingVoltage = d.OperatingVoltage
	}
	if t.CapacityCoefficient == 0 {
		t.CapacityCoefficient = d.CapacityCoefficient
	}
	if t.DischargeFraction == 0 {
		t.DischargeFraction = d.DischargeFraction
	}
	if t.ChargeFraction == 0 {
		t.ChargeFraction = d.ChargeFraction
	}
}

// Validate checks units, versions and value ranges.
func (t Tables) Validate() error {
	if t.Version != TablesVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidTables, t.Version)
	}
	if t.Unit != UnitPerKWc {
		return fmt.Errorf("%w: unsupported unit %q", ErrInvalidTables, t.Unit)
	}
	for c := range t.CountryFootprint {
		if _, ok := t.CountryDistanceKm[c]; !ok {
			return fmt.Errorf("%w: no transport distance for %s", ErrInvalidTables, c)
		}
	}
	if t.OperatingVoltage <= 0 {
		return fmt.Errorf("%w: operating voltage must be positive", ErrInvalidTables)
	}
	if t.CapacityCoefficient <= 0 {
		return fmt.Errorf("%w: capacity coefficient must be positive", ErrInvalidTables)
	}
	if t.KmFootprint < 0 || t.EnergyFootprint < 0 {
		return fmt.Errorf("%w: footprint factors must be non-negative", ErrInvalidTables)
	}
	if t.DischargeFraction < 0 || t.ChargeFraction > 1 || t.DischargeFraction >= t.ChargeFraction {
		return fmt.Errorf("%w: need 0 <= discharge fraction (%v) < charge fraction (%v) <= 1",
			ErrInvalidTables, t.DischargeFraction, t.ChargeFraction)
	}
	return nil
}

// AhFootprint converts the per-kWh energy footprint to kgCO2eq per Ah at the
// operating voltage: one Ah carries OperatingVoltage/1000 kWh.
func (t Tables) AhFootprint() float64 {
	return t.EnergyFootprint * t.OperatingVoltage / 1000
}

// Embodied returns the production and transport footprint of a panel.
func (t Tables) Embodied(p Panel) (float64, error) {
	country, ok := t.CountryFootprint[p.Country]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCountry, p.Country)
	}
	material, ok := t.MaterialFootprint[p.Material]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMaterial, p.Material)
	}
	production := p.RatedPowerKWc() * (country + material) / 2
	transport := t.CountryDistanceKm[p.Country] * t.KmFootprint
	return production + transport, nil
}
