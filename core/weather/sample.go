package weather

import (
	"fmt"
	"math"

	"github.com/kilianp07/solar4farm/core/calendar"
)

// Sample is a weather state: air temperature in degrees Celsius and solar
// irradiance in W/m².
type Sample struct {
	Temperature float64 `json:"temperature"`
	Irradiance  float64 `json:"irradiance"`
}

// Observation is one row of the historical training dataset.
type Observation struct {
	Month       int     `json:"month"`
	Temperature float64 `json:"temperature"`
	Irradiance  float64 `json:"irradiance"`
}

// Sample returns the weather part of the observation.
func (o Observation) Sample() Sample {
	return Sample{Temperature: o.Temperature, Irradiance: o.Irradiance}
}

// Validate checks the month and that both readings are finite.
func (o Observation) Validate() error {
	if err := calendar.ValidateMonth(o.Month); err != nil {
		return err
	}
	if math.IsNaN(o.Temperature) || math.IsInf(o.Temperature, 0) {
		return fmt.Errorf("%w: temperature %v", ErrInvalidReading, o.Temperature)
	}
	if math.IsNaN(o.Irradiance) || math.IsInf(o.Irradiance, 0) {
		return fmt.Errorf("%w: irradiance %v", ErrInvalidReading, o.Irradiance)
	}
	return nil
}
