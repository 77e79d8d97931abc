package power

import "fmt"

// Panel is the static description of a solar installation.
type Panel struct {
	// Area in m².
	Area float64 `json:"area" yaml:"area"`
	// Efficiency is the irradiance-to-electricity ratio in (0,1].
	Efficiency float64 `json:"efficiency" yaml:"efficiency"`
	// Country of production.
	Country string `json:"country" yaml:"country"`
	// RatedPower in W.
	RatedPower float64 `json:"rated_power" yaml:"rated_power"`
	Material   string  `json:"material" yaml:"material"`
}

// RatedPowerKWc returns the rated power in kWc.
func (p Panel) RatedPowerKWc() float64 { return p.RatedPower / 1000 }

func (p Panel) String() string {
	return fmt.Sprintf("%.1fm² %.0f%% %s %s %.0fW", p.Area, p.Efficiency*100, p.Material, p.Country, p.RatedPower)
}

// Validate checks the physical values.
func (p Panel) Validate() error {
	if p.Area <= 0 {
		return fmt.Errorf("%w: area %v", ErrInvalidPanel, p.Area)
	}
	if p.Efficiency <= 0 || p.Efficiency > 1 {
		return fmt.Errorf("%w: efficiency %v", ErrInvalidPanel, p.Efficiency)
	}
	if p.RatedPower <= 0 {
		return fmt.Errorf("%w: rated power %v", ErrInvalidPanel, p.RatedPower)
	}
	return nil
}
