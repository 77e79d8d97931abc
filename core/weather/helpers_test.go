package weather

import (
	"math"

	"github.com/kilianp07/solar4farm/core/calendar"
)

// scriptedSource replays fixed uniform draws through math/rand/v2.
type scriptedSource struct {
	vals []float64
	i    int
}

func (s *scriptedSource) Uint64() uint64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return uint64(v * (1 << 53))
}

// syntheticYear builds one year of hourly observations with a daily
// irradiance bell and a seasonal temperature swing.
func syntheticYear() []Observation {
	obs := make([]Observation, 0, calendar.HoursPerYear)
	for inst := range calendar.NewClock().Instants() {
		season := math.Sin(2 * math.Pi * float64(inst.Day-100) / 365)
		temp := 12 + 10*season + 4*math.Sin(2*math.Pi*float64(inst.Hour-9)/24)
		irr := 0.0
		if inst.Hour >= 6 && inst.Hour <= 20 {
			irr = (600 + 300*season) * math.Sin(math.Pi*float64(inst.Hour-6)/14)
		}
		obs = append(obs, Observation{Month: inst.Month, Temperature: temp, Irradiance: irr})
	}
	return obs
}
