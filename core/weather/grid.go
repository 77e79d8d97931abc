package weather

import (
	"fmt"
	"math"
)

const (
	// DefaultTemperatureBins is the number of temperature states.
	DefaultTemperatureBins = 10
	// DefaultIrradianceBins is the number of irradiance states.
	DefaultIrradianceBins = 20
)

// Grid discretizes the observed (temperature, irradiance) range into
// TBins x RBins cells. Cell indices are laid out temperature-major.
type Grid struct {
	TBins int     `json:"t_bins"`
	RBins int     `json:"r_bins"`
	TMin  float64 `json:"t_min"`
	TMax  float64 `json:"t_max"`
	RMin  float64 `json:"r_min"`
	RMax  float64 `json:"r_max"`
	DT    float64 `json:"dt"`
	DR    float64 `json:"dr"`
}

// NewGrid derives bin edges from the observations.
func NewGrid(obs []Observation, tBins, rBins int) (Grid, error) {
	if tBins <= 0 || rBins <= 0 {
		return Grid{}, fmt.Errorf("%w: %dx%d", ErrInvalidBins, tBins, rBins)
	}
	if len(obs) == 0 {
		return Grid{}, ErrDatasetTooSmall
	}
	g := Grid{
		TBins: tBins,
		RBins: rBins,
		TMin:  math.Inf(1),
		TMax:  math.Inf(-1),
		RMin:  math.Inf(1),
		RMax:  math.Inf(-1),
	}
	for _, o := range obs {
		g.TMin = math.Min(g.TMin, o.Temperature)
		g.TMax = math.Max(g.TMax, o.Temperature)
		g.RMin = math.Min(g.RMin, o.Irradiance)
		g.RMax = math.Max(g.RMax, o.Irradiance)
	}
	g.DT = (g.TMax - g.TMin) / float64(tBins)
	g.DR = (g.RMax - g.RMin) / float64(rBins)
	return g, nil
}

// Size returns the number of cells.
func (g Grid) Size() int { return g.TBins * g.RBins }

// Cell maps a sample to its cell index. Values at the maximum edge fall into
// the last bin; values outside the grid are clamped.
func (g Grid) Cell(s Sample) int {
	j := axisIndex(s.Temperature, g.TMin, g.DT, g.TBins)
	k := axisIndex(s.Irradiance, g.RMin, g.DR, g.RBins)
	return j*g.RBins + k
}

// Sample maps a cell index back to the lower edges of its bins.
func (g Grid) Sample(cell int) Sample {
	j := cell / g.RBins
	k := cell % g.RBins
	return Sample{
		Temperature: g.TMin + float64(j)*g.DT,
		Irradiance:  g.RMin + float64(k)*g.DR,
	}
}

// Clamp bounds a sample to the observed range.
func (g Grid) Clamp(s Sample) Sample {
	return Sample{
		Temperature: math.Min(math.Max(s.Temperature, g.TMin), g.TMax),
		Irradiance:  math.Min(math.Max(s.Irradiance, g.RMin), g.RMax),
	}
}

// Contains reports whether s lies within [TMin,TMax]x[RMin,RMax].
func (g Grid) Contains(s Sample) bool {
	return s.Temperature >= g.TMin && s.Temperature <= g.TMax &&
		s.Irradiance >= g.RMin && s.Irradiance <= g.RMax
}

func axisIndex(v, lo, width float64, bins int) int {
	if width <= 0 {
		return 0
	}
	i := int(math.Floor((v - lo) / width))
	if i < 0 {
		return 0
	}
	if i >= bins {
		return bins - 1
	}
	// Division rounding can land one bin off the edge Sample produces.
	if i+1 < bins && lo+float64(i+1)*width <= v {
		i++
	} else if i > 0 && v < lo+float64(i)*width {
		i--
	}
	return i
}
