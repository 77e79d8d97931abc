package experiment

import (
	"fmt"
	"math"

	"github.com/kilianp07/solar4farm/core/power"
)

// AreaSweep returns panels whose area goes from from to to (inclusive) by
// step, all sharing efficiency, country and material. The rated power in W
// follows from the area: area * efficiency * 1000 W/m².
func AreaSweep(from, to, step, efficiency float64, country, material string) ([]power.Panel, error) {
	if step <= 0 || from <= 0 || to < from {
		return nil, fmt.Errorf("%w: sweep %v..%v by %v", ErrInvalidConfig, from, to, step)
	}
	n := int(math.Floor((to-from)/step+1e-9)) + 1
	panels := make([]power.Panel, 0, n)
	for i := 0; i < n; i++ {
		area := from + float64(i)*step
		p := power.Panel{
			Area:       area,
			Efficiency: efficiency,
			Country:    country,
			RatedPower: area * efficiency * 1000,
			Material:   material,
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		panels = append(panels, p)
	}
	return panels, nil
}

// NewCandidates builds one system per panel. Names come from Panel.String and
// are made unique with a #n suffix.
func NewCandidates(panels []power.Panel, tables power.Tables, activeLoad float64) ([]Candidate, error) {
	out := make([]Candidate, 0, len(panels))
	seen := make(map[string]int, len(panels))
	for i, p := range panels {
		s, err := power.NewSystem(p, tables, activeLoad)
		if err != nil {
			return nil, fmt.Errorf("panel %d (%s): %w", i, p, err)
		}
		name := p.String()
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s #%d", name, n)
		}
		out = append(out, Candidate{Name: name, System: s})
	}
	return out, nil
}
