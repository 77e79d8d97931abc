package dataset

import (
	"fmt"
	"io"

	"github.com/kilianp07/solar4farm/core/power"
)

// Panel file headers.
const (
	ColArea       = "Area"
	ColEfficiency = "Efficiency"
	ColOrigin     = "Origin"
	ColPower      = "Power"
	ColMaterial   = "Material"
)

// ReadPanels parses one panel per row. Area is in m², Efficiency in (0,1]
// and Power in W.
func ReadPanels(r io.Reader) ([]power.Panel, error) {
	t, err := readTable(r, 0)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]int, 5)
	for _, c := range []string{ColArea, ColEfficiency, ColOrigin, ColPower, ColMaterial} {
		if idx[c], err = t.index(c); err != nil {
			return nil, err
		}
	}
	panels := make([]power.Panel, 0, len(t.rows))
	for n := range t.rows {
		var p power.Panel
		if p.Area, err = t.float(n, idx[ColArea]); err != nil {
			return nil, err
		}
		if p.Efficiency, err = t.float(n, idx[ColEfficiency]); err != nil {
			return nil, err
		}
		if p.RatedPower, err = t.float(n, idx[ColPower]); err != nil {
			return nil, err
		}
		if p.Country, err = t.cell(n, idx[ColOrigin]); err != nil {
			return nil, err
		}
		if p.Material, err = t.cell(n, idx[ColMaterial]); err != nil {
			return nil, err
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", t.first+n, err)
		}
		panels = append(panels, p)
	}
	return panels, nil
}

// ReadPanelsFile opens path and calls ReadPanels.
func ReadPanelsFile(path string) ([]power.Panel, error) {
	return openWith(path, ReadPanels)
}
