package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridEdges(t *testing.T) {
	obs := []Observation{
		{Month: 1, Temperature: -5, Irradiance: 0},
		{Month: 1, Temperature: 15, Irradiance: 800},
		{Month: 1, Temperature: 5, Irradiance: 400},
	}
	g, err := NewGrid(obs, 10, 20)
	require.NoError(t, err)
	assert.Equal(t, -5.0, g.TMin)
	assert.Equal(t, 15.0, g.TMax)
	assert.Equal(t, 0.0, g.RMin)
	assert.Equal(t, 800.0, g.RMax)
	assert.InDelta(t, 2.0, g.DT, 1e-12)
	assert.InDelta(t, 40.0, g.DR, 1e-12)
	assert.Equal(t, 200, g.Size())
}

func TestGridCellClampsMaximum(t *testing.T) {
	g := Grid{TBins: 10, RBins: 20, TMin: 0, TMax: 10, RMin: 0, RMax: 100, DT: 1, DR: 5}
	assert.Equal(t, 0, g.Cell(Sample{Temperature: 0, Irradiance: 0}))
	assert.Equal(t, 9*20+19, g.Cell(Sample{Temperature: 10, Irradiance: 100}))
	assert.Equal(t, 3*20+4, g.Cell(Sample{Temperature: 3.5, Irradiance: 22}))
	assert.Equal(t, 0, g.Cell(Sample{Temperature: -3, Irradiance: -1}))
}

func TestGridSampleLowerEdge(t *testing.T) {
	g := Grid{TBins: 10, RBins: 20, TMin: -2, TMax: 8, RMin: 0, RMax: 100, DT: 1, DR: 5}
	for cell := 0; cell < g.Size(); cell++ {
		s := g.Sample(cell)
		require.True(t, g.Contains(s))
		require.Equal(t, cell, g.Cell(s))
	}
	assert.Equal(t, Sample{Temperature: 1, Irradiance: 35}, g.Sample(3*20+7))
}

func TestGridCellRoundTrip(t *testing.T) {
	ranges := []struct {
		tMin, tMax, rMin, rMax float64
	}{
		{2.1, 33.7, 0, 1042},
		{-7.3, 36.1, 0, 1013},
		{0.1, 0.7, 0.3, 9.9},
	}
	for _, r := range ranges {
		obs := []Observation{
			{Month: 1, Temperature: r.tMin, Irradiance: r.rMin},
			{Month: 1, Temperature: r.tMax, Irradiance: r.rMax},
		}
		g, err := NewGrid(obs, 10, 20)
		require.NoError(t, err)
		for cell := 0; cell < g.Size(); cell++ {
			require.Equal(t, cell, g.Cell(g.Sample(cell)), "range %+v cell %d", r, cell)
		}
	}
}

func TestGridDegenerateAxis(t *testing.T) {
	obs := []Observation{
		{Month: 1, Temperature: 20, Irradiance: 0},
		{Month: 1, Temperature: 20, Irradiance: 100},
	}
	g, err := NewGrid(obs, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, g.DT)
	assert.Equal(t, 1, g.Cell(Sample{Temperature: 20, Irradiance: 100}))
}

func TestNewGridInvalidBins(t *testing.T) {
	_, err := NewGrid([]Observation{{Month: 1}}, 0, 3)
	assert.ErrorIs(t, err, ErrInvalidBins)
}
