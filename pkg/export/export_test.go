package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/solar4farm/core/experiment"
	"github.com/kilianp07/solar4farm/core/power"
)

func sampleResults() []experiment.Result {
	return []experiment.Result{
		{
			Name:              "10m² Mono",
			Panel:             power.Panel{Area: 10, Efficiency: 0.2, Country: "France", RatedPower: 2000, Material: "Monosillicium"},
			Satisfied:         8000,
			Total:             8760,
			Efficiency:        91.324200913242,
			MeanEfficiency:    91.3,
			StdDevEfficiency:  0.25,
			EmbodiedFootprint: 934,
			Footprint:         950.5,
		},
		{Name: "with, comma", Panel: power.Panel{Area: 3, Efficiency: 0.15, Country: "Asia", RatedPower: 450, Material: "Thin"}},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResults()))

	rows, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "10m² Mono", rows[0].Name)
	assert.Equal(t, 8000, rows[0].Satisfied)
	assert.Equal(t, 91.324200913242, rows[0].EfficiencyPct)
	assert.InDelta(t, 91.324200913242/950.5, rows[0].EfficiencyPerKg, 1e-15)
	assert.Equal(t, "with, comma", rows[1].Name)
	assert.Equal(t, 0.0, rows[1].EfficiencyPerKg)
}

func TestReadCSVRejectsForeignFiles(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\n1,2\n"))
	assert.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResults()[:1]))
	broken := strings.Replace(buf.String(), ",8000,", ",many,", 1)
	_, err = ReadCSV(strings.NewReader(broken))
	assert.ErrorContains(t, err, "satisfied")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResults()))
	back, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleResults(), back)

	_, err = ReadJSON(strings.NewReader("{"))
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteFile(filepath.Join(dir, "out.csv"), sampleResults()))
	data, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "name,area_m2"))

	require.NoError(t, WriteFile(filepath.Join(dir, "out.JSON"), sampleResults()))
	assert.Error(t, WriteFile(filepath.Join(dir, "out.txt"), sampleResults()))
}

func TestWriteChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteChart(&buf, sampleResults()))
	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "Carbon footprint")
	assert.Contains(t, html, "with, comma")

	path := filepath.Join(t.TempDir(), "chart.html")
	require.NoError(t, WriteFile(path, sampleResults()))
	assert.FileExists(t, path)
}
