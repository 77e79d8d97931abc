package dataset

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/solar4farm/core/weather"
)

func TestReadWeatherFileNSRDB(t *testing.T) {
	obs, err := ReadWeatherFile(filepath.Join("testdata", "nsrdb.csv"), DefaultWeatherColumns())
	require.NoError(t, err)
	require.Len(t, obs, 5)
	assert.Equal(t, weather.Observation{Month: 1, Temperature: 4.5, Irradiance: 0}, obs[0])
	assert.Equal(t, weather.Observation{Month: 7, Temperature: 27.5, Irradiance: 910.5}, obs[3])
	assert.Equal(t, 12, obs[4].Month)
}

func TestReadWeatherCustomColumns(t *testing.T) {
	in := "month,temp,ghi\n3,12.5,400\n4,15,0\n"
	obs, err := ReadWeather(strings.NewReader(in), WeatherColumns{Month: "month", Temperature: "TEMP", Irradiance: "ghi"})
	require.NoError(t, err)
	assert.Equal(t, []weather.Observation{
		{Month: 3, Temperature: 12.5, Irradiance: 400},
		{Month: 4, Temperature: 15, Irradiance: 0},
	}, obs)
}

func TestReadWeatherErrors(t *testing.T) {
	cols := WeatherColumns{Month: "m", Temperature: "t", Irradiance: "i"}
	tests := []struct {
		name string
		in   string
		msg  string
	}{
		{"empty", "", "no data rows"},
		{"header only", "m,t,i\n", "no data rows"},
		{"missing column", "m,t\n1,2\n", `missing column: "i"`},
		{"bad number", "m,t,i\n1,x,3\n", "line 2"},
		{"short row", "m,t,i\n1,2\n", "line 2: expected at least 3 fields"},
		{"month out of range", "m,t,i\n1,2,3\n13,2,3\n", "line 3"},
		{"fractional month", "m,t,i\n1.5,2,3\n", "not an integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadWeather(strings.NewReader(tt.in), cols)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestWeatherColumnsSetDefaults(t *testing.T) {
	c := WeatherColumns{Irradiance: "GHI", SkipRows: -1}
	c.SetDefaults()
	assert.Equal(t, "Location ID", c.Month)
	assert.Equal(t, "Longitude", c.Temperature)
	assert.Equal(t, "GHI", c.Irradiance)
	assert.Equal(t, 2, c.SkipRows)
}

func TestReadPanelsFile(t *testing.T) {
	panels, err := ReadPanelsFile(filepath.Join("testdata", "panels.csv"))
	require.NoError(t, err)
	require.Len(t, panels, 2)
	assert.Equal(t, 1.6, panels[0].Area)
	assert.Equal(t, 0.2, panels[0].Efficiency)
	assert.Equal(t, "Asia", panels[0].Country)
	assert.Equal(t, 320.0, panels[0].RatedPower)
	assert.Equal(t, "Polysillicium", panels[1].Material)
}

func TestReadPanelsErrors(t *testing.T) {
	_, err := ReadPanels(strings.NewReader("Area,Efficiency,Origin,Power\n1,0.2,FR,300\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = ReadPanels(strings.NewReader("Area,Efficiency,Origin,Power,Material\n1,1.5,FR,300,Si\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = ReadPanelsFile(filepath.Join("testdata", "missing.csv"))
	assert.Error(t, err)
}
