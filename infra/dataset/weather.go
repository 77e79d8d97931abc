package dataset

import (
	"fmt"
	"io"
	"math"

	"github.com/kilianp07/solar4farm/core/weather"
)

// WeatherColumns locates the readings in an NSRDB export. NSRDB files start
// with a metadata header and a metadata row, followed by the real column
// names; the defaults address the data through the metadata header names
// sitting above the Month, Temperature and irradiance columns.
type WeatherColumns struct {
	Month       string `json:"month"`
	Temperature string `json:"temperature"`
	Irradiance  string `json:"irradiance"`
	// SkipRows is the number of rows between the header and the data.
	SkipRows int `json:"skip_rows"`
}

// DefaultWeatherColumns matches an NSRDB download of Temperature, DNI and DHI.
func DefaultWeatherColumns() WeatherColumns {
	return WeatherColumns{
		Month:       "Location ID",
		Temperature: "Longitude",
		Irradiance:  "Latitude",
		SkipRows:    2,
	}
}

// SetDefaults fills empty column names and a missing skip count.
func (c *WeatherColumns) SetDefaults() {
	d := DefaultWeatherColumns()
	if c.Month == "" {
		c.Month = d.Month
	}
	if c.Temperature == "" {
		c.Temperature = d.Temperature
	}
	if c.Irradiance == "" {
		c.Irradiance = d.Irradiance
	}
	if c.SkipRows < 0 {
		c.SkipRows = d.SkipRows
	}
}

// ReadWeather parses hourly observations. Every row is validated.
func ReadWeather(r io.Reader, cols WeatherColumns) ([]weather.Observation, error) {
	t, err := readTable(r, cols.SkipRows)
	if err != nil {
		return nil, err
	}
	mi, err := t.index(cols.Month)
	if err != nil {
		return nil, err
	}
	ti, err := t.index(cols.Temperature)
	if err != nil {
		return nil, err
	}
	ri, err := t.index(cols.Irradiance)
	if err != nil {
		return nil, err
	}
	obs := make([]weather.Observation, 0, len(t.rows))
	for n := range t.rows {
		month, err := t.float(n, mi)
		if err != nil {
			return nil, err
		}
		temp, err := t.float(n, ti)
		if err != nil {
			return nil, err
		}
		irr, err := t.float(n, ri)
		if err != nil {
			return nil, err
		}
		o := weather.Observation{Month: int(month), Temperature: temp, Irradiance: irr}
		if month != math.Trunc(month) {
			return nil, fmt.Errorf("line %d: month %v is not an integer", t.first+n, month)
		}
		if err := o.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", t.first+n, err)
		}
		obs = append(obs, o)
	}
	return obs, nil
}

// ReadWeatherFile opens path and calls ReadWeather.
func ReadWeatherFile(path string, cols WeatherColumns) ([]weather.Observation, error) {
	return openWith(path, func(r io.Reader) ([]weather.Observation, error) {
		return ReadWeather(r, cols)
	})
}
