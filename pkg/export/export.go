// Package export writes experiment results as CSV, JSON or an HTML chart.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kilianp07/solar4farm/core/experiment"
)

// Header is the CSV column layout written by WriteCSV.
var Header = []string{
	"name", "area_m2", "efficiency", "country", "material", "rated_power_w",
	"satisfied", "total", "efficiency_pct", "mean_efficiency_pct", "stddev_efficiency_pct",
	"embodied_kg", "footprint_kg", "efficiency_per_kg",
}

// Row is one CSV line, as read back by ReadCSV.
type Row struct {
	Name            string
	Area            float64
	Efficiency      float64
	Country         string
	Material        string
	RatedPower      float64
	Satisfied       int
	Total           int
	EfficiencyPct   float64
	MeanEfficiency  float64
	StdDevEff       float64
	Embodied        float64
	Footprint       float64
	EfficiencyPerKg float64
}

// WriteJSON writes the results to w as an indented JSON array.
func WriteJSON(w io.Writer, results []experiment.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// WriteCSV writes one line per result, preceded by Header.
func WriteCSV(w io.Writer, results []experiment.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range results {
		rec := []string{
			r.Name,
			ftoa(r.Panel.Area),
			ftoa(r.Panel.Efficiency),
			r.Panel.Country,
			r.Panel.Material,
			ftoa(r.Panel.RatedPower),
			strconv.Itoa(r.Satisfied),
			strconv.Itoa(r.Total),
			ftoa(r.Efficiency),
			ftoa(r.MeanEfficiency),
			ftoa(r.StdDevEfficiency),
			ftoa(r.EmbodiedFootprint),
			ftoa(r.Footprint),
			ftoa(r.EfficiencyPerKg()),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file written by WriteCSV.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 || strings.Join(recs[0], ",") != strings.Join(Header, ",") {
		return nil, fmt.Errorf("unexpected csv header")
	}
	rows := make([]Row, 0, len(recs)-1)
	for i, rec := range recs[1:] {
		p := parser{rec: rec}
		row := Row{
			Name:            rec[0],
			Area:            p.floatAt(1),
			Efficiency:      p.floatAt(2),
			Country:         rec[3],
			Material:        rec[4],
			RatedPower:      p.floatAt(5),
			Satisfied:       p.intAt(6),
			Total:           p.intAt(7),
			EfficiencyPct:   p.floatAt(8),
			MeanEfficiency:  p.floatAt(9),
			StdDevEff:       p.floatAt(10),
			Embodied:        p.floatAt(11),
			Footprint:       p.floatAt(12),
			EfficiencyPerKg: p.floatAt(13),
		}
		if p.err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, p.err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteFile writes the results to path, choosing the format from the
// extension (.csv, .json or .html).
func WriteFile(path string, results []experiment.Result) (err error) {
	var write func(io.Writer, []experiment.Result) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		write = WriteCSV
	case ".json":
		write = WriteJSON
	case ".html":
		write = WriteChart
	default:
		return fmt.Errorf("unsupported output format: %s", filepath.Ext(path))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f, results)
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// parser keeps the first conversion error.
type parser struct {
	rec []string
	err error
}

func (p *parser) floatAt(i int) float64 {
	v, err := strconv.ParseFloat(p.rec[i], 64)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("column %s: %w", Header[i], err)
	}
	return v
}

func (p *parser) intAt(i int) int {
	v, err := strconv.Atoi(p.rec[i])
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("column %s: %w", Header[i], err)
	}
	return v
}

// ReadJSON reads results written by WriteJSON.
func ReadJSON(r io.Reader) ([]experiment.Result, error) {
	var results []experiment.Result
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	return results, nil
}
