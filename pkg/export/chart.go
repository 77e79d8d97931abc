package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/solar4farm/core/experiment"
)

// WriteChart renders the results as an HTML page with one chart for the
// efficiency and one for the footprint, systems in input order.
func WriteChart(w io.Writer, results []experiment.Result) error {
	names := make([]string, len(results))
	eff := make([]opts.LineData, len(results))
	perKg := make([]opts.LineData, len(results))
	embodied := make([]opts.BarData, len(results))
	total := make([]opts.BarData, len(results))
	for i, r := range results {
		names[i] = r.Name
		eff[i] = opts.LineData{Value: r.Efficiency}
		perKg[i] = opts.LineData{Value: r.EfficiencyPerKg()}
		embodied[i] = opts.BarData{Value: r.EmbodiedFootprint}
		total[i] = opts.BarData{Value: r.Footprint}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Efficiency"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "%"}),
	)
	line.SetXAxis(names).
		AddSeries("Satisfied hours", eff).
		AddSeries("Per kgCO2eq", perKg)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Carbon footprint"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "kgCO2eq"}),
	)
	bar.SetXAxis(names).
		AddSeries("Embodied", embodied).
		AddSeries("Lifetime", total)

	page := components.NewPage()
	page.AddCharts(line, bar)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
