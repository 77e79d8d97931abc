package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/kilianp07/solar4farm/config"
	"github.com/kilianp07/solar4farm/core/experiment"
	"github.com/kilianp07/solar4farm/core/load"
	coremetrics "github.com/kilianp07/solar4farm/core/metrics"
	"github.com/kilianp07/solar4farm/core/power"
	"github.com/kilianp07/solar4farm/core/weather"
	"github.com/kilianp07/solar4farm/infra/dataset"
	"github.com/kilianp07/solar4farm/infra/logger"
	inframetrics "github.com/kilianp07/solar4farm/infra/metrics"
	"github.com/kilianp07/solar4farm/infra/mqtt"
	"github.com/kilianp07/solar4farm/internal/eventbus"
	"github.com/kilianp07/solar4farm/pkg/export"
)

// run trains the processes on the weather file, simulates panels and
// writes the ranked results to out when set. A stop command received on the
// MQTT control topic ends the run after the current epoch; the completed
// epochs are still reported.
func run(ctx context.Context, c *config.Config, weatherPath string, panels []power.Panel, out string, w io.Writer) ([]experiment.Result, error) {
	log := logger.New("experiment")

	obs, err := dataset.ReadWeatherFile(weatherPath, c.Weather.Columns)
	if err != nil {
		return nil, fmt.Errorf("weather dataset: %w", err)
	}
	wp, err := weather.NewProcess(obs, c.Simulation.InitialWeather(), c.Simulation.WeatherSource(), c.Weather.Options()...)
	if err != nil {
		return nil, err
	}
	lg, err := load.NewGenerator(c.Load, c.Simulation.LoadSource())
	if err != nil {
		return nil, err
	}
	candidates, err := experiment.NewCandidates(panels, c.Tables, c.Load.ActiveCurrent)
	if err != nil {
		return nil, err
	}
	log.Infof("%d observations, %d systems, %d epochs", len(obs), len(candidates), c.Simulation.Epochs)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sink, err := coremetrics.NewMetricsSink(c.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sinks: %w", err)
	}
	if c.MQTT.Broker != "" {
		pub, err := mqtt.NewPublisher(c.MQTT, logger.New("mqtt"))
		if err != nil {
			coremetrics.Close(sink)
			return nil, err
		}
		pub.OnStop(cancel)
		sink = coremetrics.NewMultiSink(sink, pub)
	}
	defer coremetrics.Close(sink)

	if c.Prometheus.Addr != "" {
		go func() {
			if err := inframetrics.StartPromServer(ctx, c.Prometheus.Addr, nil); err != nil {
				log.Errorf("prom server: %v", err)
			}
		}()
	}

	bus := eventbus.NewTyped[coremetrics.EpochEvent]()
	// The collector drains until the bus closes so a stopped run still
	// delivers its completed epochs.
	done := inframetrics.StartEventCollector(context.WithoutCancel(ctx), bus, sink, logger.New("collector"))

	exp, err := experiment.New(c.Simulation.Experiment(), wp, lg, candidates,
		experiment.WithLogger(log),
		experiment.WithBus(bus),
		experiment.WithSink(coremetrics.RunsOnly{Sink: sink}),
	)
	if err != nil {
		bus.Close()
		return nil, err
	}
	results, runErr := exp.Run(ctx)
	bus.Close()
	<-done
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return nil, runErr
	}
	if runErr != nil {
		log.Warnf("run %s stopped early: %v", exp.RunID(), runErr)
	}

	ranked := experiment.Rank(results)
	if err := printResults(w, ranked); err != nil {
		return nil, err
	}
	if out != "" {
		if err := export.WriteFile(out, ranked); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		log.Infof("results written to %s", out)
	}
	return ranked, runErr
}

func printResults(w io.Writer, results []experiment.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "SYSTEM\tEFFICIENCY %\tFOOTPRINT kgCO2eq\tEFF/kg"); err != nil {
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(tw, "%s\t%.2f\t%.1f\t%.4f\n", r.Name, r.Efficiency, r.Footprint, r.EfficiencyPerKg()); err != nil {
			return err
		}
	}
	return tw.Flush()
}
