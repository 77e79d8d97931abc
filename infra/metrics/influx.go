package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/solar4farm/core/metrics"
	"github.com/kilianp07/solar4farm/infra/logger"
)

// InfluxSink writes experiment results to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordEpoch writes one solar_epoch point.
func (s *InfluxSink) RecordEpoch(ev coremetrics.EpochEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, epochPoint(ev))
}

// RecordRun writes one solar_run point.
func (s *InfluxSink) RecordRun(sum coremetrics.RunSummary) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, runPoint(sum))
}

// Close releases the client resources.
func (s *InfluxSink) Close() { s.client.Close() }

func epochPoint(ev coremetrics.EpochEvent) *write.Point {
	return write.NewPointWithMeasurement("solar_epoch").
		AddTag("system", ev.System).
		AddTag("run_id", ev.RunID).
		AddTag("epoch", strconv.Itoa(ev.Epoch)).
		AddField("satisfied", ev.Satisfied).
		AddField("total", ev.Total).
		AddField("efficiency", round3(ev.Efficiency)).
		AddField("epoch_footprint_kg", round3(ev.EpochFootprint)).
		AddField("lifetime_footprint_kg", round3(ev.LifetimeFootprint)).
		AddField("discharged_ah", round3(ev.DischargedAh)).
		SetTime(ev.Time)
}

func runPoint(sum coremetrics.RunSummary) *write.Point {
	return write.NewPointWithMeasurement("solar_run").
		AddTag("system", sum.System).
		AddTag("run_id", sum.RunID).
		AddField("epochs", sum.Epochs).
		AddField("mean_efficiency", round3(sum.MeanEfficiency)).
		AddField("stddev_efficiency", round3(sum.StdDevEfficiency)).
		AddField("footprint_kg", round3(sum.Footprint)).
		AddField("efficiency_per_kg", sum.EfficiencyPerKg).
		SetTime(sum.Time)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
