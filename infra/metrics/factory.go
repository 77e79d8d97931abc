package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/solar4farm/core/factory"
	coremetrics "github.com/kilianp07/solar4farm/core/metrics"
	"github.com/kilianp07/solar4farm/core/metrics/eco"
	"github.com/kilianp07/solar4farm/infra/kpi"
	"github.com/kilianp07/solar4farm/infra/mqtt"
)

// init registers built-in metrics sinks.
func init() {
	_ = coremetrics.RegisterMetricsSink("nop", func(map[string]any) (coremetrics.MetricsSink, error) {
		return coremetrics.NopSink{}, nil
	})

	_ = coremetrics.RegisterMetricsSink("prometheus", func(map[string]any) (coremetrics.MetricsSink, error) {
		s, err := NewPromSink()
		if err != nil {
			return nil, err
		}
		return s, nil
	})

	_ = coremetrics.RegisterMetricsSink("eco", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c struct {
			SQLite string `json:"sqlite"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		var store eco.Store
		if c.SQLite != "" {
			db, err := kpi.NewSQLiteStore(c.SQLite)
			if err != nil {
				return nil, err
			}
			store = db
		}
		s, err := NewEcoSink(store, prometheus.DefaultRegisterer)
		if err != nil {
			return nil, err
		}
		return s, nil
	})

	_ = coremetrics.RegisterMetricsSink("jsonl", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		c := struct {
			Path       string `json:"path"`
			MaxSizeMB  int    `json:"max_size_mb"`
			MaxBackups int    `json:"max_backups"`
			MaxAgeDays int    `json:"max_age_days"`
		}{Path: "solar4farm.jsonl", MaxSizeMB: 10}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		s, err := NewJSONLSink(c.Path, c.MaxSizeMB, c.MaxBackups, c.MaxAgeDays)
		if err != nil {
			return nil, err
		}
		return s, nil
	})

	_ = coremetrics.RegisterMetricsSink("influx", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c struct {
			URL    string `json:"url"`
			Token  string `json:"token"`
			Org    string `json:"org"`
			Bucket string `json:"bucket"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
	})

	_ = coremetrics.RegisterMetricsSink("mqtt", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c mqtt.Config
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		p, err := mqtt.NewPublisher(c, nil)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
}
