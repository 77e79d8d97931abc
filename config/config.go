package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/solar4farm/core/load"
	"github.com/kilianp07/solar4farm/core/metrics"
	"github.com/kilianp07/solar4farm/core/power"
	"github.com/kilianp07/solar4farm/infra/mqtt"
)

// EnvPrefix prefixes environment overrides. Nested keys use "__", so
// SOLAR_SIMULATION__EPOCHS sets simulation.epochs.
const EnvPrefix = "SOLAR_"

// ErrUnsupportedFormat is returned for config files that are neither YAML nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported config format")

type Config struct {
	Simulation SimulationConfig `json:"simulation"`
	Weather    WeatherConfig    `json:"weather"`
	Load       load.Config      `json:"load"`
	Tables     power.Tables     `json:"tables"`
	Logging    LoggingConfig    `json:"logging"`
	Metrics    metrics.Config   `json:"metrics"`
	Prometheus PrometheusConfig `json:"prometheus"`
	Sentry     SentryConfig     `json:"sentry"`
	// MQTT publishes results and listens for stop commands when a broker
	// is set.
	MQTT mqtt.Config `json:"mqtt"`
}

// Default returns the configuration used when no file overrides a key.
func Default() Config {
	return Config{
		Simulation: DefaultSimulation(),
		Weather:    DefaultWeather(),
		Load:       load.DefaultConfig(),
		Tables:     power.DefaultTables(),
		Logging:    LoggingConfig{Level: "info", Format: "json"},
	}
}

// Load reads path, applies environment overrides and validates the result.
// An empty path loads the defaults and the environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, err
	}
	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// SetDefaults fills every section.
func (c *Config) SetDefaults() {
	c.Simulation.SetDefaults()
	c.Weather.SetDefaults()
	c.Load.SetDefaults()
	c.Tables.SetDefaults()
	c.Logging.SetDefaults()
	if c.MQTT.Broker != "" {
		c.MQTT.SetDefaults()
	}
}

// Validate checks every section and prefixes errors with the section name.
func (c Config) Validate() error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"simulation", c.Simulation.Validate},
		{"weather", c.Weather.Validate},
		{"load", c.Load.Validate},
		{"tables", c.Tables.Validate},
		{"logging", c.Logging.Validate},
		{"metrics", c.Metrics.Validate},
		{"sentry", c.Sentry.Validate},
	}
	if c.MQTT.Broker != "" {
		checks = append(checks, struct {
			name string
			fn   func() error
		}{"mqtt", c.MQTT.Validate})
	}
	for _, ch := range checks {
		if err := ch.fn(); err != nil {
			return fmt.Errorf("%s: %w", ch.name, err)
		}
	}
	return nil
}
