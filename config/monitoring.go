package config

import "fmt"

// SentryConfig enables error reporting when DSN is set.
type SentryConfig struct {
	DSN              string  `json:"dsn"`
	Environment      string  `json:"environment"`
	Release          string  `json:"release"`
	TracesSampleRate float64 `json:"traces_sample_rate"`
}

func (c SentryConfig) Validate() error {
	if c.TracesSampleRate < 0 || c.TracesSampleRate > 1 {
		return fmt.Errorf("%w: traces sample rate %v", ErrInvalidSection, c.TracesSampleRate)
	}
	return nil
}
