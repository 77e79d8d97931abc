package metrics

import (
	"errors"
	"fmt"

	"github.com/kilianp07/solar4farm/core/factory"
)

// ErrSinkType is returned for a sink entry without a type.
var ErrSinkType = errors.New("sink type is required")

// Config lists the sinks epoch events and run summaries are sent to.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
}

// Validate rejects entries without a type. Unknown types are reported by
// NewMetricsSink, once every sink has registered.
func (c Config) Validate() error {
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("sink %d: %w", i, ErrSinkType)
		}
	}
	return nil
}
