package metrics

import (
	"context"

	coremetrics "github.com/kilianp07/solar4farm/core/metrics"
	"github.com/kilianp07/solar4farm/infra/logger"
	"github.com/kilianp07/solar4farm/internal/eventbus"
)

// StartEventCollector subscribes to the epoch bus and forwards every event to
// sink. The returned channel is closed once the collector has stopped, which
// happens when ctx is canceled or the bus is closed.
func StartEventCollector(ctx context.Context, bus *eventbus.TypedBus[coremetrics.EpochEvent], sink coremetrics.MetricsSink, log logger.Logger) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := sink.RecordEpoch(ev); err != nil {
					log.Errorf("record epoch %d of %s: %v", ev.Epoch, ev.System, err)
				}
			}
		}
	}()
	return done
}
