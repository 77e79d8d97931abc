// Package experiment drives power systems through simulated years. Every
// tick draws one weather sample and one load current, and broadcasts them to
// all systems so that their results are comparable.
package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kilianp07/solar4farm/core/calendar"
	"github.com/kilianp07/solar4farm/core/logger"
	"github.com/kilianp07/solar4farm/core/metrics"
	"github.com/kilianp07/solar4farm/core/power"
	"github.com/kilianp07/solar4farm/core/weather"
	"github.com/kilianp07/solar4farm/internal/eventbus"
)

// Weather yields one weather sample per tick. *weather.Process implements it.
type Weather interface {
	Step(month int) (weather.Sample, error)
}

// Load yields one load current per tick. *load.Generator implements it.
type Load interface {
	Step(hour, month int) (float64, error)
}

// Candidate is a named system taking part in an experiment.
type Candidate struct {
	Name   string
	System *power.System
}

// Option configures an Experiment.
type Option func(*Experiment)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logger.Logger) Option {
	return func(e *Experiment) { e.log = l }
}

// WithSink sends epoch events and run summaries to s.
func WithSink(s metrics.MetricsSink) Option {
	return func(e *Experiment) { e.sink = s }
}

// WithBus publishes epoch events on b. Publication waits for subscribers.
func WithBus(b *eventbus.TypedBus[metrics.EpochEvent]) Option {
	return func(e *Experiment) { e.bus = b }
}

// WithRunID fixes the run identifier. The default is a random UUID.
func WithRunID(id string) Option {
	return func(e *Experiment) { e.runID = id }
}

// Experiment runs candidates over a number of epochs. It is single use and
// not safe for concurrent use.
type Experiment struct {
	cfg        Config
	clock      calendar.Clock
	weather    Weather
	load       Load
	candidates []Candidate

	log   logger.Logger
	sink  metrics.MetricsSink
	bus   *eventbus.TypedBus[metrics.EpochEvent]
	runID string
	now   func() time.Time

	publishTimeout time.Duration
}

// DefaultPublishTimeout bounds how long an epoch event waits for a slow bus
// subscriber.
const DefaultPublishTimeout = 5 * time.Second

// tick is one broadcast draw.
type tick struct {
	at      calendar.Instant
	weather weather.Sample
	load    float64
}

// New validates cfg and assembles an experiment.
func New(cfg Config, w Weather, l Load, candidates []Candidate, opts ...Option) (*Experiment, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if w == nil || l == nil {
		return nil, ErrNilProcess
	}
	if len(candidates) == 0 {
		return nil, ErrNoSystems
	}
	for i, c := range candidates {
		if c.System == nil {
			return nil, fmt.Errorf("%w: candidate %d has no system", ErrNoSystems, i)
		}
	}
	e := &Experiment{
		cfg:        cfg,
		clock:      cfg.Clock(),
		weather:    w,
		load:       l,
		candidates: candidates,
		log:        logger.NopLogger{},
		sink:       metrics.NopSink{},
		now:        time.Now,

		publishTimeout: DefaultPublishTimeout,
	}
	for _, o := range opts {
		o(e)
	}
	if e.runID == "" {
		e.runID = uuid.NewString()
	}
	return e, nil
}

// RunID returns the identifier attached to every event of this run.
func (e *Experiment) RunID() string { return e.runID }

// Run simulates every epoch and returns one result per candidate, in input
// order. The context is checked between epochs; on cancellation the results
// of the completed epochs are returned with the context error.
func (e *Experiment) Run(ctx context.Context) ([]Result, error) {
	results := make([]Result, len(e.candidates))
	for i, c := range e.candidates {
		results[i] = Result{
			Name:              c.Name,
			Panel:             c.System.Panel(),
			EmbodiedFootprint: c.System.EmbodiedFootprint(),
		}
	}
	e.log.Infof("run %s: %d systems, %d epochs of %d ticks", e.runID, len(e.candidates), e.cfg.Epochs, e.clock.Len())

	trace := make([]tick, 0, e.clock.Len())
	satisfied := make([]int, len(e.candidates))
	for epoch := 0; epoch < e.cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			e.finish(results)
			return results, fmt.Errorf("run stopped after %d epochs: %w", epoch, err)
		}
		var err error
		trace, err = e.draw(trace[:0])
		if err != nil {
			return nil, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		if err := e.step(ctx, trace, satisfied); err != nil {
			return nil, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		e.closeEpoch(ctx, epoch, len(trace), satisfied, results)
	}
	e.finish(results)
	return results, nil
}

// draw produces the ticks of one epoch. Weather and load are drawn exactly
// once per tick.
func (e *Experiment) draw(trace []tick) ([]tick, error) {
	for at := range e.clock.Instants() {
		w, err := e.weather.Step(at.Month)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", at, err)
		}
		l, err := e.load.Step(at.Hour, at.Month)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", at, err)
		}
		trace = append(trace, tick{at: at, weather: w, load: l})
	}
	return trace, nil
}

func (e *Experiment) step(ctx context.Context, trace []tick, satisfied []int) error {
	if !e.cfg.Parallel || len(e.candidates) == 1 {
		for i := range e.candidates {
			n, err := e.serve(e.candidates[i], trace)
			if err != nil {
				return err
			}
			satisfied[i] = n
		}
		return nil
	}
	g, _ := errgroup.WithContext(ctx)
	if e.cfg.Workers > 0 {
		g.SetLimit(e.cfg.Workers)
	}
	for i := range e.candidates {
		g.Go(func() error {
			n, err := e.serve(e.candidates[i], trace)
			satisfied[i] = n
			return err
		})
	}
	return g.Wait()
}

// serve feeds the trace to one system and counts the satisfied ticks.
func (e *Experiment) serve(c Candidate, trace []tick) (int, error) {
	n := 0
	up := true
	for _, t := range trace {
		ok, err := c.System.Step(t.load, t.weather)
		if err != nil {
			return n, fmt.Errorf("%s at %s: %w", c.Name, t.at, err)
		}
		if ok {
			n++
		} else if up {
			e.log.Debugw("outage started", map[string]any{
				"system": c.Name,
				"at":     t.at.String(),
				"main":   c.System.Main(),
				"backup": c.System.Backup(),
				"load":   t.load,
			})
		}
		up = ok
	}
	return n, nil
}

// closeEpoch records the epoch of every candidate, publishes the events and
// resets the systems. A completed epoch is always recorded: publication
// outlives a canceled run context and only gives up after publishTimeout.
func (e *Experiment) closeEpoch(ctx context.Context, epoch, total int, satisfied []int, results []Result) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.publishTimeout)
	defer cancel()
	for i, c := range e.candidates {
		s := c.System
		ev := metrics.EpochEvent{
			RunID:             e.runID,
			System:            c.Name,
			Epoch:             epoch,
			Satisfied:         satisfied[i],
			Total:             total,
			Time:              e.now(),
			Efficiency:        percent(satisfied[i], total),
			EmbodiedFootprint: s.EmbodiedFootprint(),
			EpochFootprint:    s.EpochCarbonFootprint(),
			LifetimeFootprint: s.CarbonFootprint(),
			DischargedAh:      s.EpochDischargedAh(),
		}
		results[i].addEpoch(ev)
		e.log.Infof("epoch %d %s: efficiency %.2f%%, footprint %.1f kgCO2eq", epoch, c.Name, ev.Efficiency, ev.EpochFootprint)
		if e.bus != nil {
			if err := e.bus.PublishWait(pubCtx, ev); err != nil {
				e.log.Warnf("publish epoch %d of %s: %v", epoch, c.Name, err)
			}
		}
		if err := e.sink.RecordEpoch(ev); err != nil {
			e.log.Warnf("metrics sink: %v", err)
		}
		s.Reset()
	}
}

// finish computes the summaries and hands them to the sink.
func (e *Experiment) finish(results []Result) {
	rr, _ := e.sink.(metrics.RunRecorder)
	for i := range results {
		results[i].summarize()
		if rr == nil || results[i].Epochs() == 0 {
			continue
		}
		sum := results[i].Summary(e.runID, e.now())
		if err := rr.RecordRun(sum); err != nil {
			e.log.Warnf("metrics sink: %v", err)
		}
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
