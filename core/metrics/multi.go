package metrics

import "errors"

// MultiSink fans out events to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordEpoch forwards the event to every sink. All sinks are tried; the
// errors are joined.
func (m *MultiSink) RecordEpoch(ev EpochEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordEpoch(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordRun forwards the summary to sinks implementing RunRecorder.
func (m *MultiSink) RecordRun(sum RunSummary) error {
	var errs []error
	for _, s := range m.Sinks {
		if rr, ok := s.(RunRecorder); ok {
			if err := rr.RecordRun(sum); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// RunsOnly forwards run summaries to Sink and drops epoch events. It is used
// when an event collector already delivers the epochs to the same sink.
type RunsOnly struct {
	Sink MetricsSink
}

func (RunsOnly) RecordEpoch(EpochEvent) error { return nil }

func (r RunsOnly) RecordRun(sum RunSummary) error {
	if rr, ok := r.Sink.(RunRecorder); ok {
		return rr.RecordRun(sum)
	}
	return nil
}

// Close releases every sink, descending into MultiSink, that has a Close
// method.
func Close(s MetricsSink) {
	switch v := s.(type) {
	case *MultiSink:
		for _, inner := range v.Sinks {
			Close(inner)
		}
	case interface{ Close() }:
		v.Close()
	case interface{ Close() error }:
		_ = v.Close()
	}
}
