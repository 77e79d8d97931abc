// Package metrics defines the sinks that receive experiment results. A sink
// records one EpochEvent per system after every epoch and, when it also
// implements RunRecorder, one RunSummary per system at the end of a run.
// Sinks are built from configuration through a factory registry; several
// configured sinks are combined into a MultiSink.
package metrics
