// Package eco keeps per-epoch footprint records of simulated systems.
package eco

// Store persists ecological records.
type Store interface {
	Add(Record) error
	// Query returns the records of system for epochs in [from, to].
	Query(system string, from, to int) ([]Record, error)
	Systems() ([]string, error)
}
