package weather

import "errors"

var (
	// ErrDatasetTooSmall is returned when fewer than two observations are
	// available, so no transition can be counted.
	ErrDatasetTooSmall = errors.New("weather dataset needs at least two observations")
	// ErrInvalidReading is returned for NaN or infinite readings.
	ErrInvalidReading = errors.New("invalid weather reading")
	// ErrInvalidBins is returned when a grid axis has no bins.
	ErrInvalidBins = errors.New("grid bins must be positive")
	// ErrNilSource is returned when no random source is provided.
	ErrNilSource = errors.New("random source is required")
)
