package power

import "errors"

var (
	// ErrInvalidPanel is returned for non-physical panel values.
	ErrInvalidPanel = errors.New("invalid panel")
	// ErrUnknownCountry is returned when a country has no footprint entry.
	ErrUnknownCountry = errors.New("unknown production country")
	// ErrUnknownMaterial is returned when a material has no footprint entry.
	ErrUnknownMaterial = errors.New("unknown panel material")
	// ErrUnreachableRecovery is returned when the high threshold does not
	// exceed the active load, so the main battery could never serve again.
	ErrUnreachableRecovery = errors.New("high threshold must exceed the active load current")
	// ErrDoubleTransition signals a second battery switch within one step.
	// It can only happen with inconsistent thresholds.
	ErrDoubleTransition = errors.New("second battery transition within one step")
	// ErrInvalidLoad is returned for negative or NaN load currents.
	ErrInvalidLoad = errors.New("invalid load current")
)
