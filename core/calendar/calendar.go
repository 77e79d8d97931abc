package calendar

import (
	"errors"
	"fmt"
)

const (
	HoursPerDay  = 24
	DaysPerYear  = 365
	MonthsInYear = 12
	// HoursPerYear is the number of ticks in one epoch.
	HoursPerYear = HoursPerDay * DaysPerYear
)

// DaysPerMonth is the non-leap calendar used by the simulation.
var DaysPerMonth = [MonthsInYear]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

var (
	// ErrInvalidMonth is returned for a month outside 1..12.
	ErrInvalidMonth = errors.New("invalid month")
	// ErrInvalidHour is returned for an hour outside 0..23.
	ErrInvalidHour = errors.New("invalid hour")
	// ErrInvalidDay is returned for a day outside 1..365.
	ErrInvalidDay = errors.New("invalid day")
)

// Instant is one simulated hour.
type Instant struct {
	Hour  int `json:"hour"`
	Day   int `json:"day"`
	Month int `json:"month"`
}

func (i Instant) String() string {
	return fmt.Sprintf("day %d (month %d) %02d:00", i.Day, i.Month, i.Hour)
}

// MonthOfDay returns the month (1..12) containing the given day of year.
func MonthOfDay(day int) (int, error) {
	if day < 1 || day > DaysPerYear {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}
	for m, n := range DaysPerMonth {
		if day <= n {
			return m + 1, nil
		}
		day -= n
	}
	// unreachable: DaysPerMonth sums to DaysPerYear
	return MonthsInYear, nil
}

// ValidateMonth reports ErrInvalidMonth for months outside 1..12.
func ValidateMonth(month int) error {
	if month < 1 || month > MonthsInYear {
		return fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	return nil
}

// ValidateHour reports ErrInvalidHour for hours outside 0..23.
func ValidateHour(hour int) error {
	if hour < 0 || hour >= HoursPerDay {
		return fmt.Errorf("%w: %d", ErrInvalidHour, hour)
	}
	return nil
}
