package calendar

import "iter"

// Clock produces the instants of one synthetic year. The zero value yields
// every hour of the year.
type Clock struct {
	months [MonthsInYear + 1]bool
	filter bool
}

// ClockOption configures a Clock.
type ClockOption func(*Clock)

// WithMonths restricts the clock to the given months. Instants of other months
// are skipped. Months outside 1..12 are ignored.
func WithMonths(months ...int) ClockOption {
	return func(c *Clock) {
		for _, m := range months {
			if m >= 1 && m <= MonthsInYear {
				c.months[m] = true
				c.filter = true
			}
		}
	}
}

// NewClock returns a Clock with the provided options applied.
func NewClock(opts ...ClockOption) Clock {
	var c Clock
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Includes reports whether instants of month are produced.
func (c Clock) Includes(month int) bool {
	if month < 1 || month > MonthsInYear {
		return false
	}
	return !c.filter || c.months[month]
}

// Len returns the number of instants yielded by one traversal.
func (c Clock) Len() int {
	n := 0
	for m, days := range DaysPerMonth {
		if c.Includes(m + 1) {
			n += days * HoursPerDay
		}
	}
	return n
}

// Instants returns the year as a lazy sequence. Every traversal starts again
// at hour 0 of day 1 in January.
func (c Clock) Instants() iter.Seq[Instant] {
	return func(yield func(Instant) bool) {
		day := 1
		for m, days := range DaysPerMonth {
			month := m + 1
			if !c.Includes(month) {
				day += days
				continue
			}
			for d := 0; d < days; d++ {
				for h := 0; h < HoursPerDay; h++ {
					if !yield(Instant{Hour: h, Day: day + d, Month: month}) {
						return
					}
				}
			}
			day += days
		}
	}
}
