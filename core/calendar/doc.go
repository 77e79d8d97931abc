// Package calendar provides the synthetic, non-leap simulation year.
//
// A Clock yields one Instant per simulated hour: 24 hours for each of the 365
// days, with the month derived from the day through DaysPerMonth. Season maps
// months onto the four meteorological seasons used by the weather and load
// models.
package calendar
