package profile

import (
	"errors"
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/stats"
)

// Parameters are the user-selected inputs of the visualization: a birth date
// (date only, no time-of-day component) and an assumed life expectancy.
// The zero BirthDate means "not selected yet"; consumers render a placeholder
// instead of statistics in that case.
type Parameters struct {
	BirthDate       time.Time
	ExpectancyYears float64
}

// New builds Parameters from raw integer input, applying the degradation
// rules: month clamps to [1, 12], day clamps to the days of that month, and
// expectancy is defaulted/clamped. Invalid input never produces an error.
func New(year, month, day int, expectancyYears float64) Parameters {
	if month < config.MinMonth {
		month = config.MinMonth
	}
	if month > config.MaxMonth {
		month = config.MaxMonth
	}
	if day < 1 {
		day = 1
	}
	if max := DaysInMonth(year, time.Month(month)); day > max {
		day = max
	}

	return Parameters{
		BirthDate:       time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
		ExpectancyYears: stats.ClampExpectancy(expectancyYears),
	}
}

// Valid reports whether a birth date has been selected.
func (p Parameters) Valid() bool {
	return !p.BirthDate.IsZero()
}

// Equal compares the inputs that matter for the grid: a change here resets
// the reveal animation, a mere clock tick does not.
func (p Parameters) Equal(o Parameters) bool {
	return p.BirthDate.Equal(o.BirthDate) && p.ExpectancyYears == o.ExpectancyYears
}

// DaysInMonth returns the length of a month, leap years included.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseDate parses a birth date in any of the accepted layouts.
// Truncated year-less forms are rejected: lifespan arithmetic needs a year.
func ParseDate(value string) (time.Time, error) {
	layouts := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			// Strip any time-of-day component.
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errors.New(config.ErrDateParse)
}
