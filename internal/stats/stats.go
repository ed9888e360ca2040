package stats

import (
	"math"
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// Stats is the snapshot of life statistics for one observation instant.
// It is recomputed from scratch on every tick and never mutated in place.
type Stats struct {
	// Age is the elapsed time since birth. Negative if the birth instant
	// lies in the future; that case is not rejected.
	Age time.Duration

	// Left is the remaining time until the expectancy horizon, floored at zero.
	Left time.Duration

	// AgeYears and LeftYears express the same values in tropical years.
	AgeYears  float64
	LeftYears float64

	// Percent is the share of the expected lifespan already lived, in [0, 100].
	Percent float64

	// LeftParts is the integer decomposition of Left using fixed 24-hour days.
	LeftParts Parts

	// TotalWeeks is the size of the week grid: round(expectancy × 52).
	TotalWeeks int

	// LivedWeeks is the number of filled cells, clamped to [0, TotalWeeks].
	LivedWeeks int

	// ExpectancyYears is the effective expectancy after defaulting and clamping.
	ExpectancyYears float64
}

// Parts breaks a remaining duration into calendar-free display units.
type Parts struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Compute derives the full statistics snapshot for the given inputs.
// It is pure and deterministic: identical inputs always yield identical output.
// An expectancy of zero or NaN falls back to the default before clamping.
func Compute(birth, now time.Time, expectancyYears float64) Stats {
	expectancy := ClampExpectancy(expectancyYears)

	age := now.Sub(birth)
	ageYears := float64(age) / float64(config.TropicalYear)

	leftYears := expectancy - ageYears
	if leftYears < 0 {
		leftYears = 0
	}

	left := time.Duration(expectancy*float64(config.TropicalYear)) - age
	if left < 0 {
		left = 0
	}

	totalWeeks := int(math.Round(expectancy * config.WeeksPerYear))
	livedWeeks := int(math.Floor(ageYears * config.WeeksPerYear))
	if livedWeeks < 0 {
		livedWeeks = 0
	}
	if livedWeeks > totalWeeks {
		livedWeeks = totalWeeks
	}

	percent := ageYears / expectancy * 100
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	return Stats{
		Age:             age,
		Left:            left,
		AgeYears:        ageYears,
		LeftYears:       leftYears,
		Percent:         percent,
		LeftParts:       splitDuration(left),
		TotalWeeks:      totalWeeks,
		LivedWeeks:      livedWeeks,
		ExpectancyYears: expectancy,
	}
}

// ClampExpectancy applies the defaulting and clamping rules for expectancy input.
// Zero and NaN mean "not provided" and yield the default.
func ClampExpectancy(years float64) float64 {
	if years == 0 || math.IsNaN(years) {
		years = config.DefaultExpectancyYears
	}
	if years < config.MinExpectancyYears {
		return config.MinExpectancyYears
	}
	if years > config.MaxExpectancyYears {
		return config.MaxExpectancyYears
	}
	return years
}

// splitDuration decomposes a non-negative duration into days/hours/minutes/seconds
// using fixed 24-hour days. No calendar or timezone awareness is intended.
func splitDuration(d time.Duration) Parts {
	secs := int(d / time.Second)

	const (
		secsPerMinute = config.SecondsPerMinute
		secsPerHour   = secsPerMinute * config.MinutesPerHour
		secsPerDay    = secsPerHour * config.HoursPerDay
	)

	p := Parts{Days: secs / secsPerDay}
	secs %= secsPerDay
	p.Hours = secs / secsPerHour
	secs %= secsPerHour
	p.Minutes = secs / secsPerMinute
	p.Seconds = secs % secsPerMinute
	return p
}
