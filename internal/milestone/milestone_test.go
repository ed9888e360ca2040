package milestone

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeweeks/internal/profile"
	"github.com/tartampluch/go-lifeweeks/internal/timing"
)

func fixedGenerator(now time.Time) *Generator {
	return &Generator{Clock: &timing.ManualClock{Current: now}}
}

func TestBuild_RequiresBirthDate(t *testing.T) {
	g := fixedGenerator(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	_, err := g.Build(profile.Parameters{ExpectancyYears: 82})
	assert.Error(t, err)
}

func TestBuild_ContainsAnniversaryWindow(t *testing.T) {
	g := fixedGenerator(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	ics, err := g.Build(profile.New(1990, 10, 25, 82))
	require.NoError(t, err)

	s := string(ics)
	assert.Contains(t, s, "BEGIN:VCALENDAR")
	assert.Contains(t, s, "X-WR-CALNAME:Life Milestones")

	// Previous, current and next year anniversaries.
	assert.Contains(t, s, "DTSTART;VALUE=DATE:20241025")
	assert.Contains(t, s, "DTSTART;VALUE=DATE:20251025")
	assert.Contains(t, s, "DTSTART;VALUE=DATE:20261025")
	assert.Contains(t, s, "SUMMARY:Birthday: year 35 of 82")
}

func TestBuild_SkipsAnniversariesBeforeBirth(t *testing.T) {
	// Born mid-window: no event for the year before birth.
	g := fixedGenerator(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	ics, err := g.Build(profile.New(2025, 5, 1, 82))
	require.NoError(t, err)

	s := string(ics)
	assert.NotContains(t, s, "DTSTART;VALUE=DATE:20240501")
	assert.Contains(t, s, "DTSTART;VALUE=DATE:20250501")
}

func TestBuild_RoundWeekMilestones(t *testing.T) {
	// Week 2000 of someone born 1987-05-20 lands in 2025, inside the window.
	g := fixedGenerator(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	ics, err := g.Build(profile.New(1987, 5, 20, 82))
	require.NoError(t, err)

	s := string(ics)
	assert.Contains(t, s, "SUMMARY:Week 2000 of your life")
	assert.NotContains(t, s, "SUMMARY:Week 1000 of your life",
		"week 1000 lies outside the three-year window")
}

func TestBuild_WeekHorizonRoundsExpectancy(t *testing.T) {
	// 38.46 years is 1999.92 weeks; the horizon rounds up to week 2000, the
	// same count the grid is sized with. Truncation would drop the event.
	g := fixedGenerator(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	ics, err := g.Build(profile.New(1987, 5, 20, 38.46))
	require.NoError(t, err)

	assert.Contains(t, string(ics), "SUMMARY:Week 2000 of your life")
}

func TestBuild_HalfAndHorizonAlwaysPresent(t *testing.T) {
	g := fixedGenerator(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	ics, err := g.Build(profile.New(1990, 1, 1, 80))
	require.NoError(t, err)

	s := string(ics)
	assert.Contains(t, s, "SUMMARY:Half-life point")
	assert.Contains(t, s, "SUMMARY:Expected horizon")
}

func TestBuild_DeterministicUIDs(t *testing.T) {
	g := fixedGenerator(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	params := profile.New(1990, 10, 25, 82)

	a, err := g.Build(params)
	require.NoError(t, err)
	b, err := g.Build(params)
	require.NoError(t, err)

	assert.Equal(t, string(a), string(b), "rebuilds must not churn UIDs")
	assert.Contains(t, string(a), "@golifeweeks")
	assert.GreaterOrEqual(t, strings.Count(string(a), "BEGIN:VEVENT"), 5)
}
