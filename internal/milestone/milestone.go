package milestone

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/profile"
	"github.com/tartampluch/go-lifeweeks/internal/stats"
	"github.com/tartampluch/go-lifeweeks/internal/timing"
)

// Generator renders the life-milestone calendar: birthday anniversaries
// around "now", round lived-week marks, the half-life point and the expected
// horizon. The feed gives the week grid a counterpart that calendar apps can
// subscribe to.
type Generator struct {
	Clock timing.Clock // Interface for time mocking.
}

// Build produces the ICS document for the given parameters.
func (g *Generator) Build(params profile.Parameters) ([]byte, error) {
	if !params.Valid() {
		return nil, errors.New(config.ErrNoProfile)
	}

	log := slog.With(config.LogKeyComponent, config.CompMilestone)
	now := g.Clock.Now()
	expectancy := stats.ClampExpectancy(params.ExpectancyYears)

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	count := 0
	add := func(e *ical.Event) {
		e.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, e.Component)
		count++
	}

	for _, e := range g.anniversaryEvents(params.BirthDate, expectancy, now) {
		add(e)
	}
	for _, e := range g.weekEvents(params.BirthDate, expectancy, now) {
		add(e)
	}
	add(newEvent("half", params.BirthDate.Add(time.Duration(expectancy/2*float64(config.TropicalYear))),
		config.FallbackMilestoneHalf))
	add(newEvent("end", params.BirthDate.Add(time.Duration(expectancy*float64(config.TropicalYear))),
		config.FallbackMilestoneEnd))

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	log.Info(config.MsgFeedRebuilt, config.LogKeyCount, count)
	return buf.Bytes(), nil
}

// anniversaryEvents covers the previous, current and next calendar year, so a
// subscriber scrolling their calendar sees neighbours without a re-sync.
func (g *Generator) anniversaryEvents(birth time.Time, expectancy float64, now time.Time) []*ical.Event {
	var events []*ical.Event
	total := int(expectancy)

	for y := now.Year() - 1; y <= now.Year()+1; y++ {
		if y < birth.Year() {
			continue
		}
		age := y - birth.Year()
		date := time.Date(y, birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
		events = append(events,
			newEvent(fmt.Sprintf("bday-%d", y), date,
				fmt.Sprintf(config.FallbackMilestoneBday, age, total)))
	}
	return events
}

// weekEvents marks every MilestoneWeekStep-th lived week that falls inside
// the anniversary window.
func (g *Generator) weekEvents(birth time.Time, expectancy float64, now time.Time) []*ical.Event {
	var events []*ical.Event

	windowStart := time.Date(now.Year()-1, 1, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(now.Year()+2, 1, 1, 0, 0, 0, 0, time.UTC)
	// Rounded, matching the week count the grid is sized with.
	totalWeeks := int(math.Round(expectancy * config.WeeksPerYear))

	for week := config.MilestoneWeekStep; week <= totalWeeks; week += config.MilestoneWeekStep {
		date := birth.Add(time.Duration(week) * 7 * config.HoursPerDay * time.Hour)
		if date.Before(windowStart) || !date.Before(windowEnd) {
			continue
		}
		events = append(events,
			newEvent(fmt.Sprintf("week-%d", week), date,
				fmt.Sprintf(config.FallbackMilestoneWeek, week)))
	}
	return events
}

// newEvent builds a full-day event with a deterministic UID, stable across
// rebuilds so subscribers do not see duplicates.
func newEvent(kind string, date time.Time, summary string) *ical.Event {
	input := fmt.Sprintf(config.FormatHashInput, kind, date.Format(config.DateFormatFullDash), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	uid := fmt.Sprintf("%x", hash[:config.UIDHashLength])

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uid, kind, config.ICalDomain))
	event.Props.SetText(config.PropSummary, summary)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(date)
	event.Props.Set(dtStartProp)

	return event
}
