package timing

import (
	"sort"
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// ManualClock is a Clock whose time only moves when told to.
type ManualClock struct {
	Current time.Time
}

// Now returns the frozen instant.
func (c *ManualClock) Now() time.Time {
	return c.Current
}

// Advance moves the clock forward.
func (c *ManualClock) Advance(d time.Duration) {
	c.Current = c.Current.Add(d)
}

// ManualScheduler is a deterministic Scheduler/FrameScheduler for tests.
// Callbacks fire synchronously, in due-time order, when Advance is called.
// The clock is set to each callback's due instant before it runs, so frame
// callbacks observe the exact refresh time they would see in production.
type ManualScheduler struct {
	Clock       *ManualClock
	FramePeriod time.Duration

	queue []*manualEntry
	seq   int
}

type manualEntry struct {
	due       time.Time
	seq       int
	fn        func(now time.Time)
	cancelled bool
}

// NewManualScheduler creates a scheduler frozen at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{
		Clock:       &ManualClock{Current: start},
		FramePeriod: config.FramePeriod,
	}
}

// AfterFunc implements Scheduler.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) CancelFunc {
	return s.add(d, func(time.Time) { fn() })
}

// RequestFrame implements FrameScheduler.
func (s *ManualScheduler) RequestFrame(fn func(now time.Time)) CancelFunc {
	return s.add(s.FramePeriod, fn)
}

func (s *ManualScheduler) add(d time.Duration, fn func(now time.Time)) CancelFunc {
	e := &manualEntry{
		due: s.Clock.Current.Add(d),
		seq: s.seq,
		fn:  fn,
	}
	s.seq++
	s.queue = append(s.queue, e)
	return func() { e.cancelled = true }
}

// Advance moves time forward by d, firing every due callback in order.
// Callbacks scheduled while advancing fire too if they fall within the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.Clock.Current.Add(d)

	for {
		e := s.popDue(target)
		if e == nil {
			break
		}
		if !e.due.Before(s.Clock.Current) {
			s.Clock.Current = e.due
		}
		e.fn(s.Clock.Current)
	}

	s.Clock.Current = target
}

// Pending counts callbacks that are scheduled and not cancelled.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, e := range s.queue {
		if !e.cancelled {
			n++
		}
	}
	return n
}

// popDue removes and returns the earliest non-cancelled entry due at or
// before target, or nil if none remains.
func (s *ManualScheduler) popDue(target time.Time) *manualEntry {
	sort.SliceStable(s.queue, func(i, j int) bool {
		if s.queue[i].due.Equal(s.queue[j].due) {
			return s.queue[i].seq < s.queue[j].seq
		}
		return s.queue[i].due.Before(s.queue[j].due)
	})

	for i, e := range s.queue {
		if e.cancelled {
			continue
		}
		if e.due.After(target) {
			return nil
		}
		s.queue = append(s.queue[:i], s.queue[i+1:]...)
		return e
	}
	return nil
}
