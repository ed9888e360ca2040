package timing

import (
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// CancelFunc revokes a scheduled callback. Calling it after the callback has
// fired, or calling it twice, is a no-op. Every scheduled callback has exactly
// one owner, and the owner must cancel it when its dependency set changes or
// when the owner is torn down.
type CancelFunc func()

// Scheduler provides owned one-shot timers for cooperative sequencing.
type Scheduler interface {
	// AfterFunc runs fn once after d has elapsed, unless cancelled first.
	AfterFunc(d time.Duration, fn func()) CancelFunc
}

// FrameScheduler delivers a callback on the next display refresh.
// Callbacks receive the refresh instant so that a whole cycle observes a
// single consistent "now".
type FrameScheduler interface {
	RequestFrame(fn func(now time.Time)) CancelFunc
}

// EventScheduler combines one-shot timers and per-refresh frames; it is what
// the UI layer injects into the wizard controller and the reveal animator.
type EventScheduler interface {
	Scheduler
	FrameScheduler
}

// RealScheduler implements Scheduler and FrameScheduler on top of the runtime
// timer wheel. When Notify is set, callbacks are trampolined through it so the
// UI toolkit can marshal them onto its event thread; the cooperative
// single-writer discipline of the callers depends on that serialization.
type RealScheduler struct {
	Clock       Clock
	FramePeriod time.Duration

	// Notify, when non-nil, runs fn on the designated event thread
	// (e.g. fyne.Do). Nil means callbacks run on the timer goroutine.
	Notify func(fn func())
}

// NewRealScheduler builds a scheduler with the standard refresh cadence.
func NewRealScheduler(notify func(fn func())) *RealScheduler {
	return &RealScheduler{
		Clock:       RealClock{},
		FramePeriod: config.FramePeriod,
		Notify:      notify,
	}
}

// AfterFunc implements Scheduler.
func (s *RealScheduler) AfterFunc(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, func() { s.dispatch(fn) })
	return func() { t.Stop() }
}

// RequestFrame implements FrameScheduler. The next refresh is one frame
// period away; the callback samples the clock at dispatch time.
func (s *RealScheduler) RequestFrame(fn func(now time.Time)) CancelFunc {
	return s.AfterFunc(s.FramePeriod, func() {
		fn(s.Clock.Now())
	})
}

func (s *RealScheduler) dispatch(fn func()) {
	if s.Notify != nil {
		s.Notify(fn)
		return
	}
	fn()
}
