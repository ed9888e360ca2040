package reveal

import (
	"log/slog"
	"math"
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/timing"
)

// Animator drives the displayed filled-cell count toward a target over a
// bounded duration. The displayed count is owned exclusively by the animator:
// at most one frame handle is in flight at any instant, enforced by always
// cancelling before starting, so two interpolation loops can never race to
// write the same count.
//
// Not safe for concurrent use; all calls must come from the event thread.
type Animator struct {
	sched   timing.FrameScheduler
	reduced bool
	onFrame func(displayed int)
	log     *slog.Logger

	displayed  int
	target     int
	total      int
	startValue int
	startTime  time.Time
	started    bool
	duration   time.Duration
	cancel     timing.CancelFunc
}

// New creates an idle animator. onFrame is invoked whenever the displayed
// count changes; it is optional.
func New(sched timing.FrameScheduler, reducedMotion bool, onFrame func(displayed int)) *Animator {
	return &Animator{
		sched:   sched,
		reduced: reducedMotion,
		onFrame: onFrame,
		log:     slog.With(config.LogKeyComponent, config.CompReveal),
	}
}

// Displayed returns the current displayed count.
func (a *Animator) Displayed() int {
	return a.displayed
}

// Target returns the current target count.
func (a *Animator) Target() int {
	return a.target
}

// Running reports whether an interpolation is in flight.
func (a *Animator) Running() bool {
	return a.cancel != nil
}

// Start begins a fresh reveal from zero toward target. It is the entry point
// for parameter changes and for the first entry into the visual step; any
// previous animation is cancelled first.
//
// Under a reduced-motion preference the displayed count jumps straight to the
// target with no intermediate samples.
func (a *Animator) Start(target, total int) {
	a.Stop()

	a.total = total
	a.target = clampTarget(target, total)
	a.startValue = 0
	a.started = false

	if a.reduced {
		a.log.Debug(config.MsgRevealSkip, config.LogKeyTarget, a.target)
		a.setDisplayed(a.target)
		return
	}

	a.setDisplayed(0)

	a.duration = revealDuration(a.target)
	a.log.Debug(config.MsgRevealStart,
		config.LogKeyTarget, a.target,
		config.LogKeyDuration, a.duration.Milliseconds(),
	)
	a.schedule()
}

// Retarget adjusts the target in place, typically when the live clock crosses
// a week boundary. It never resets the displayed count and never restarts an
// animation in progress: a running interpolation simply lands on the new
// value, and an idle animator snaps the one-cell difference directly.
func (a *Animator) Retarget(target, total int) {
	a.total = total
	t := clampTarget(target, total)
	if t == a.target {
		return
	}
	a.target = t

	if a.Running() {
		return
	}
	a.setDisplayed(t)
}

// SetReducedMotion switches the reduced-motion preference. It only affects
// subsequent Start calls; an animation already in flight finishes normally.
func (a *Animator) SetReducedMotion(v bool) {
	a.reduced = v
}

// Stop cancels the pending sample, if any. The displayed count keeps its
// last value; callers discard it together with the animator on teardown.
func (a *Animator) Stop() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

// schedule requests the next interpolation sample.
func (a *Animator) schedule() {
	a.cancel = a.sched.RequestFrame(func(now time.Time) {
		a.cancel = nil
		a.sample(now)
	})
}

// sample advances the interpolation by one display refresh.
func (a *Animator) sample(now time.Time) {
	if !a.started {
		a.startTime = now
		a.started = true
	}

	p := 1.0
	if a.duration > 0 {
		p = float64(now.Sub(a.startTime)) / float64(a.duration)
	}
	if p < 0 {
		p = 0
	}
	if p >= 1 {
		// Snap exactly to target and stop scheduling.
		a.setDisplayed(a.target)
		a.log.Debug(config.MsgRevealDone, config.LogKeyTarget, a.target)
		return
	}

	v := float64(a.startValue) + float64(a.target-a.startValue)*p
	a.setDisplayed(int(math.Round(v)))
	a.schedule()
}

func (a *Animator) setDisplayed(v int) {
	if v == a.displayed {
		return
	}
	a.displayed = v
	if a.onFrame != nil {
		a.onFrame(v)
	}
}

// revealDuration scales with the number of cells to fill, bounded both ways.
func revealDuration(target int) time.Duration {
	d := time.Duration(target) * config.RevealPerWeek
	if d < config.RevealMinDuration {
		return config.RevealMinDuration
	}
	if d > config.RevealMaxDuration {
		return config.RevealMaxDuration
	}
	return d
}

func clampTarget(target, total int) int {
	if target < 0 {
		return 0
	}
	if target > total {
		return total
	}
	return target
}
