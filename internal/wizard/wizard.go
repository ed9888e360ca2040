package wizard

import (
	"log/slog"
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/timing"
)

// Step identifies one page of the input wizard.
type Step int

const (
	// StepCollect is the single collection page of the immediate policy.
	StepCollect Step = iota
	StepYear
	StepMonth
	StepDay
	StepPrep
	StepVisual
)

// String returns the step name used in logs.
func (s Step) String() string {
	switch s {
	case StepCollect:
		return "collect"
	case StepYear:
		return "year"
	case StepMonth:
		return "month"
	case StepDay:
		return "day"
	case StepPrep:
		return "prep"
	case StepVisual:
		return "visual"
	default:
		return "unknown"
	}
}

// Policy selects how the wizard stages its reveal. The staged policy walks
// the full year/month/day/prep sequence with animated transitions; the
// immediate policy is the degenerate two-state machine (collect → visual)
// with no transition delays.
type Policy int

const (
	PolicyStaged Policy = iota
	PolicyImmediate
)

// Callbacks receive phase notifications. All callbacks are optional and are
// invoked on the scheduler's event thread.
type Callbacks struct {
	// OnLeave fires when the current step starts visually exiting.
	OnLeave func(from Step)

	// OnEnter fires when the target step replaces the old one.
	OnEnter func(to Step)

	// OnSettle fires once the entered step has settled; the controller
	// accepts new transitions from this point on.
	OnSettle func(to Step)

	// OnPrepFade fires when the interlude message should fade out.
	OnPrepFade func()
}

// Controller sequences the wizard steps with timed, single-flight transitions.
// It owns every timer it schedules: a timer is cancelled the moment the state
// that scheduled it is invalidated, and unconditionally on Close.
//
// Not safe for concurrent use; all calls must come from the event thread.
type Controller struct {
	policy Policy
	sched  timing.Scheduler
	cb     Callbacks
	log    *slog.Logger

	step     Step
	inFlight bool
	closed   bool

	swapCancel   timing.CancelFunc
	settleCancel timing.CancelFunc
	fadeCancel   timing.CancelFunc
	autoCancel   timing.CancelFunc
}

// New creates a controller resting on the first step of its policy.
func New(policy Policy, sched timing.Scheduler, cb Callbacks) *Controller {
	first := StepYear
	if policy == PolicyImmediate {
		first = StepCollect
	}
	return &Controller{
		policy: policy,
		sched:  sched,
		cb:     cb,
		log:    slog.With(config.LogKeyComponent, config.CompWizard),
		step:   first,
	}
}

// Step returns the current step.
func (c *Controller) Step() Step {
	return c.step
}

// Policy returns the reveal policy the controller was built with.
func (c *Controller) Policy() Policy {
	return c.policy
}

// InFlight reports whether a transition is currently running.
func (c *Controller) InFlight() bool {
	return c.inFlight
}

// GoToStep requests a transition. The request is ignored (returning false)
// if the target equals the current step, a transition is already in flight,
// or the target would skip forward past the next step. There is no queuing
// and no interruption.
func (c *Controller) GoToStep(target Step) bool {
	if c.closed {
		return false
	}
	if target == c.step || c.inFlight {
		c.log.Debug(config.MsgWizardIgnored,
			config.LogKeyFrom, c.step.String(),
			config.LogKeyTarget, target.String(),
			config.LogKeyReason, c.ignoreReason(target),
		)
		return false
	}
	if !c.allowed(target) {
		c.log.Debug(config.MsgWizardIgnored,
			config.LogKeyFrom, c.step.String(),
			config.LogKeyTarget, target.String(),
			config.LogKeyReason, "forward skip",
		)
		return false
	}

	c.log.Debug(config.MsgWizardMove,
		config.LogKeyFrom, c.step.String(),
		config.LogKeyTarget, target.String(),
	)

	// Leaving prep invalidates its one-shot timers immediately; otherwise the
	// auto-advance could fire mid-transition and violate single-flight.
	c.cancelPrepTimers()

	c.inFlight = true
	if c.cb.OnLeave != nil {
		c.cb.OnLeave(c.step)
	}

	c.swapCancel = c.sched.AfterFunc(c.leaveDuration(), func() {
		c.swapCancel = nil
		c.swap(target)
	})
	return true
}

// Reset moves the controller straight to the target step with no transition
// phases, used to restore a saved session at startup. Ignored while a
// transition is in flight.
func (c *Controller) Reset(target Step) {
	if c.closed || c.inFlight || target == c.step {
		return
	}
	c.cancelPrepTimers()
	c.step = target
	if c.cb.OnEnter != nil {
		c.cb.OnEnter(target)
	}
}

// Close cancels every pending timer. The controller accepts no further
// transitions afterwards.
func (c *Controller) Close() {
	c.closed = true
	cancelAll(&c.swapCancel, &c.settleCancel, &c.fadeCancel, &c.autoCancel)
}

// swap replaces the current step and begins the enter phase.
func (c *Controller) swap(target Step) {
	c.step = target
	if c.cb.OnEnter != nil {
		c.cb.OnEnter(target)
	}

	if target == StepPrep {
		c.schedulePrepTimers()
	}

	c.settleCancel = c.sched.AfterFunc(c.settleDelay(), func() {
		c.settleCancel = nil
		c.inFlight = false
		if c.cb.OnSettle != nil {
			c.cb.OnSettle(target)
		}
	})
}

// schedulePrepTimers arms the interlude's fade-out and auto-advance.
func (c *Controller) schedulePrepTimers() {
	c.fadeCancel = c.sched.AfterFunc(config.PrepFadeDelay, func() {
		c.fadeCancel = nil
		if c.cb.OnPrepFade != nil {
			c.cb.OnPrepFade()
		}
	})
	c.autoCancel = c.sched.AfterFunc(config.PrepAdvanceDelay, func() {
		c.autoCancel = nil
		c.GoToStep(StepVisual)
	})
}

func (c *Controller) cancelPrepTimers() {
	cancelAll(&c.fadeCancel, &c.autoCancel)
}

// allowed rejects forward jumps that skip a step. Backward navigation,
// including from visual to any collection step, is always permitted.
func (c *Controller) allowed(target Step) bool {
	order := c.order()
	cur, tgt := -1, -1
	for i, s := range order {
		if s == c.step {
			cur = i
		}
		if s == target {
			tgt = i
		}
	}
	if tgt < 0 || cur < 0 {
		return false
	}
	return tgt <= cur+1
}

func (c *Controller) order() []Step {
	if c.policy == PolicyImmediate {
		return []Step{StepCollect, StepVisual}
	}
	return []Step{StepYear, StepMonth, StepDay, StepPrep, StepVisual}
}

func (c *Controller) leaveDuration() time.Duration {
	if c.policy == PolicyImmediate {
		return 0
	}
	return config.WizardLeaveDuration
}

func (c *Controller) settleDelay() time.Duration {
	if c.policy == PolicyImmediate {
		return 0
	}
	return config.WizardEnterSettle
}

func (c *Controller) ignoreReason(target Step) string {
	if target == c.step {
		return "same step"
	}
	return "transition in flight"
}

func cancelAll(cancels ...*timing.CancelFunc) {
	for _, cf := range cancels {
		if *cf != nil {
			(*cf)()
			*cf = nil
		}
	}
}
