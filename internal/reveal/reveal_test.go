package reveal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/timing"
)

func newAnimator(t *testing.T, reduced bool) (*Animator, *timing.ManualScheduler, *[]int) {
	t.Helper()
	sched := timing.NewManualScheduler(time.Date(2025, 8, 25, 12, 0, 0, 0, time.UTC))
	var frames []int
	a := New(sched, reduced, func(v int) { frames = append(frames, v) })
	t.Cleanup(a.Stop)
	return a, sched, &frames
}

// run drives the scheduler until the animation finishes or the deadline passes.
func run(sched *timing.ManualScheduler, a *Animator, max time.Duration) {
	deadline := sched.Clock.Current.Add(max)
	for a.Running() && sched.Clock.Current.Before(deadline) {
		sched.Advance(config.FramePeriod)
	}
}

func TestAnimator_LandsExactlyOnTarget(t *testing.T) {
	a, sched, _ := newAnimator(t, false)

	a.Start(1043, 4264)
	run(sched, a, 10*time.Second)

	assert.False(t, a.Running())
	assert.Equal(t, 1043, a.Displayed(), "must snap exactly to target")
}

func TestAnimator_Monotonic(t *testing.T) {
	a, sched, frames := newAnimator(t, false)

	a.Start(2000, 4264)
	run(sched, a, 10*time.Second)

	prev := -1
	for _, v := range *frames {
		assert.GreaterOrEqual(t, v, prev, "displayed count must never decrease within a run")
		prev = v
	}
	assert.Equal(t, 2000, prev)
}

func TestAnimator_DurationPolicy(t *testing.T) {
	tests := []struct {
		name   string
		target int
		want   time.Duration
	}{
		{"Small_Target_Floors", 10, config.RevealMinDuration},
		{"Zero_Target_Floors", 0, config.RevealMinDuration},
		{"Scales_With_Target", 300, 300 * config.RevealPerWeek},
		{"Large_Target_Caps", 5000, config.RevealMaxDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, revealDuration(tt.target))
		})
	}
}

func TestAnimator_ReducedMotionSkipsInterpolation(t *testing.T) {
	a, sched, frames := newAnimator(t, true)

	a.Start(1500, 4264)

	assert.False(t, a.Running(), "no frame may be scheduled under reduced motion")
	assert.Equal(t, 1500, a.Displayed())
	assert.Equal(t, []int{1500}, *frames, "target reached with zero intermediate samples")
	assert.Equal(t, 0, sched.Pending())
}

func TestAnimator_StartCancelsPrevious(t *testing.T) {
	a, sched, _ := newAnimator(t, false)

	a.Start(1000, 4264)
	sched.Advance(10 * config.FramePeriod)
	assert.True(t, a.Running())

	// Parameter change: fresh reveal from zero toward the new target.
	a.Start(500, 2000)
	assert.Equal(t, 0, a.Displayed(), "restart resets the fill to zero")
	assert.Equal(t, 1, sched.Pending(), "exactly one live frame handle after restart")

	run(sched, a, 10*time.Second)
	assert.Equal(t, 500, a.Displayed())
}

func TestAnimator_RetargetDoesNotRestart(t *testing.T) {
	a, sched, frames := newAnimator(t, false)

	a.Start(1000, 4264)
	sched.Advance(20 * config.FramePeriod)
	mid := a.Displayed()
	assert.Greater(t, mid, 0)

	// A week boundary crossed on a live tick: target moves up by one.
	a.Retarget(1001, 4264)
	assert.True(t, a.Running())

	run(sched, a, 10*time.Second)
	assert.Equal(t, 1001, a.Displayed())

	prev := -1
	for _, v := range *frames {
		assert.GreaterOrEqual(t, v, prev, "retarget must not disturb monotonic progress")
		prev = v
	}
}

func TestAnimator_RetargetWhileIdleSnaps(t *testing.T) {
	a, sched, _ := newAnimator(t, false)

	a.Start(1000, 4264)
	run(sched, a, 10*time.Second)
	assert.Equal(t, 1000, a.Displayed())

	a.Retarget(1001, 4264)
	assert.Equal(t, 1001, a.Displayed(), "idle animator snaps the one-cell difference")
	assert.False(t, a.Running(), "no animation restarted by a live tick")
}

func TestAnimator_RetargetSameTargetIsNoop(t *testing.T) {
	a, sched, frames := newAnimator(t, false)

	a.Start(800, 4264)
	run(sched, a, 10*time.Second)
	n := len(*frames)

	a.Retarget(800, 4264)
	assert.Equal(t, n, len(*frames))
	assert.Equal(t, 0, sched.Pending())
}

func TestAnimator_TargetClamped(t *testing.T) {
	a, sched, _ := newAnimator(t, false)

	a.Start(9999, 4264)
	run(sched, a, 10*time.Second)
	assert.Equal(t, 4264, a.Displayed(), "target clamps to the grid size")

	a.Start(-5, 4264)
	run(sched, a, 10*time.Second)
	assert.Equal(t, 0, a.Displayed())
}

func TestAnimator_StopCancelsPendingSample(t *testing.T) {
	a, sched, _ := newAnimator(t, false)

	a.Start(1000, 4264)
	sched.Advance(5 * config.FramePeriod)
	mid := a.Displayed()

	a.Stop()
	assert.False(t, a.Running())
	assert.Equal(t, 0, sched.Pending(), "teardown leaves no stray sample")

	sched.Advance(10 * time.Second)
	assert.Equal(t, mid, a.Displayed(), "no further writes after Stop")
}
