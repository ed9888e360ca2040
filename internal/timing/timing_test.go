package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

func start() time.Time {
	return time.Date(2025, 8, 25, 12, 0, 0, 0, time.UTC)
}

func TestManualScheduler_FiresInOrder(t *testing.T) {
	s := NewManualScheduler(start())

	var order []string
	s.AfterFunc(30*time.Millisecond, func() { order = append(order, "b") })
	s.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	s.AfterFunc(50*time.Millisecond, func() { order = append(order, "c") })

	s.Advance(40 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order, "only due callbacks fire, earliest first")

	s.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 0, s.Pending())
}

func TestManualScheduler_CancelPreventsFiring(t *testing.T) {
	s := NewManualScheduler(start())

	fired := false
	cancel := s.AfterFunc(10*time.Millisecond, func() { fired = true })
	cancel()
	cancel() // double cancel is a no-op

	s.Advance(time.Second)
	assert.False(t, fired)
}

func TestManualScheduler_FrameCallbackSeesDueInstant(t *testing.T) {
	s := NewManualScheduler(start())

	var seen time.Time
	s.RequestFrame(func(now time.Time) { seen = now })

	s.Advance(time.Second)
	assert.Equal(t, start().Add(s.FramePeriod), seen,
		"frame callback must observe the refresh instant, not the advance target")
}

func TestFrameLoop_SelfReschedules(t *testing.T) {
	s := NewManualScheduler(start())
	loop := NewFrameLoop(s)

	ticks := 0
	loop.Start(func(time.Time) { ticks++ })

	s.Advance(5 * config.FramePeriod)
	assert.Equal(t, 5, ticks, "one tick per frame period")
	assert.True(t, loop.Running())
}

func TestFrameLoop_StopCancelsPendingFrame(t *testing.T) {
	s := NewManualScheduler(start())
	loop := NewFrameLoop(s)

	ticks := 0
	loop.Start(func(time.Time) { ticks++ })
	loop.Stop()

	s.Advance(10 * config.FramePeriod)
	assert.Equal(t, 0, ticks)
	assert.False(t, loop.Running())
	assert.Equal(t, 0, s.Pending(), "no stray handle may survive Stop")
}

func TestFrameLoop_StopFromWithinTick(t *testing.T) {
	s := NewManualScheduler(start())
	loop := NewFrameLoop(s)

	ticks := 0
	loop.Start(func(time.Time) {
		ticks++
		if ticks == 3 {
			loop.Stop()
		}
	})

	s.Advance(10 * config.FramePeriod)
	assert.Equal(t, 3, ticks, "loop must not reschedule after stopping itself")
}

func TestFrameLoop_RestartReplacesCallback(t *testing.T) {
	s := NewManualScheduler(start())
	loop := NewFrameLoop(s)

	first, second := 0, 0
	loop.Start(func(time.Time) { first++ })
	s.Advance(config.FramePeriod)

	loop.Start(func(time.Time) { second++ })
	s.Advance(2 * config.FramePeriod)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
	assert.Equal(t, 1, s.Pending(), "exactly one live handle after restart")
}
