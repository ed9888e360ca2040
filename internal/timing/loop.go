package timing

import "time"

// FrameLoop is the clock source of the application: a perpetual,
// self-rescheduling per-refresh tick. It owns exactly one pending frame handle
// at any instant and cancels it on Stop, so tearing the loop down can never
// leave a stray callback racing a successor.
//
// All methods must be called from the scheduler's event thread; the loop holds
// no locks by design.
type FrameLoop struct {
	sched  FrameScheduler
	cancel CancelFunc
	onTick func(now time.Time)
}

// NewFrameLoop creates a stopped loop bound to the given scheduler.
func NewFrameLoop(sched FrameScheduler) *FrameLoop {
	return &FrameLoop{sched: sched}
}

// Start begins ticking, delivering one callback per display refresh.
// A running loop is restarted with the new callback.
func (l *FrameLoop) Start(onTick func(now time.Time)) {
	l.Stop()
	l.onTick = onTick
	l.schedule()
}

// Stop cancels the pending frame, if any. Idempotent.
func (l *FrameLoop) Stop() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.onTick = nil
}

// Running reports whether a frame is pending.
func (l *FrameLoop) Running() bool {
	return l.cancel != nil
}

func (l *FrameLoop) schedule() {
	l.cancel = l.sched.RequestFrame(func(now time.Time) {
		l.cancel = nil
		fn := l.onTick
		if fn == nil {
			return
		}
		fn(now)
		// The callback may have stopped or restarted the loop.
		if l.onTick != nil && l.cancel == nil {
			l.schedule()
		}
	})
}
