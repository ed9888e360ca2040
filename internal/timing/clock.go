package timing

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// Every component that needs "now" receives it through this interface;
// nothing in the computation path reads system time directly.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
