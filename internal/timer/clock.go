// Package timer implements the study session timer state machine.
package timer

import "time"

// Clock supplies wall-clock time. Injected so the timer is testable.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now()
}
