package spin

import "time"

// Timer is a pending wake-up that can be cancelled
type Timer interface {
	// Stop cancels the wake-up; returns false if it already fired or was stopped
	Stop() bool
}

// Clock provides the current time and one-shot wake-ups
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock uses the system monotonic clock and runtime timers
type RealClock struct{}

// NewRealClock creates a clock backed by the time package
func NewRealClock() RealClock {
	return RealClock{}
}

// Now returns the current time with monotonic clock reading
func (RealClock) Now() time.Time {
	return time.Now()
}

// AfterFunc runs f on its own goroutine after d
func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
