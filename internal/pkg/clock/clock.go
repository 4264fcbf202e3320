package clock

import "time"

// Clocker abstracts time so callers can replace real time in tests.
type Clocker interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

// New returns the system clock.
func New() *System {
	return &System{}
}

func (*System) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant. It stamps deterministic headers in tests.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
