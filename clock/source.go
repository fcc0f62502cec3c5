// Package clock provides the time sources the frame loop and throttlers read.
// Production code uses Monotonic; tests drive Mock explicitly.
package clock

import "time"

// Source provides the current time
type Source interface {
	Now() time.Time
}

// Monotonic provides the real system time with monotonic clock readings
type Monotonic struct{}

// NewMonotonic creates a new monotonic time source
func NewMonotonic() *Monotonic {
	return &Monotonic{}
}

// Now returns the current time with monotonic clock reading
func (Monotonic) Now() time.Time {
	return time.Now()
}
