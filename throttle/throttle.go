// Package throttle coalesces high-frequency event streams to at most one
// handled sample per interval. Leading edge only: intermediate events are
// dropped, never queued, and there is no trailing timer.
package throttle

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/parallax/clock"
	"github.com/lixenwraith/parallax/parameter"
	"github.com/lixenwraith/parallax/status"
)

// Throttler owns the "last invoked at" timestamp of one wrapped handler
type Throttler struct {
	src      clock.Source
	interval time.Duration
	last     time.Time
	fired    bool

	statPassed  *atomic.Int64
	statDropped *atomic.Int64
	dropped     int64
}

// New creates a throttler; interval <= 0 uses parameter.DefaultThrottleInterval
// nil src uses the monotonic clock; reg may be nil
func New(interval time.Duration, src clock.Source, reg *status.Registry) *Throttler {
	if interval <= 0 {
		interval = parameter.DefaultThrottleInterval
	}
	if src == nil {
		src = clock.NewMonotonic()
	}
	return &Throttler{
		src:         src,
		interval:    interval,
		statPassed:  status.Counter(reg, "throttle.passed"),
		statDropped: status.Counter(reg, "throttle.dropped"),
	}
}

// Allow reports whether an event arriving now should be handled
func (t *Throttler) Allow() bool {
	now := t.src.Now()
	if t.fired && now.Sub(t.last) < t.interval {
		t.dropped++
		t.statDropped.Add(1)
		return false
	}
	t.fired = true
	t.last = now
	t.statPassed.Add(1)
	return true
}

// Dropped returns events discarded by this throttler
func (t *Throttler) Dropped() int64 {
	return t.dropped
}

// Interval returns the effective interval
func (t *Throttler) Interval() time.Duration {
	return t.interval
}

// Wrap returns a handler that forwards the current event only when the
// interval has elapsed since the last forwarded one
func Wrap[E any](handler func(E), interval time.Duration, src clock.Source) func(E) {
	return WrapWith(New(interval, src, nil), handler)
}

// WrapWith is Wrap over an existing throttler, for callers that read its stats
func WrapWith[E any](t *Throttler, handler func(E)) func(E) {
	return func(e E) {
		if t.Allow() {
			handler(e)
		}
	}
}

// WrapFunc throttles an argument-less handler such as a scroll notification
func WrapFunc(t *Throttler, handler func()) func() {
	return func() {
		if t.Allow() {
			handler()
		}
	}
}
