package scroll

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/parallax/clock"
	"github.com/lixenwraith/parallax/frame"
	"github.com/lixenwraith/parallax/status"
	"github.com/lixenwraith/parallax/throttle"
)

// Viewport is the host's scroll container
// OnScroll attaches a raw scroll listener and returns its removal function
type Viewport interface {
	Metrics() Metrics
	OnScroll(fn func()) (remove func())
}

// Tracker hands out independent scroll subscriptions on one viewport
type Tracker struct {
	viewport Viewport
	frames   frame.Requester
	src      clock.Source
	cfg      Config
	reg      *status.Registry

	statSampled *atomic.Int64
	statJitter  *atomic.Int64
	statNotify  *atomic.Int64
}

// NewTracker creates a tracker. A zero Config selects DefaultConfig; any other
// Config is used as given, so zero thresholds and guards stay zero.
// A non-positive Interval falls back to the throttle default. src and reg may be nil
func NewTracker(vp Viewport, frames frame.Requester, src clock.Source, cfg Config, reg *status.Registry) *Tracker {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if src == nil {
		src = clock.NewMonotonic()
	}
	return &Tracker{
		viewport:    vp,
		frames:      frames,
		src:         src,
		cfg:         cfg,
		reg:         reg,
		statSampled: status.Counter(reg, "scroll.sampled"),
		statJitter:  status.Counter(reg, "scroll.jitter_skipped"),
		statNotify:  status.Counter(reg, "scroll.notified"),
	}
}

// Config returns the effective configuration
func (t *Tracker) Config() Config {
	return t.cfg
}

// Subscribe starts tracking and returns the idempotent unsubscribe function
// onChange runs on the frame loop: once with the initial state, then on change
func (t *Tracker) Subscribe(onChange func(State)) (unsubscribe func()) {
	sub := &subscription{
		tracker:    t,
		onChange:   onChange,
		lastOffset: math.NaN(),
	}
	sub.sampleFn = sub.sample

	th := throttle.New(t.cfg.Interval, t.src, t.reg)
	sub.remove = t.viewport.OnScroll(throttle.WrapFunc(th, sub.schedule))

	// Initial state
	sub.schedule()

	return sub.close
}

// subscription is one consumer's listener, sample cache and frame handle
type subscription struct {
	tracker  *Tracker
	onChange func(State)
	remove   func()

	handle   frame.Handle
	sampleFn frame.Callback

	lastOffset float64 // NaN until first sample
	last       State
	notified   bool
	closed     bool
}

// schedule arms one frame per throttled scroll tick
func (s *subscription) schedule() {
	if s.closed || s.handle != 0 {
		return
	}
	s.handle = s.tracker.frames.RequestFrame(s.sampleFn)
}

func (s *subscription) sample(time.Time) {
	s.handle = 0
	if s.closed {
		return
	}

	t := s.tracker
	m := t.viewport.Metrics()

	if s.notified && !math.IsNaN(s.lastOffset) && math.Abs(m.OffsetPx-s.lastOffset) < t.cfg.JitterPx {
		t.statJitter.Add(1)
		return
	}
	s.lastOffset = m.OffsetPx
	t.statSampled.Add(1)

	next := Compute(m, s.last.IsVisible, t.cfg)
	if s.notified && !changed(s.last, next, t.cfg.Tolerance) {
		return
	}

	s.last = next
	s.notified = true
	t.statNotify.Add(1)
	if s.onChange != nil {
		s.onChange(next)
	}
}

// close removes the listener and cancels the in-flight frame
func (s *subscription) close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.remove != nil {
		s.remove()
		s.remove = nil
	}
	if s.handle != 0 {
		s.tracker.frames.CancelFrame(s.handle)
		s.handle = 0
	}
}
