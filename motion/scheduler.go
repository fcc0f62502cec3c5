package motion

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/parallax/frame"
	"github.com/lixenwraith/parallax/status"
)

// Scheduler advances a Store's channels once per animation frame
// State machine: Idle (no handle) and Running (one live handle)
type Scheduler struct {
	store  *Store
	frames frame.Requester

	handle frame.Handle
	tickFn frame.Callback

	// ticking is set for the duration of a frame body; cancelled records a
	// Cancel made from inside it, which a later EnsureRunning clears
	ticking   bool
	cancelled bool

	onSettle func()

	statPublished *atomic.Int64
	statSkipped   *atomic.Int64
	statSettled   *atomic.Int64
	statFrames    *atomic.Int64
	statResidual  *status.AtomicFloat
}

// NewScheduler binds a scheduler to store; SetTarget and Reset on the store
// arm it from then on. reg may be nil
func NewScheduler(store *Store, frames frame.Requester, reg *status.Registry) *Scheduler {
	s := &Scheduler{
		store:         store,
		frames:        frames,
		statPublished: status.Counter(reg, "motion.published"),
		statSkipped:   status.Counter(reg, "motion.publish_skipped"),
		statSettled:   status.Counter(reg, "motion.settled"),
		statFrames:    status.Counter(reg, "motion.frames"),
		statResidual:  status.Gauge(reg, "motion.residual"),
	}
	s.tickFn = s.tick
	store.arm = s.EnsureRunning
	return s
}

// OnSettle registers fn to run each time the scheduler goes idle by settling
func (s *Scheduler) OnSettle(fn func()) {
	s.onSettle = fn
}

// EnsureRunning requests a frame when idle; no-op while running
func (s *Scheduler) EnsureRunning() {
	s.cancelled = false
	if s.handle != 0 {
		return
	}
	s.handle = s.frames.RequestFrame(s.tickFn)
}

// Running reports whether a frame request is outstanding
func (s *Scheduler) Running() bool {
	return s.handle != 0
}

// Cancel drops the pending frame request; safe when idle and when repeated
// Called from a sink during a frame, it also stops that frame from re-requesting
func (s *Scheduler) Cancel() {
	if s.ticking {
		s.cancelled = true
	}
	if s.handle == 0 {
		return
	}
	s.frames.CancelFrame(s.handle)
	s.handle = 0
}

// Store returns the bound store
func (s *Scheduler) Store() *Store {
	return s.store
}

// tick is one frame: step, publish, then settle or re-request
func (s *Scheduler) tick(time.Time) {
	s.handle = 0
	s.ticking, s.cancelled = true, false
	defer func() { s.ticking = false }()
	s.statFrames.Add(1)

	residual := 0.0
	for _, ch := range s.store.channels {
		ch.step()
		s.publish(ch)
		residual = math.Max(residual, math.Abs(ch.target-ch.current))
		if s.cancelled {
			break
		}
	}
	s.statResidual.Store(residual)

	if s.cancelled {
		return
	}

	if s.store.Settled() {
		s.statSettled.Add(1)
		if s.onSettle != nil {
			s.onSettle()
		}
		return
	}

	// onSettle or a sink may have re-armed through the store
	if s.handle == 0 {
		s.handle = s.frames.RequestFrame(s.tickFn)
	}
}

func (s *Scheduler) publish(ch *Channel) {
	if ch.sink == nil {
		return
	}
	if ch.sink.Publish(ch.id, ch.current) {
		s.statPublished.Add(1)
	} else {
		s.statSkipped.Add(1)
	}
}
