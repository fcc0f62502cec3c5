package frame

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/parallax/clock"
	"github.com/lixenwraith/parallax/event"
	"github.com/lixenwraith/parallax/parameter"
	"github.com/lixenwraith/parallax/status"
)

type request struct {
	handle Handle
	cb     Callback
}

// Loop is a single-goroutine animation-frame scheduler
type Loop struct {
	clock    *clock.Pausable
	interval time.Duration

	nextHandle Handle
	pending    []request
	running    []request // reused buffer for the step in progress

	tasks *event.Queue[func()]
	wake  chan struct{}

	statRequested *atomic.Int64
	statCancelled *atomic.Int64
	statFired     *atomic.Int64
	statPosted    *atomic.Int64
}

// NewLoop creates a loop over src ticking every interval
// interval <= 0 uses parameter.FrameInterval; reg may be nil
func NewLoop(src clock.Source, interval time.Duration, reg *status.Registry) *Loop {
	if interval <= 0 {
		interval = parameter.FrameInterval
	}
	pc, ok := src.(*clock.Pausable)
	if !ok {
		pc = clock.NewPausable(src)
	}
	return &Loop{
		clock:         pc,
		interval:      interval,
		tasks:         event.NewQueue[func()](),
		wake:          make(chan struct{}, 1),
		statRequested: status.Counter(reg, "frame.requested"),
		statCancelled: status.Counter(reg, "frame.cancelled"),
		statFired:     status.Counter(reg, "frame.fired"),
		statPosted:    status.Counter(reg, "frame.posted"),
	}
}

// Clock returns the pausable frame clock
func (l *Loop) Clock() *clock.Pausable {
	return l.clock
}

// Interval returns the frame interval
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// RequestFrame schedules cb for the next step
func (l *Loop) RequestFrame(cb Callback) Handle {
	if cb == nil {
		return 0
	}
	l.nextHandle++
	h := l.nextHandle
	l.pending = append(l.pending, request{handle: h, cb: cb})
	l.statRequested.Add(1)
	return h
}

// CancelFrame removes a pending request; unknown or zero handles are ignored
func (l *Loop) CancelFrame(h Handle) {
	if h == 0 {
		return
	}
	for i := range l.pending {
		if l.pending[i].handle == h {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			l.statCancelled.Add(1)
			return
		}
	}
	// A callback cancelled from inside the running step
	for i := range l.running {
		if l.running[i].handle == h {
			l.running[i].cb = nil
			l.statCancelled.Add(1)
			return
		}
	}
}

// Pending returns the number of outstanding frame requests
func (l *Loop) Pending() int {
	return len(l.pending)
}

// Post queues fn to run on the loop goroutine before the next frame
// Safe to call from any goroutine
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.tasks.Push(fn)
	l.statPosted.Add(1)
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Drain runs all posted tasks in FIFO order
func (l *Loop) Drain() int {
	tasks := l.tasks.Consume()
	for _, fn := range tasks {
		fn()
	}
	return len(tasks)
}

// Step drains posted tasks, then fires every frame callback requested before
// this call. Returns the number of callbacks fired. Paused clocks fire nothing
func (l *Loop) Step(now time.Time) int {
	l.Drain()

	if l.clock.IsPaused() || len(l.pending) == 0 {
		return 0
	}

	// Swap so callbacks requesting frames land in the next step
	l.running, l.pending = l.pending, l.running[:0]

	fired := 0
	for i := range l.running {
		cb := l.running[i].cb
		if cb == nil {
			continue
		}
		l.running[i].cb = nil
		cb(now)
		fired++
	}
	l.running = l.running[:0]

	l.statFired.Add(int64(fired))
	return fired
}

// Run drives the loop from a ticker until ctx is done
// Posted tasks wake the loop immediately; frames fire on ticks
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-l.wake:
			l.Drain()

		case <-ticker.C:
			l.Step(l.clock.Now())
		}
	}
}
