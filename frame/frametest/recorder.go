// Package frametest provides a counting frame.Requester for scheduler tests.
package frametest

import (
	"time"

	"github.com/lixenwraith/parallax/frame"
)

// Recorder records frame requests without a real loop
// Fire runs every live callback once, like one animation frame
type Recorder struct {
	Requests  int
	Cancels   int
	next      frame.Handle
	live      map[frame.Handle]frame.Callback
	liveOrder []frame.Handle
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{live: make(map[frame.Handle]frame.Callback)}
}

// RequestFrame implements frame.Requester
func (r *Recorder) RequestFrame(cb frame.Callback) frame.Handle {
	r.Requests++
	r.next++
	r.live[r.next] = cb
	r.liveOrder = append(r.liveOrder, r.next)
	return r.next
}

// CancelFrame implements frame.Requester
func (r *Recorder) CancelFrame(h frame.Handle) {
	if _, ok := r.live[h]; !ok {
		return
	}
	r.Cancels++
	delete(r.live, h)
}

// Live returns the number of outstanding requests
func (r *Recorder) Live() int {
	return len(r.live)
}

// Fire runs callbacks live at call time and returns how many ran
func (r *Recorder) Fire(now time.Time) int {
	order := r.liveOrder
	r.liveOrder = nil
	fired := 0
	for _, h := range order {
		cb, ok := r.live[h]
		if !ok {
			continue
		}
		delete(r.live, h)
		cb(now)
		fired++
	}
	return fired
}

// FireUntilIdle fires frames until nothing is pending or max frames ran
// Returns the number of frames fired
func (r *Recorder) FireUntilIdle(start time.Time, step time.Duration, max int) int {
	frames := 0
	now := start
	for frames < max && r.Live() > 0 {
		now = now.Add(step)
		r.Fire(now)
		frames++
	}
	return frames
}
