package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Pausable derives frame time from a base source, freezing it while paused
// Hosts pause it when the surface is hidden or unfocused so pending frames wait
type Pausable struct {
	mu sync.RWMutex

	base      Source
	startTime time.Time

	isPaused        atomic.Bool
	pauseStartTime  time.Time     // base time when the current pause started
	totalPausedTime time.Duration // cumulative pause duration
}

// NewPausable creates a pausable clock over base; nil base uses Monotonic
func NewPausable(base Source) *Pausable {
	if base == nil {
		base = NewMonotonic()
	}
	return &Pausable{
		base:      base,
		startTime: base.Now(),
	}
}

// Now returns frame time (frozen during pause)
func (pc *Pausable) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused.Load() {
		return pc.startTime.Add(pc.pauseStartTime.Sub(pc.startTime) - pc.totalPausedTime)
	}

	elapsed := pc.base.Now().Sub(pc.startTime) - pc.totalPausedTime
	return pc.startTime.Add(elapsed)
}

// RealTime returns base time (unaffected by pause)
func (pc *Pausable) RealTime() time.Time {
	return pc.base.Now()
}

// Pause stops frame time advancement
// The flag and pause start change under one lock so Now never sees a half-set pause
func (pc *Pausable) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.isPaused.CompareAndSwap(false, true) {
		pc.pauseStartTime = pc.base.Now()
	}
}

// Resume continues frame time advancement
func (pc *Pausable) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.isPaused.CompareAndSwap(true, false) {
		pc.totalPausedTime += pc.base.Now().Sub(pc.pauseStartTime)
		pc.pauseStartTime = time.Time{}
	}
}

// SetPaused pauses or resumes, convenience for focus callbacks
func (pc *Pausable) SetPaused(paused bool) {
	if paused {
		pc.Pause()
	} else {
		pc.Resume()
	}
}

// IsPaused returns current pause state
func (pc *Pausable) IsPaused() bool {
	return pc.isPaused.Load()
}

// TotalPauseDuration returns cumulative pause time including an active pause
func (pc *Pausable) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.isPaused.Load() && !pc.pauseStartTime.IsZero() {
		total += pc.base.Now().Sub(pc.pauseStartTime)
	}
	return total
}
