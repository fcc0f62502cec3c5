// Package scroll derives a normalized progress ratio and a visibility flag
// from a scrolling viewport, coalescing scroll bursts through the same
// throttle and frame primitives the motion engine uses.
package scroll

import (
	"math"
	"time"

	"github.com/lixenwraith/parallax/parameter"
	"github.com/lixenwraith/parallax/vmath"
)

// Metrics are the raw viewport measurements sampled each frame
type Metrics struct {
	OffsetPx       float64 // current scroll offset from the top
	ScrollHeight   float64 // full document height
	ViewportHeight float64 // visible height
}

// Scrollable returns the maximum scroll offset
func (m Metrics) Scrollable() float64 {
	return m.ScrollHeight - m.ViewportHeight
}

// State is the derived scroll state delivered to subscribers
type State struct {
	OffsetPx      float64
	ProgressRatio float64
	IsVisible     bool
}

// Config tunes sampling and visibility
type Config struct {
	// Interval is the throttle window for raw scroll events
	Interval time.Duration
	// JitterPx skips recomputation for offset changes smaller than this
	JitterPx float64
	// Tolerance is the minimum progress change that notifies subscribers
	Tolerance float64
	// ShowAbove is the offset above which IsVisible becomes true
	ShowAbove float64
	// HideBelow enables a hysteresis band when 0 < HideBelow < ShowAbove:
	// once visible, the flag stays true until the offset drops below HideBelow
	HideBelow float64
}

// DefaultConfig returns the parameter defaults
func DefaultConfig() Config {
	return Config{
		Interval:  parameter.DefaultThrottleInterval,
		JitterPx:  parameter.ScrollJitterPx,
		Tolerance: parameter.ScrollTolerance,
		ShowAbove: parameter.ScrollShowAbove,
	}
}

// hysteresis reports whether a distinct hide threshold is configured
func (c Config) hysteresis() bool {
	return c.HideBelow > 0 && c.HideBelow < c.ShowAbove
}

// Compute derives State from metrics; prevVisible only matters with hysteresis
// Non-finite offsets are treated as 0
func Compute(m Metrics, prevVisible bool, cfg Config) State {
	offset := m.OffsetPx
	if !vmath.Finite(offset) {
		offset = 0
	}

	scrollable := m.Scrollable()
	if !vmath.Finite(scrollable) {
		scrollable = 0
	}
	ratio := vmath.Clamp(offset/math.Max(1, scrollable), 0, 1)

	var visible bool
	if cfg.hysteresis() && prevVisible {
		visible = offset >= cfg.HideBelow
	} else {
		visible = offset > cfg.ShowAbove
	}

	return State{
		OffsetPx:      offset,
		ProgressRatio: ratio,
		IsVisible:     visible,
	}
}

// changed reports whether next differs from prev enough to notify
func changed(prev, next State, tolerance float64) bool {
	if prev.IsVisible != next.IsVisible {
		return true
	}
	return math.Abs(prev.ProgressRatio-next.ProgressRatio) > tolerance
}
