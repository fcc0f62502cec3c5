package parameter

// Scroll Progress
const (
	// ScrollJitterPx is the minimum raw offset change that triggers recomputation
	ScrollJitterPx = 1.0

	// ScrollTolerance is the minimum progress ratio change that notifies subscribers
	ScrollTolerance = 0.001

	// ScrollShowAbove is the offset (px) above which the scroll-to-top control is visible
	ScrollShowAbove = 300.0

	// ScrollProgressChannel is the channel id for the smoothed progress indicator
	ScrollProgressChannel = "scrollProgress"

	// ScrollProgressDamping settles faster than tilt so the indicator tracks the page
	ScrollProgressDamping = 0.2

	// ScrollProgressProperty is the style property the progress sink writes
	ScrollProgressProperty = "--scroll-progress"
)
