package parameter

import "time"

// Damped Convergence
const (
	// DefaultDamping is the fraction of remaining distance applied per frame
	// Observed smooth range is 0.06-0.08; lower is smoother and slower
	DefaultDamping = 0.07

	// MinDamping and MaxDamping bound the accepted damping factor (exclusive lower bound)
	MinDamping = 0.0
	MaxDamping = 1.0

	// DefaultEpsilon is the settlement tolerance in normalized [-1, 1] space
	DefaultEpsilon = 0.001

	// NeutralTilt is the rest target when the pointer leaves the surface
	NeutralTilt = 0.0
)

// Spring Easing
const (
	// DefaultSpringFrequency is the angular frequency for spring channels
	DefaultSpringFrequency = 6.0

	// DefaultSpringDampingRatio is critically damped (no overshoot)
	DefaultSpringDampingRatio = 1.0

	// SpringFPS is the step rate assumed by spring channels, matches FrameInterval
	SpringFPS = 60
)

// Input Throttling
const (
	// DefaultThrottleInterval coalesces pointer and scroll bursts to one sample per frame
	DefaultThrottleInterval = 16 * time.Millisecond
)

// Tilt Channel IDs
const (
	TiltXChannel = "heroTiltX"
	TiltYChannel = "heroTiltY"

	// TiltXProperty and TiltYProperty are the style properties the tilt sinks write
	TiltXProperty = "--mx"
	TiltYProperty = "--my"
)

// Tilt Tone
const (
	// ToneSampleRate is the speaker rate for the tilt tone
	ToneSampleRate = 48000

	// ToneBufferDuration is the speaker buffer; short enough to follow a 16ms frame
	ToneBufferDuration = 50 * time.Millisecond

	// ToneBaseHz is the pitch at neutral tilt
	ToneBaseHz = 220.0

	// ToneSpanHz is the pitch swing at full tilt in either direction
	ToneSpanHz = 110.0

	// ToneVolume is the default linear amplitude
	ToneVolume = 0.15

	// ToneGlide is the per-sample frequency smoothing factor
	ToneGlide = 0.002
)
