package parameter

import "time"

// Frame Loop Timing
const (
	// FrameInterval is the animation frame interval (~60 FPS)
	FrameInterval = 16 * time.Millisecond

	// PostQueueSize is the fixed capacity of the cross-goroutine task ring buffer
	PostQueueSize = 1024

	// PostQueueMask is the bitmask for fast modulo operations (1024 - 1)
	PostQueueMask = PostQueueSize - 1
)
