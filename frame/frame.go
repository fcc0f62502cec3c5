// Package frame provides the animation-frame clock the motion engine runs on.
//
// Loop mirrors a browser's requestAnimationFrame queue: callbacks requested
// before a step run once in that step, in request order; callbacks requested
// while a step is running wait for the next one. All methods except Post must
// be called from the goroutine that drives the loop (Run or Step).
package frame

import "time"

// Handle identifies one pending frame request. Zero is never issued
type Handle uint64

// Callback receives the frame timestamp
type Callback func(now time.Time)

// Requester is the animation-frame primitive schedulers depend on
type Requester interface {
	RequestFrame(cb Callback) Handle
	CancelFrame(h Handle)
}
