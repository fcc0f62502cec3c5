// Package motion implements damped convergence of named scalar channels on a
// single animation-frame clock.
//
// A Store holds channels with a target and a current value. A Scheduler
// advances every channel toward its target once per frame, publishes the
// result to the channel's Sink, and stops requesting frames once every
// channel is within epsilon of its target. Setting a new target re-arms the
// scheduler; at most one frame request is ever outstanding.
//
// Everything here runs on the frame loop goroutine and takes no locks.
package motion
