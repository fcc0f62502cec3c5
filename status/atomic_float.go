package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a float64 gauge stored as IEEE-754 bits
// Zero value reads as 0.0
type AtomicFloat struct {
	v atomic.Uint64
}

// Load returns the current value
func (f *AtomicFloat) Load() float64 { return math.Float64frombits(f.v.Load()) }

// Store replaces the value
func (f *AtomicFloat) Store(x float64) { f.v.Store(math.Float64bits(x)) }

// Swap stores x and returns the previous value
func (f *AtomicFloat) Swap(x float64) float64 {
	return math.Float64frombits(f.v.Swap(math.Float64bits(x)))
}

// Add applies delta with a CAS retry loop and returns the sum
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		bits := f.v.Load()
		sum := math.Float64frombits(bits) + delta
		if f.v.CompareAndSwap(bits, math.Float64bits(sum)) {
			return sum
		}
	}
}
