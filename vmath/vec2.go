package vmath

import "math"

// Vec2 is a normalized 2D motion vector, typically in [-1, 1] per axis
type Vec2 struct {
	X, Y float64
}

// Finite reports whether v is neither NaN nor ±Inf
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Finite reports whether both components are finite
func (v Vec2) Finite() bool {
	return Finite(v.X) && Finite(v.Y)
}

// Clamp limits v to [lo, hi]; NaN passes through for the caller's finite guard
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampUnit clamps both components to [-1, 1]
func (v Vec2) ClampUnit() Vec2 {
	return Vec2{X: Clamp(v.X, -1, 1), Y: Clamp(v.Y, -1, 1)}
}

// Lerp performs linear interpolation between a and b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Scale multiplies both components by s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// StepsToSettle returns the number of exponential damping steps needed to shrink a
// unit offset below epsilon: ceil(ln(eps) / ln(1 - damping))
// Returns 1 for damping >= 1 and -1 for invalid input
func StepsToSettle(damping, epsilon float64) int {
	if damping <= 0 || epsilon <= 0 || !Finite(damping) || !Finite(epsilon) {
		return -1
	}
	if damping >= 1 || epsilon >= 1 {
		return 1
	}
	return int(math.Ceil(math.Log(epsilon) / math.Log(1-damping)))
}
