// Package tilt drives the hero parallax: pointer position over a surface is
// normalized to [-1, 1] per axis and eased toward through a motion.Store.
package tilt

import "github.com/lixenwraith/parallax/vmath"

// Rect is a surface's bounds in the host's client coordinates
type Rect struct {
	X, Y, W, H float64
}

// PointerEvent is a pointer position in client coordinates
type PointerEvent struct {
	ClientX, ClientY float64
}

// Surface is the hovered element
// Bounds is read on every event so resizes need no notification
type Surface interface {
	Bounds() Rect
	OnPointerMove(fn func(PointerEvent)) (remove func())
	OnPointerLeave(fn func()) (remove func())
}

// Normalize maps a client position to [-1, 1] per axis, center at 0
// Positions outside r are clamped; ok is false for degenerate bounds
func Normalize(r Rect, x, y float64) (v vmath.Vec2, ok bool) {
	if !(r.W > 0) || !(r.H > 0) {
		return vmath.Vec2{}, false
	}
	v = vmath.Vec2{
		X: (x-r.X)/r.W*2 - 1,
		Y: (y-r.Y)/r.H*2 - 1,
	}
	if !v.Finite() {
		return vmath.Vec2{}, false
	}
	return v.ClampUnit(), true
}
