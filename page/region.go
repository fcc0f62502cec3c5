package page

import (
	"github.com/lixenwraith/parallax/tilt"
)

// Region is a rectangular hover area acting as a tilt.Surface
type Region struct {
	bounds  tilt.Rect
	hovered bool

	moves  map[int]func(tilt.PointerEvent)
	leaves map[int]func()
	nextID int
}

// NewRegion creates an empty region
func NewRegion() *Region {
	return &Region{
		moves:  make(map[int]func(tilt.PointerEvent)),
		leaves: make(map[int]func()),
	}
}

// SetBounds moves or resizes the region
func (r *Region) SetBounds(b tilt.Rect) {
	r.bounds = b
}

// Bounds implements tilt.Surface
func (r *Region) Bounds() tilt.Rect {
	return r.bounds
}

// OnPointerMove implements tilt.Surface
func (r *Region) OnPointerMove(fn func(tilt.PointerEvent)) func() {
	r.nextID++
	id := r.nextID
	r.moves[id] = fn
	return func() { delete(r.moves, id) }
}

// OnPointerLeave implements tilt.Surface
func (r *Region) OnPointerLeave(fn func()) func() {
	r.nextID++
	id := r.nextID
	r.leaves[id] = fn
	return func() { delete(r.leaves, id) }
}

// Contains reports whether x, y lies inside the region
func (r *Region) Contains(x, y float64) bool {
	return Contains(r.bounds, x, y)
}

// Pointer dispatches a pointer position: move while inside, leave on exit
func (r *Region) Pointer(x, y float64) {
	if !r.Contains(x, y) {
		r.Leave()
		return
	}
	r.hovered = true
	e := tilt.PointerEvent{ClientX: x, ClientY: y}
	for _, fn := range r.moves {
		fn(e)
	}
}

// Leave fires leave listeners if the pointer was inside
func (r *Region) Leave() {
	if !r.hovered {
		return
	}
	r.hovered = false
	for _, fn := range r.leaves {
		fn()
	}
}

// Hovered reports whether the pointer is inside
func (r *Region) Hovered() bool {
	return r.hovered
}

// Listeners returns the number of attached listeners
func (r *Region) Listeners() int {
	return len(r.moves) + len(r.leaves)
}

// Contains reports whether x, y lies inside rect, right and bottom edges excluded
func Contains(rect tilt.Rect, x, y float64) bool {
	return x >= rect.X && x < rect.X+rect.W && y >= rect.Y && y < rect.Y+rect.H
}
