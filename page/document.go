package page

import (
	"math"

	"github.com/lixenwraith/parallax/scroll"
)

// Document is a virtual page scrolled by wheel and keys; it is the scroll.Viewport
type Document struct {
	contentPx  float64
	viewportPx float64
	offset     float64

	listeners map[int]func()
	nextID    int
}

// NewDocument creates a document contentPx tall
func NewDocument(contentPx float64) *Document {
	return &Document{
		contentPx: contentPx,
		listeners: make(map[int]func()),
	}
}

// SetViewportHeight sets the visible height and re-clamps the offset
func (d *Document) SetViewportHeight(px float64) {
	d.viewportPx = math.Max(0, px)
	d.ScrollTo(d.offset)
}

// Metrics implements scroll.Viewport
func (d *Document) Metrics() scroll.Metrics {
	return scroll.Metrics{
		OffsetPx:       d.offset,
		ScrollHeight:   d.contentPx,
		ViewportHeight: d.viewportPx,
	}
}

// OnScroll implements scroll.Viewport
func (d *Document) OnScroll(fn func()) func() {
	d.nextID++
	id := d.nextID
	d.listeners[id] = fn
	return func() { delete(d.listeners, id) }
}

// ScrollBy moves by delta pixels
func (d *Document) ScrollBy(deltaPx float64) {
	d.ScrollTo(d.offset + deltaPx)
}

// ScrollTo clamps to the scrollable range and notifies listeners on change
func (d *Document) ScrollTo(offsetPx float64) {
	if math.IsNaN(offsetPx) {
		return
	}
	maxOffset := math.Max(0, d.Metrics().Scrollable())
	offsetPx = math.Max(0, math.Min(maxOffset, offsetPx))
	if offsetPx == d.offset {
		return
	}
	d.offset = offsetPx
	for _, fn := range d.listeners {
		fn()
	}
}

// ScrollToEnd scrolls to the bottom
func (d *Document) ScrollToEnd() {
	d.ScrollTo(d.Metrics().Scrollable())
}

// Offset returns the scroll offset in pixels
func (d *Document) Offset() float64 {
	return d.offset
}

// ViewportHeight returns the visible height in pixels
func (d *Document) ViewportHeight() float64 {
	return d.viewportPx
}

// Listeners returns the number of attached scroll listeners
func (d *Document) Listeners() int {
	return len(d.listeners)
}
