package terminal

import (
	"github.com/lixenwraith/parallax/page"
	"github.com/lixenwraith/parallax/parameter"
	"github.com/lixenwraith/parallax/tilt"
)

// Layout is the screen geometry for one frame
type Layout struct {
	Width, Height int
	Hero          tilt.Rect // unshifted card in screen cells; may extend off screen
	TopButton     tilt.Rect
}

// ComputeLayout places the hero card relative to the document scroll
func ComputeLayout(width, height int, doc *page.Document) Layout {
	cardW := float64(int(float64(width) * parameter.HeroWidthRatio))
	cardH := float64(parameter.HeroRows - 4)
	heroTop := float64(parameter.TopMargin+2) - float64(topRow(doc))

	label := float64(len(parameter.TopButtonLabel))
	return Layout{
		Width:  width,
		Height: height,
		Hero: tilt.Rect{
			X: float64(int((float64(width) - cardW) / 2)),
			Y: heroTop,
			W: cardW,
			H: cardH,
		},
		TopButton: tilt.Rect{
			X: float64(width) - label - 1,
			Y: float64(height - 1),
			W: label,
			H: 1,
		},
	}
}

// topRow returns the first visible document row
func topRow(doc *page.Document) int {
	return int(doc.Offset() / parameter.RowPx)
}

// viewportRows returns the visible document row count
func viewportRows(doc *page.Document) int {
	return int(doc.ViewportHeight() / parameter.RowPx)
}

// inRect reports whether cell x, y lies inside r
func inRect(r tilt.Rect, x, y int) bool {
	return page.Contains(r, float64(x), float64(y))
}
