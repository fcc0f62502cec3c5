package terminal

import (
	"testing"

	"github.com/lixenwraith/parallax/page"
	"github.com/lixenwraith/parallax/parameter"
	"github.com/lixenwraith/parallax/tilt"
)

func TestComputeLayout(t *testing.T) {
	doc := page.NewDocument(parameter.DocumentRows * parameter.RowPx)
	doc.SetViewportHeight(23 * parameter.RowPx)

	l := ComputeLayout(80, 24, doc)
	if l.Hero != (tilt.Rect{X: 16, Y: 3, W: 48, H: 10}) {
		t.Errorf("Hero = %+v", l.Hero)
	}
	if l.TopButton.Y != 23 || l.TopButton.X+l.TopButton.W != 79 {
		t.Errorf("TopButton = %+v", l.TopButton)
	}
	if viewportRows(doc) != 23 {
		t.Errorf("viewportRows = %d, want 23", viewportRows(doc))
	}

	doc.ScrollBy(5 * parameter.RowPx)
	if l := ComputeLayout(80, 24, doc); l.Hero.Y != -2 {
		t.Errorf("Hero.Y after scroll = %v, want -2", l.Hero.Y)
	}
	if !inRect(l.TopButton, 70, 23) || inRect(l.TopButton, 79, 23) {
		t.Error("TopButton hit test wrong at the edges")
	}
}
