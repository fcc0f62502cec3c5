package terminal

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/parallax/page"
	"github.com/lixenwraith/parallax/parameter"
	"github.com/lixenwraith/parallax/scroll"
	"github.com/lixenwraith/parallax/vmath"
)

var (
	styleText     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(180, 180, 190))
	styleMuted    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(90, 90, 110))
	styleCard     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(120, 200, 255))
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleBackdrop = tcell.StyleDefault.Foreground(tcell.NewRGBColor(60, 70, 100))
	styleBar      = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 170, 60))
	styleButton   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	styleOverlay  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlack)
)

// View is everything one redraw needs
type View struct {
	Layout   Layout
	Doc      *page.Document
	Tilt     vmath.Vec2 // eased, [-1, 1]
	Progress float64    // eased, [0, 1]
	Scroll   scroll.State
	Motion   bool // false when the capability gate disabled tilt
	Overlay  []string
}

// Renderer draws a View onto a tcell screen
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer creates a renderer for screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Draw renders a full frame and shows it
func (r *Renderer) Draw(v View) {
	r.screen.Clear()

	r.drawContent(v)
	r.drawHero(v)
	r.drawProgress(v)
	if v.Scroll.IsVisible {
		r.drawButton(v)
	}
	if len(v.Overlay) > 0 {
		r.drawOverlay(v)
	}

	r.screen.Show()
}

func (r *Renderer) drawContent(v View) {
	top := topRow(v.Doc)
	for y := parameter.TopMargin; y < v.Layout.Height; y++ {
		row := top + y - parameter.TopMargin
		if row < parameter.HeroRows || row >= parameter.DocumentRows {
			continue
		}
		var line string
		switch {
		case row%12 == 0:
			line = fmt.Sprintf("## Section %d", row/12)
		case row%12 == 11:
			line = ""
		default:
			line = fmt.Sprintf("   line %03d  %s", row, filler[row%len(filler)])
		}
		style := styleText
		if row%12 == 0 {
			style = styleTitle
		}
		r.text(2, y, line, style)
	}
}

var filler = []string{
	"the quick brown fox jumps over the lazy dog",
	"motion eases toward its target every frame",
	"scroll bursts coalesce into one sample per frame",
	"a settled channel stops requesting frames",
	"pointer leave returns the card to rest",
}

func (r *Renderer) drawHero(v View) {
	hero := v.Layout.Hero

	// Backdrop drifts opposite to the card
	bx := int(math.Round(-v.Tilt.X * parameter.HeroShiftCols * parameter.HeroBackdropRatio))
	by := int(math.Round(-v.Tilt.Y * parameter.HeroShiftRows * parameter.HeroBackdropRatio))
	for y := int(hero.Y) - 1; y < int(hero.Y+hero.H)+1; y++ {
		for x := 0; x < v.Layout.Width; x++ {
			if (x*7+y*13)%23 == 0 {
				r.cell(x+bx, y+by, '·', styleBackdrop)
			}
		}
	}

	dx := int(math.Round(v.Tilt.X * parameter.HeroShiftCols))
	dy := int(math.Round(v.Tilt.Y * parameter.HeroShiftRows))
	x0, y0 := int(hero.X)+dx, int(hero.Y)+dy
	x1, y1 := x0+int(hero.W)-1, y0+int(hero.H)-1

	for x := x0; x <= x1; x++ {
		r.cell(x, y0, '─', styleCard)
		r.cell(x, y1, '─', styleCard)
	}
	for y := y0; y <= y1; y++ {
		r.cell(x0, y, '│', styleCard)
		r.cell(x1, y, '│', styleCard)
	}
	r.cell(x0, y0, '╭', styleCard)
	r.cell(x1, y0, '╮', styleCard)
	r.cell(x0, y1, '╰', styleCard)
	r.cell(x1, y1, '╯', styleCard)

	title := "PARALLAX"
	r.text(x0+(int(hero.W)-len(title))/2, y0+int(hero.H)/2-1, title, styleTitle)

	sub := fmt.Sprintf("tilt %+.3f %+.3f", v.Tilt.X, v.Tilt.Y)
	if !v.Motion {
		sub = "motion disabled"
	}
	r.text(x0+(int(hero.W)-len(sub))/2, y0+int(hero.H)/2+1, sub, styleMuted)
}

func (r *Renderer) drawProgress(v View) {
	filled := int(math.Round(vmath.Clamp(v.Progress, 0, 1) * float64(v.Layout.Width)))
	for x := 0; x < v.Layout.Width; x++ {
		if x < filled {
			r.screen.SetContent(x, 0, '━', nil, styleBar)
		} else {
			r.screen.SetContent(x, 0, '─', nil, styleMuted)
		}
	}
}

func (r *Renderer) drawButton(v View) {
	b := v.Layout.TopButton
	r.text(int(b.X), int(b.Y), parameter.TopButtonLabel, styleButton)
}

func (r *Renderer) drawOverlay(v View) {
	x := v.Layout.Width - parameter.OverlayWidth
	for i, line := range v.Overlay {
		y := parameter.TopMargin + i
		if y >= v.Layout.Height-1 {
			break
		}
		if len(line) > parameter.OverlayWidth-1 {
			line = line[:parameter.OverlayWidth-1]
		}
		r.text(x, y, fmt.Sprintf(" %-*s", parameter.OverlayWidth-1, line), styleOverlay)
	}
}

// cell writes one rune, clipped to the screen below the progress row
func (r *Renderer) cell(x, y int, ch rune, style tcell.Style) {
	w, h := r.screen.Size()
	if x < 0 || x >= w || y < parameter.TopMargin || y >= h {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.cell(x+i, y, ch, style)
	}
}
