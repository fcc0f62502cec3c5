package window

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/parallax/capability"
	"github.com/lixenwraith/parallax/parameter"
)

var (
	colorBackground = color.RGBA{16, 18, 28, 255}
	colorBackdrop   = color.RGBA{50, 60, 95, 255}
	colorCard       = color.RGBA{60, 130, 200, 255}
	colorCardInner  = color.RGBA{90, 170, 240, 255}
	colorBar        = color.RGBA{255, 170, 60, 255}
	colorButton     = color.RGBA{240, 200, 40, 255}
	colorOverlay    = color.RGBA{0, 0, 0, 180}
)

// NewMatcher treats a window without active touches as a fine hover pointer
func NewMatcher() *capability.HostMatcher {
	return &capability.HostMatcher{
		Pointer: func() bool { return len(ebiten.AppendTouchIDs(nil)) == 0 },
	}
}

// Game adapts App to ebiten.Game
type Game struct {
	app *App
}

// NewGame wraps app
func NewGame(app *App) *Game {
	return &Game{app: app}
}

// Run opens the window and blocks until it closes
func Run(app *App, title string) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(parameter.WindowWidth, parameter.WindowHeight)
	ebiten.SetTPS(parameter.WindowTPS)
	ebiten.SetRunnableOnUnfocused(true)
	return ebiten.RunGame(NewGame(app))
}

func (g *Game) Update() error {
	if !g.app.Update(pollInput()) {
		return ebiten.Termination
	}
	return nil
}

// pollInput samples ebiten's input state for one tick
func pollInput() Input {
	x, y := ebiten.CursorPosition()
	_, wheelY := ebiten.Wheel()
	fx, fy := float64(x), float64(y)
	return Input{
		CursorX:      fx,
		CursorY:      fy,
		CursorInside: fx >= 0 && fy >= 0 && fx < parameter.WindowWidth && fy < parameter.WindowHeight,
		WheelY:       wheelY,
		Click:        inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Focused:      ebiten.IsFocused(),
		Quit:         inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ),
		ToggleDebug:  inpututil.IsKeyJustPressed(ebiten.KeyD),
		Home:         inpututil.IsKeyJustPressed(ebiten.KeyHome),
		End:          inpututil.IsKeyJustPressed(ebiten.KeyEnd),
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	a := g.app
	screen.Fill(colorBackground)

	tiltV := a.Tilt()
	hero := a.heroRect()

	// Backdrop drifts opposite to the card
	bx := -tiltV.X * parameter.WindowShiftPx * parameter.HeroBackdropRatio
	by := -tiltV.Y * parameter.WindowShiftPx * parameter.HeroBackdropRatio
	for y := hero.Y - 40; y < hero.Y+hero.H+40; y += 32 {
		for x := 16.0; x < a.width; x += 32 {
			vector.DrawFilledRect(screen, float32(x+bx), float32(y+by), 2, 2, colorBackdrop, false)
		}
	}

	dx := tiltV.X * parameter.WindowShiftPx
	dy := tiltV.Y * parameter.WindowShiftPx
	vector.DrawFilledRect(screen, float32(hero.X+dx), float32(hero.Y+dy), float32(hero.W), float32(hero.H), colorCard, true)
	// Inner layer moves further for depth
	vector.DrawFilledRect(screen, float32(hero.X+24+dx*1.5), float32(hero.Y+24+dy*1.5), float32(hero.W-48), float32(hero.H-48), colorCardInner, true)

	label := fmt.Sprintf("PARALLAX  tilt %+.3f %+.3f", tiltV.X, tiltV.Y)
	if !a.tilt.Active() {
		label = "PARALLAX  motion disabled"
	}
	ebitenutil.DebugPrintAt(screen, label, int(hero.X+dx*1.5)+36, int(hero.Y+dy*1.5)+36)

	// Page content below the hero
	top := heroTopPx + heroHeightPx + 40 - a.doc.Offset()
	for i := 0; ; i++ {
		y := top + float64(i)*contentRowPx
		if y > a.height {
			break
		}
		if y < progressBarPx {
			continue
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("line %03d", i), 48, int(y))
	}

	progress := math.Max(0, math.Min(1, a.Progress()))
	vector.DrawFilledRect(screen, 0, 0, float32(a.width*progress), progressBarPx, colorBar, false)

	if a.state.IsVisible {
		b := a.topButton()
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), colorButton, true)
		ebitenutil.DebugPrintAt(screen, "  ^ back to top", int(b.X), int(b.Y)+8)
	}

	if a.debug && a.reg != nil {
		lines := a.reg.Lines()
		x := a.width - 260
		vector.DrawFilledRect(screen, float32(x), progressBarPx, 260, float32(len(lines)*16+8), colorOverlay, false)
		for i, line := range lines {
			ebitenutil.DebugPrintAt(screen, line, int(x)+6, int(progressBarPx)+4+i*16)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return parameter.WindowWidth, parameter.WindowHeight
}
