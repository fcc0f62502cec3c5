// Package window hosts the motion engine in an ebiten window: the cursor
// tilts the hero card, the wheel scrolls the page, and ebiten's Update tick
// drives the frame loop.
package window

import (
	"log"

	"github.com/lixenwraith/parallax/capability"
	"github.com/lixenwraith/parallax/config"
	"github.com/lixenwraith/parallax/frame"
	"github.com/lixenwraith/parallax/motion"
	"github.com/lixenwraith/parallax/page"
	"github.com/lixenwraith/parallax/parameter"
	"github.com/lixenwraith/parallax/scroll"
	"github.com/lixenwraith/parallax/status"
	"github.com/lixenwraith/parallax/tilt"
	"github.com/lixenwraith/parallax/vmath"
)

const (
	progressBarPx = 6.0
	heroTopPx     = 80.0
	heroHeightPx  = 280.0
	contentRowPx  = 24.0
	contentPx     = 4800.0
	buttonW       = 120.0
	buttonH       = 32.0
)

// Input is one tick's sampled user input
type Input struct {
	CursorX, CursorY float64
	CursorInside     bool
	WheelY           float64 // positive scrolls up, as ebiten reports
	Click            bool
	Focused          bool
	Quit             bool
	ToggleDebug      bool
	Home, End        bool
}

// App is the window host's state, independent of ebiten's runtime
// Every method runs on the ebiten update goroutine
type App struct {
	loop *frame.Loop
	cfg  *config.Config
	reg  *status.Registry

	width, height float64

	doc        *page.Document
	hero       *page.Region
	heroEl     *page.Element
	progressEl *page.Element

	tilt        *tilt.Controller
	tracker     *scroll.Tracker
	unsubscribe func()
	progress    *motion.Store
	progressRun *motion.Scheduler
	state       scroll.State

	debug   bool
	mounted bool
	closed  bool
}

// NewApp wires the page model and engine for a width x height window
func NewApp(loop *frame.Loop, cfg *config.Config, reg *status.Registry, matcher capability.MediaMatcher, observer motion.Sink, width, height int) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{
		loop:       loop,
		cfg:        cfg,
		reg:        reg,
		width:      float64(width),
		height:     float64(height),
		doc:        page.NewDocument(contentPx),
		hero:       page.NewRegion(),
		heroEl:     page.NewElement(nil),
		progressEl: page.NewElement(nil),
		debug:      cfg.Debug,
	}
	a.doc.SetViewportHeight(a.height - progressBarPx)

	tc := cfg.TiltConfig()
	tc.Observer = observer
	a.tilt = tilt.NewController(loop, cfg.Matcher(matcher), loop.Clock(), tc, reg)

	a.progress = motion.NewStore(reg)
	if _, err := a.progress.Register(motion.ChannelConfig{
		ID:      parameter.ScrollProgressChannel,
		Damping: cfg.Scroll.Damping,
		Sink: motion.NewPropertySink(parameter.ScrollProgressProperty, func() motion.StyleSetter {
			return a.progressEl
		}),
	}); err != nil {
		return nil, err
	}
	a.progressRun = motion.NewScheduler(a.progress, loop, reg)
	a.tracker = scroll.NewTracker(a.doc, loop, loop.Clock(), cfg.ScrollConfig(), reg)
	return a, nil
}

// Mount starts tilt and scroll tracking
func (a *App) Mount() error {
	if a.mounted || a.closed {
		return nil
	}
	a.relayout()
	active, err := a.tilt.Mount(a.hero, a.heroStyle)
	if err != nil {
		return err
	}
	a.unsubscribe = a.tracker.Subscribe(a.onScroll)
	a.mounted = true
	log.Printf("[Window] mounted, tilt active=%t", active)
	return nil
}

// Close tears down listeners and pending frames; idempotent
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.tilt.Unmount()
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	a.progressRun.Cancel()
}

// Update applies input, then advances the frame loop one step
// Returns false when the user asked to quit
func (a *App) Update(in Input) bool {
	if a.closed {
		return false
	}
	if in.Quit {
		return false
	}

	clk := a.loop.Clock()
	if clk.IsPaused() == in.Focused {
		clk.SetPaused(!in.Focused)
		if !in.Focused {
			a.hero.Leave()
		}
	}

	if in.ToggleDebug {
		a.debug = !a.debug
	}
	switch {
	case in.Home:
		a.doc.ScrollTo(0)
	case in.End:
		a.doc.ScrollToEnd()
	case in.WheelY != 0:
		a.doc.ScrollBy(-in.WheelY * parameter.WheelPx)
	case in.Click && a.state.IsVisible && page.Contains(a.topButton(), in.CursorX, in.CursorY):
		a.doc.ScrollTo(0)
	}

	a.relayout()
	if in.CursorInside {
		a.hero.Pointer(in.CursorX, in.CursorY)
	} else {
		a.hero.Leave()
	}

	a.loop.Step(clk.Now())
	return true
}

func (a *App) onScroll(s scroll.State) {
	a.state = s
	a.progress.SetTarget(parameter.ScrollProgressChannel, s.ProgressRatio)
}

// heroRect is the unshifted card for the current scroll offset
func (a *App) heroRect() tilt.Rect {
	w := a.width * parameter.HeroWidthRatio
	return tilt.Rect{
		X: (a.width - w) / 2,
		Y: heroTopPx - a.doc.Offset(),
		W: w,
		H: heroHeightPx,
	}
}

func (a *App) topButton() tilt.Rect {
	return tilt.Rect{
		X: a.width - buttonW - 16,
		Y: a.height - buttonH - 16,
		W: buttonW,
		H: buttonH,
	}
}

func (a *App) relayout() {
	a.hero.SetBounds(a.heroRect())
}

// heroStyle resolves the hero element; nil while it is scrolled out of view
func (a *App) heroStyle() motion.StyleSetter {
	r := a.heroRect()
	if r.Y+r.H <= 0 {
		return nil
	}
	return a.heroEl
}

// Tilt returns the eased hero offset read back from its style
func (a *App) Tilt() vmath.Vec2 {
	return vmath.Vec2{
		X: a.heroEl.Float(parameter.TiltXProperty),
		Y: a.heroEl.Float(parameter.TiltYProperty),
	}
}

// Progress returns the eased scroll progress
func (a *App) Progress() float64 {
	return a.progressEl.Float(parameter.ScrollProgressProperty)
}

// State returns the last delivered scroll state
func (a *App) State() scroll.State {
	return a.state
}

// Controller returns the hero tilt controller
func (a *App) Controller() *tilt.Controller {
	return a.tilt
}
