package terminal

import (
	"context"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

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

// Options configures a Host; zero fields take defaults
type Options struct {
	Config   *config.Config
	Registry *status.Registry
	// Matcher replaces the screen's own capability answers
	Matcher capability.MediaMatcher
	// Observer additionally receives tilt values, e.g. an audio.ToneSink
	Observer motion.Sink
	// OnQuit runs on the loop goroutine when the user asks to exit
	OnQuit func()
}

// Host binds one tcell screen to the engine
// Every method except Pump runs on the frame loop goroutine
type Host struct {
	screen   tcell.Screen
	loop     *frame.Loop
	cfg      *config.Config
	reg      *status.Registry
	renderer *Renderer
	onQuit   func()

	doc        *page.Document
	hero       *page.Region
	heroEl     *page.Element
	progressEl *page.Element
	layout     Layout

	tilt        *tilt.Controller
	tracker     *scroll.Tracker
	unsubscribe func()
	progress    *motion.Store
	progressRun *motion.Scheduler
	state       scroll.State

	redraw  frame.Handle
	drawFn  frame.Callback
	debug   bool
	mounted bool
	closed  bool
}

// NewHost wires the document, hero, trackers and renderer for screen
func NewHost(screen tcell.Screen, loop *frame.Loop, opts Options) (*Host, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	h := &Host{
		screen:   screen,
		loop:     loop,
		cfg:      cfg,
		reg:      opts.Registry,
		renderer: NewRenderer(screen),
		onQuit:   opts.OnQuit,
		doc:      page.NewDocument(parameter.DocumentRows * parameter.RowPx),
		hero:     page.NewRegion(),
		debug:    cfg.Debug,
	}
	h.drawFn = h.draw
	h.heroEl = page.NewElement(h.Invalidate)
	h.progressEl = page.NewElement(h.Invalidate)

	matcher := opts.Matcher
	if matcher == nil {
		matcher = NewMatcher(screen)
	}
	matcher = cfg.Matcher(matcher)

	tc := cfg.TiltConfig()
	tc.Observer = opts.Observer
	h.tilt = tilt.NewController(loop, matcher, loop.Clock(), tc, h.reg)

	h.progress = motion.NewStore(h.reg)
	if _, err := h.progress.Register(motion.ChannelConfig{
		ID:      parameter.ScrollProgressChannel,
		Damping: cfg.Scroll.Damping,
		Sink:    motion.NewPropertySink(parameter.ScrollProgressProperty, h.progressStyle),
	}); err != nil {
		return nil, err
	}
	h.progressRun = motion.NewScheduler(h.progress, loop, h.reg)

	h.tracker = scroll.NewTracker(h.doc, loop, loop.Clock(), cfg.ScrollConfig(), h.reg)
	return h, nil
}

// Mount sizes the document, starts tilt and subscribes to scroll
func (h *Host) Mount() error {
	if h.mounted || h.closed {
		return nil
	}
	h.resize()

	active, err := h.tilt.Mount(h.hero, h.heroStyle)
	if err != nil {
		return err
	}
	h.unsubscribe = h.tracker.Subscribe(h.onScroll)
	h.mounted = true

	log.Printf("[Host] mounted, tilt active=%t", active)
	h.Invalidate()
	return nil
}

// Close tears down listeners and pending frames; idempotent
func (h *Host) Close() {
	if h.closed {
		return
	}
	h.closed = true

	h.tilt.Unmount()
	if h.unsubscribe != nil {
		h.unsubscribe()
		h.unsubscribe = nil
	}
	h.progressRun.Cancel()
	if h.redraw != 0 {
		h.loop.CancelFrame(h.redraw)
		h.redraw = 0
	}
	log.Printf("[Host] closed")
}

// Pump forwards screen events to the loop until the screen is finalized
// Runs on its own goroutine
func (h *Host) Pump(ctx context.Context) error {
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		h.loop.Post(func() { h.HandleEvent(ev) })
	}
}

// HandleEvent applies one screen event
func (h *Host) HandleEvent(ev tcell.Event) {
	if h.closed {
		return
	}

	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
		h.resize()
		h.Invalidate()

	case *tcell.EventFocus:
		h.loop.Clock().SetPaused(!ev.Focused)
		if !ev.Focused {
			h.hero.Leave()
		}

	case *tcell.EventKey:
		h.handleKey(ev)

	case *tcell.EventMouse:
		h.handleMouse(ev)
	}
}

func (h *Host) handleKey(ev *tcell.EventKey) {
	rows := viewportRows(h.doc) - 1
	if rows < 1 {
		rows = 1
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		h.quit()
	case tcell.KeyPgDn:
		h.scrollRows(rows)
	case tcell.KeyPgUp:
		h.scrollRows(-rows)
	case tcell.KeyDown:
		h.scrollRows(1)
	case tcell.KeyUp:
		h.scrollRows(-1)
	case tcell.KeyHome:
		h.doc.ScrollTo(0)
	case tcell.KeyEnd:
		h.doc.ScrollToEnd()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			h.quit()
		case ' ', 'f':
			h.scrollRows(rows)
		case 'b':
			h.scrollRows(-rows)
		case 'j':
			h.scrollRows(1)
		case 'k':
			h.scrollRows(-1)
		case 'g':
			h.doc.ScrollTo(0)
		case 'G':
			h.doc.ScrollToEnd()
		case 'd':
			h.debug = !h.debug
			h.Invalidate()
		case 'p':
			paused := !h.loop.Clock().IsPaused()
			h.loop.Clock().SetPaused(paused)
			log.Printf("[Host] frame clock paused=%t", paused)
		}
	}
	h.relayout()
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		h.scrollRows(-parameter.WheelRows)
	case buttons&tcell.WheelDown != 0:
		h.scrollRows(parameter.WheelRows)
	case buttons&tcell.Button1 != 0 && h.state.IsVisible && inRect(h.layout.TopButton, x, y):
		h.doc.ScrollTo(0)
	}

	h.relayout()
	// Cell centers keep edge cells symmetric after normalization
	h.hero.Pointer(float64(x)+0.5, float64(y)+0.5)
}

func (h *Host) scrollRows(rows int) {
	h.doc.ScrollBy(float64(rows) * parameter.RowPx)
}

// Invalidate schedules one redraw on the next frame
func (h *Host) Invalidate() {
	if h.closed || h.redraw != 0 {
		return
	}
	h.redraw = h.loop.RequestFrame(h.drawFn)
}

func (h *Host) draw(time.Time) {
	h.redraw = 0
	h.relayout()

	v := View{
		Layout: h.layout,
		Doc:    h.doc,
		Tilt: vmath.Vec2{
			X: h.heroEl.Float(parameter.TiltXProperty),
			Y: h.heroEl.Float(parameter.TiltYProperty),
		},
		Progress: h.progressEl.Float(parameter.ScrollProgressProperty),
		Scroll:   h.state,
		Motion:   h.tilt.Active(),
	}
	if h.debug && h.reg != nil {
		v.Overlay = h.reg.Lines()
	}
	h.renderer.Draw(v)
}

func (h *Host) onScroll(s scroll.State) {
	h.state = s
	h.progress.SetTarget(parameter.ScrollProgressChannel, s.ProgressRatio)
	h.Invalidate()
}

func (h *Host) resize() {
	_, height := h.screen.Size()
	h.doc.SetViewportHeight(float64(height-parameter.TopMargin) * parameter.RowPx)
	h.relayout()
}

func (h *Host) relayout() {
	w, height := h.screen.Size()
	h.layout = ComputeLayout(w, height, h.doc)
	h.hero.SetBounds(h.layout.Hero)
}

// heroStyle resolves the hero element; nil while it is scrolled off screen
func (h *Host) heroStyle() motion.StyleSetter {
	hero := h.layout.Hero
	if hero.Y+hero.H <= float64(parameter.TopMargin) {
		return nil
	}
	return h.heroEl
}

func (h *Host) progressStyle() motion.StyleSetter {
	return h.progressEl
}

func (h *Host) quit() {
	if h.onQuit != nil {
		h.onQuit()
	}
}

// State returns the last delivered scroll state
func (h *Host) State() scroll.State {
	return h.state
}

// Document returns the scrolled page
func (h *Host) Document() *page.Document {
	return h.doc
}

// Tilt returns the hero controller
func (h *Host) Tilt() *tilt.Controller {
	return h.tilt
}

// Hero returns the hero element carrying the tilt properties
func (h *Host) Hero() *page.Element {
	return h.heroEl
}

// ProgressElement returns the element carrying the eased progress
func (h *Host) ProgressElement() *page.Element {
	return h.progressEl
}
