package tilt

import (
	"log"
	"time"

	"github.com/lixenwraith/parallax/capability"
	"github.com/lixenwraith/parallax/clock"
	"github.com/lixenwraith/parallax/frame"
	"github.com/lixenwraith/parallax/motion"
	"github.com/lixenwraith/parallax/parameter"
	"github.com/lixenwraith/parallax/status"
	"github.com/lixenwraith/parallax/throttle"
	"github.com/lixenwraith/parallax/vmath"
)

// Axes are the channel ids the controller registers
var Axes = motion.VectorIDs{X: parameter.TiltXChannel, Y: parameter.TiltYChannel}

// Config tunes the controller; zero values select motion defaults
type Config struct {
	Interval time.Duration
	Damping  float64
	Epsilon  float64
	Spring   *motion.SpringConfig

	// Observer additionally receives every published axis value
	Observer motion.Sink
}

// Controller owns one mounted hero's store, scheduler and listeners
type Controller struct {
	frames  frame.Requester
	matcher capability.MediaMatcher
	src     clock.Source
	cfg     Config
	reg     *status.Registry

	capability capability.Capability
	surface    Surface
	style      func() motion.StyleSetter
	store      *motion.Store
	scheduler  *motion.Scheduler
	removers   []func()
	mounted    bool
}

// NewController creates an unmounted controller; src and reg may be nil
func NewController(frames frame.Requester, matcher capability.MediaMatcher, src clock.Source, cfg Config, reg *status.Registry) *Controller {
	return &Controller{
		frames:  frames,
		matcher: matcher,
		src:     src,
		cfg:     cfg,
		reg:     reg,
	}
}

// Mount resolves capability and, when motion is allowed, registers the axis
// channels and attaches pointer listeners. active reports whether motion runs
// Mounting an already mounted controller is a no-op
func (c *Controller) Mount(surface Surface, style func() motion.StyleSetter) (active bool, err error) {
	if c.mounted {
		return c.Active(), nil
	}

	c.store, c.scheduler = nil, nil
	c.surface, c.style = surface, style
	c.capability = capability.Resolve(c.matcher)
	c.mounted = true
	if !c.capability.MotionAllowed() {
		log.Printf("[Tilt] motion disabled (fine_pointer=%t reduced_motion=%t)",
			c.capability.HasFinePointer, c.capability.PrefersReducedMotion)
		return false, nil
	}

	store := motion.NewStore(c.reg)
	for _, axis := range []struct{ id, prop string }{
		{Axes.X, parameter.TiltXProperty},
		{Axes.Y, parameter.TiltYProperty},
	} {
		var sink motion.Sink = motion.NewPropertySink(axis.prop, style)
		if c.cfg.Observer != nil {
			sink = motion.MultiSink{sink, c.cfg.Observer}
		}
		if _, err := store.Register(motion.ChannelConfig{
			ID:      axis.id,
			Initial: parameter.NeutralTilt,
			Damping: c.cfg.Damping,
			Epsilon: c.cfg.Epsilon,
			Spring:  c.cfg.Spring,
			Sink:    sink,
		}); err != nil {
			c.mounted = false
			return false, err
		}
	}
	c.store = store
	c.scheduler = motion.NewScheduler(store, c.frames, c.reg)

	move := throttle.WrapWith(throttle.New(c.cfg.Interval, c.src, c.reg), func(e PointerEvent) {
		v, ok := Normalize(surface.Bounds(), e.ClientX, e.ClientY)
		if !ok {
			return
		}
		store.SetVector(Axes, v)
	})
	leave := func() {
		store.SetVector(Axes, vmath.Vec2{X: parameter.NeutralTilt, Y: parameter.NeutralTilt})
	}

	c.removers = append(c.removers,
		surface.OnPointerMove(move),
		surface.OnPointerLeave(leave),
	)
	log.Printf("[Tilt] mounted")
	return true, nil
}

// Unmount detaches listeners and cancels the pending frame; idempotent
func (c *Controller) Unmount() {
	if !c.mounted {
		return
	}
	c.mounted = false
	for _, remove := range c.removers {
		if remove != nil {
			remove()
		}
	}
	c.removers = nil
	if c.scheduler != nil {
		c.scheduler.Cancel()
	}
}

// Refresh re-resolves capability against the last mounted surface, e.g. after
// a host reports a preference change. Motion restarts from neutral
func (c *Controller) Refresh() (active bool, err error) {
	if !c.mounted {
		return false, nil
	}
	surface, style := c.surface, c.style
	c.Unmount()
	return c.Mount(surface, style)
}

// Active reports whether the controller is mounted with motion running
func (c *Controller) Active() bool {
	return c.mounted && c.store != nil && c.capability.MotionAllowed()
}

// Capability returns the capability resolved at the last Mount
func (c *Controller) Capability() capability.Capability {
	return c.capability
}

// Offset reads the current eased offset; zero when inactive
func (c *Controller) Offset() vmath.Vec2 {
	if c.store == nil {
		return vmath.Vec2{}
	}
	return c.store.ReadVector(Axes)
}

// Store returns the axis store, nil when motion never started
func (c *Controller) Store() *motion.Store {
	return c.store
}

// Scheduler returns the axis scheduler, nil when motion never started
func (c *Controller) Scheduler() *motion.Scheduler {
	return c.scheduler
}
