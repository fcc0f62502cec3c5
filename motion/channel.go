package motion

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/lixenwraith/parallax/parameter"
	"github.com/lixenwraith/parallax/vmath"
)

var (
	ErrEmptyID          = errors.New("motion: channel id is empty")
	ErrDuplicateChannel = errors.New("motion: duplicate channel")
	ErrInvalidDamping   = errors.New("motion: damping must be in (0, 1]")
	ErrInvalidEpsilon   = errors.New("motion: epsilon must be > 0")
	ErrInvalidSpring    = errors.New("motion: spring frequency and damping ratio must be > 0")
)

// SpringConfig selects harmonica spring easing instead of exponential damping
type SpringConfig struct {
	Frequency    float64 // angular frequency; higher is faster
	DampingRatio float64 // 1 is critical, < 1 overshoots
}

// ChannelConfig describes one tracked quantity
// Zero Damping and Epsilon select the package defaults
type ChannelConfig struct {
	ID      string
	Initial float64
	Damping float64
	Epsilon float64
	Spring  *SpringConfig
	Sink    Sink
}

// ChannelState is an inspectable snapshot of a channel
type ChannelState struct {
	ID       string
	Current  float64
	Target   float64
	Velocity float64
	Damping  float64
	Epsilon  float64
	Settled  bool
}

// Channel tracks one quantity converging from current toward target
type Channel struct {
	id       string
	current  float64
	target   float64
	velocity float64
	damping  float64
	epsilon  float64
	spring   *harmonica.Spring
	sink     Sink
}

func newChannel(cfg ChannelConfig) (*Channel, error) {
	if cfg.ID == "" {
		return nil, ErrEmptyID
	}

	damping := cfg.Damping
	if damping == 0 {
		damping = parameter.DefaultDamping
	}
	if !vmath.Finite(damping) || damping <= parameter.MinDamping || damping > parameter.MaxDamping {
		return nil, fmt.Errorf("%w: channel %q got %v", ErrInvalidDamping, cfg.ID, cfg.Damping)
	}

	epsilon := cfg.Epsilon
	if epsilon == 0 {
		epsilon = parameter.DefaultEpsilon
	}
	if !vmath.Finite(epsilon) || epsilon <= 0 {
		return nil, fmt.Errorf("%w: channel %q got %v", ErrInvalidEpsilon, cfg.ID, cfg.Epsilon)
	}

	initial := cfg.Initial
	if !vmath.Finite(initial) {
		initial = 0
	}

	ch := &Channel{
		id:      cfg.ID,
		current: initial,
		target:  initial,
		damping: damping,
		epsilon: epsilon,
		sink:    cfg.Sink,
	}

	if cfg.Spring != nil {
		sc := *cfg.Spring
		if sc.Frequency == 0 {
			sc.Frequency = parameter.DefaultSpringFrequency
		}
		if sc.DampingRatio == 0 {
			sc.DampingRatio = parameter.DefaultSpringDampingRatio
		}
		if !vmath.Finite(sc.Frequency) || !vmath.Finite(sc.DampingRatio) || sc.Frequency <= 0 || sc.DampingRatio <= 0 {
			return nil, fmt.Errorf("%w: channel %q", ErrInvalidSpring, cfg.ID)
		}
		spring := harmonica.NewSpring(harmonica.FPS(parameter.SpringFPS), sc.Frequency, sc.DampingRatio)
		ch.spring = &spring
	}

	return ch, nil
}

// ID returns the channel id
func (c *Channel) ID() string { return c.id }

// Current returns the last stepped value
func (c *Channel) Current() float64 { return c.current }

// Target returns the value the channel converges toward
func (c *Channel) Target() float64 { return c.target }

// Settled reports |current - target| <= epsilon (and near-zero velocity for springs)
func (c *Channel) Settled() bool {
	if math.Abs(c.current-c.target) > c.epsilon {
		return false
	}
	return c.spring == nil || math.Abs(c.velocity) <= c.epsilon
}

// State returns a snapshot of the channel
func (c *Channel) State() ChannelState {
	return ChannelState{
		ID:       c.id,
		Current:  c.current,
		Target:   c.target,
		Velocity: c.velocity,
		Damping:  c.damping,
		Epsilon:  c.epsilon,
		Settled:  c.Settled(),
	}
}

// step advances current one frame toward target
func (c *Channel) step() {
	var next, vel float64
	if c.spring != nil {
		next, vel = c.spring.Update(c.current, c.velocity, c.target)
	} else {
		next = c.current + (c.target-c.current)*c.damping
	}

	if !vmath.Finite(next) || !vmath.Finite(vel) {
		return
	}
	c.current = next
	c.velocity = vel
}
