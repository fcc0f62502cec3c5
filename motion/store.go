package motion

import (
	"fmt"
	"sync/atomic"

	"github.com/lixenwraith/parallax/status"
	"github.com/lixenwraith/parallax/vmath"
)

// VectorIDs names the channel pair a Vec2 is written to
type VectorIDs struct {
	X, Y string
}

// Store holds the channels of one owner in registration order
type Store struct {
	channels []*Channel
	index    map[string]*Channel

	// arm re-arms the bound scheduler; nil until NewScheduler binds it
	arm func()

	statRejected *atomic.Int64
}

// NewStore creates an empty store; reg may be nil
func NewStore(reg *status.Registry) *Store {
	return &Store{
		index:        make(map[string]*Channel),
		statRejected: status.Counter(reg, "motion.target_rejected"),
	}
}

// Register adds a channel; registration order is the per-frame update order
func (s *Store) Register(cfg ChannelConfig) (*Channel, error) {
	if _, exists := s.index[cfg.ID]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateChannel, cfg.ID)
	}
	ch, err := newChannel(cfg)
	if err != nil {
		return nil, err
	}
	s.channels = append(s.channels, ch)
	s.index[ch.id] = ch
	return ch, nil
}

// MustRegister is Register for static channel tables; panics on error
func (s *Store) MustRegister(cfg ChannelConfig) *Channel {
	ch, err := s.Register(cfg)
	if err != nil {
		panic(err)
	}
	return ch
}

// SetTarget updates a channel's target and arms the scheduler if it left the
// channel unsettled. Non-finite values and unknown ids are ignored
func (s *Store) SetTarget(id string, value float64) {
	ch, ok := s.index[id]
	if !ok {
		return
	}
	if !vmath.Finite(value) {
		s.statRejected.Add(1)
		return
	}
	ch.target = value
	if !ch.Settled() {
		s.rearm()
	}
}

// SetVector writes v to an x/y channel pair; a non-finite vector is rejected whole
func (s *Store) SetVector(ids VectorIDs, v vmath.Vec2) {
	if !v.Finite() {
		s.statRejected.Add(1)
		return
	}
	s.SetTarget(ids.X, v.X)
	s.SetTarget(ids.Y, v.Y)
}

// ReadCurrent returns the latest current value; unknown ids read 0
func (s *Store) ReadCurrent(id string) float64 {
	if ch, ok := s.index[id]; ok {
		return ch.current
	}
	return 0
}

// ReadVector returns the current values of an x/y channel pair
func (s *Store) ReadVector(ids VectorIDs) vmath.Vec2 {
	return vmath.Vec2{X: s.ReadCurrent(ids.X), Y: s.ReadCurrent(ids.Y)}
}

// Reset force-sets current and target to value; the next frame publishes it
func (s *Store) Reset(id string, value float64) {
	ch, ok := s.index[id]
	if !ok {
		return
	}
	if !vmath.Finite(value) {
		s.statRejected.Add(1)
		return
	}
	ch.current = value
	ch.target = value
	ch.velocity = 0
	s.rearm()
}

// Settled reports whether every channel is within epsilon of its target
func (s *Store) Settled() bool {
	for _, ch := range s.channels {
		if !ch.Settled() {
			return false
		}
	}
	return true
}

// Channel returns the channel for id
func (s *Store) Channel(id string) (*Channel, bool) {
	ch, ok := s.index[id]
	return ch, ok
}

// State returns a snapshot of one channel
func (s *Store) State(id string) (ChannelState, bool) {
	ch, ok := s.index[id]
	if !ok {
		return ChannelState{}, false
	}
	return ch.State(), true
}

// IDs returns channel ids in update order
func (s *Store) IDs() []string {
	ids := make([]string, len(s.channels))
	for i, ch := range s.channels {
		ids[i] = ch.id
	}
	return ids
}

// Len returns the number of channels
func (s *Store) Len() int {
	return len(s.channels)
}

func (s *Store) rearm() {
	if s.arm != nil {
		s.arm()
	}
}
