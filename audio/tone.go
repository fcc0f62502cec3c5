// Package audio sonifies motion channels: a ToneSink maps a channel value to
// the pitch of a continuous sine played through a beep speaker mixer.
package audio

import (
	"math"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/parallax/parameter"
	"github.com/lixenwraith/parallax/status"
)

// ToneGenerator streams a sine whose frequency and volume are set from
// another goroutine. The frame loop writes, the speaker goroutine reads
type ToneGenerator struct {
	sr     beep.SampleRate
	freq   status.AtomicFloat // target Hz
	volume status.AtomicFloat

	current float64 // glided Hz, speaker goroutine only
	phase   float64
}

// NewToneGenerator creates a generator at freq Hz and volume in [0, 1]
func NewToneGenerator(sr beep.SampleRate, freq, volume float64) *ToneGenerator {
	g := &ToneGenerator{sr: sr, current: freq}
	g.freq.Store(freq)
	g.volume.Store(volume)
	return g
}

// SetFrequency updates the target pitch; the stream glides toward it
func (g *ToneGenerator) SetFrequency(hz float64) {
	if hz > 0 && !math.IsInf(hz, 0) {
		g.freq.Store(hz)
	}
}

// Frequency returns the target pitch
func (g *ToneGenerator) Frequency() float64 {
	return g.freq.Load()
}

// SetVolume clamps to [0, 1]
func (g *ToneGenerator) SetVolume(v float64) {
	g.volume.Store(math.Max(0, math.Min(1, v)))
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	target := g.freq.Load()
	vol := g.volume.Load()
	for i := range samples {
		// Same exponential step as motion channels, per sample
		g.current += (target - g.current) * parameter.ToneGlide

		sample := vol * math.Sin(2*math.Pi*g.phase)

		samples[i][0] = sample
		samples[i][1] = sample

		g.phase += g.current / float64(g.sr)
		g.phase -= math.Floor(g.phase)
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// ToneSink is a motion.Sink mapping one channel's [-1, 1] value to pitch
// Values from other channels are accepted and ignored
type ToneSink struct {
	Channel string
	BaseHz  float64
	SpanHz  float64
	gen     *ToneGenerator
}

// NewToneSink binds channel to gen; pitch = base + span*value
func NewToneSink(channel string, gen *ToneGenerator, baseHz, spanHz float64) *ToneSink {
	return &ToneSink{Channel: channel, BaseHz: baseHz, SpanHz: spanHz, gen: gen}
}

// Publish implements motion.Sink
func (s *ToneSink) Publish(id string, value float64) bool {
	if s == nil || s.gen == nil {
		return false
	}
	if id != s.Channel {
		return true
	}
	value = math.Max(-1, math.Min(1, value))
	s.gen.SetFrequency(s.BaseHz + s.SpanHz*value)
	return true
}
