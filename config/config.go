// Package config loads engine and host settings from YAML over the
// parameter defaults.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/parallax/capability"
	"github.com/lixenwraith/parallax/motion"
	"github.com/lixenwraith/parallax/parameter"
	"github.com/lixenwraith/parallax/scroll"
	"github.com/lixenwraith/parallax/tilt"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("config: invalid")

// Config is the full settings tree
type Config struct {
	Frame      FrameConfig      `yaml:"frame"`
	Tilt       TiltConfig       `yaml:"tilt"`
	Scroll     ScrollConfig     `yaml:"scroll"`
	Capability CapabilityConfig `yaml:"capability"`
	Audio      AudioConfig      `yaml:"audio"`
	Debug      bool             `yaml:"debug"`
}

// FrameConfig sets the host frame cadence
type FrameConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// SpringConfig enables spring easing when present
type SpringConfig struct {
	Frequency    float64 `yaml:"frequency"`
	DampingRatio float64 `yaml:"damping_ratio"`
}

// TiltConfig tunes the hero parallax
type TiltConfig struct {
	Damping  float64       `yaml:"damping"`
	Epsilon  float64       `yaml:"epsilon"`
	Throttle time.Duration `yaml:"throttle"`
	Spring   *SpringConfig `yaml:"spring,omitempty"`
}

// ScrollConfig tunes progress tracking and the smoothed progress channel
type ScrollConfig struct {
	Interval  time.Duration `yaml:"interval"`
	JitterPx  float64       `yaml:"jitter_px"`
	Tolerance float64       `yaml:"tolerance"`
	ShowAbove float64       `yaml:"show_above"`
	HideBelow float64       `yaml:"hide_below"`
	Damping   float64       `yaml:"damping"`
}

// CapabilityConfig forces capability answers; auto defers to the host
type CapabilityConfig struct {
	ReducedMotion string `yaml:"reduced_motion"`
	FinePointer   string `yaml:"fine_pointer"`
}

// AudioConfig controls the tilt tone
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	BaseHz  float64 `yaml:"base_hz"`
	SpanHz  float64 `yaml:"span_hz"`
	Volume  float64 `yaml:"volume"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Frame: FrameConfig{Interval: parameter.FrameInterval},
		Tilt: TiltConfig{
			Damping:  parameter.DefaultDamping,
			Epsilon:  parameter.DefaultEpsilon,
			Throttle: parameter.DefaultThrottleInterval,
		},
		Scroll: ScrollConfig{
			Interval:  parameter.DefaultThrottleInterval,
			JitterPx:  parameter.ScrollJitterPx,
			Tolerance: parameter.ScrollTolerance,
			ShowAbove: parameter.ScrollShowAbove,
			Damping:   parameter.ScrollProgressDamping,
		},
		Capability: CapabilityConfig{
			ReducedMotion: string(capability.ModeAuto),
			FinePointer:   string(capability.ModeAuto),
		},
		Audio: AudioConfig{
			BaseHz: parameter.ToneBaseHz,
			SpanHz: parameter.ToneSpanHz,
			Volume: parameter.ToneVolume,
		},
	}
}

// Load reads path over the defaults; a missing file yields Default
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("[Config] %s not found, using defaults", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	log.Printf("[Config] loaded %s", path)
	return cfg, nil
}

// Validate checks ranges; every error wraps ErrInvalid
func (c *Config) Validate() error {
	if c.Frame.Interval <= 0 {
		return fmt.Errorf("%w: frame.interval must be > 0, got %v", ErrInvalid, c.Frame.Interval)
	}
	if c.Tilt.Damping <= parameter.MinDamping || c.Tilt.Damping > parameter.MaxDamping {
		return fmt.Errorf("%w: tilt.damping must be in (0, 1], got %v", ErrInvalid, c.Tilt.Damping)
	}
	if c.Tilt.Epsilon <= 0 {
		return fmt.Errorf("%w: tilt.epsilon must be > 0, got %v", ErrInvalid, c.Tilt.Epsilon)
	}
	if c.Tilt.Throttle < 0 {
		return fmt.Errorf("%w: tilt.throttle must be >= 0, got %v", ErrInvalid, c.Tilt.Throttle)
	}
	if s := c.Tilt.Spring; s != nil && (s.Frequency < 0 || s.DampingRatio < 0) {
		return fmt.Errorf("%w: tilt.spring frequency and damping_ratio must be >= 0 (0 selects the default)", ErrInvalid)
	}
	if c.Scroll.Interval < 0 {
		return fmt.Errorf("%w: scroll.interval must be >= 0, got %v", ErrInvalid, c.Scroll.Interval)
	}
	if c.Scroll.JitterPx < 0 || c.Scroll.Tolerance < 0 {
		return fmt.Errorf("%w: scroll.jitter_px and scroll.tolerance must be >= 0", ErrInvalid)
	}
	if c.Scroll.ShowAbove < 0 {
		return fmt.Errorf("%w: scroll.show_above must be >= 0, got %v", ErrInvalid, c.Scroll.ShowAbove)
	}
	if c.Scroll.HideBelow < 0 || (c.Scroll.HideBelow > 0 && c.Scroll.HideBelow >= c.Scroll.ShowAbove) {
		return fmt.Errorf("%w: scroll.hide_below must be 0 or below show_above (%v), got %v",
			ErrInvalid, c.Scroll.ShowAbove, c.Scroll.HideBelow)
	}
	if c.Scroll.Damping <= parameter.MinDamping || c.Scroll.Damping > parameter.MaxDamping {
		return fmt.Errorf("%w: scroll.damping must be in (0, 1], got %v", ErrInvalid, c.Scroll.Damping)
	}
	if _, err := capability.ParseMode(c.Capability.ReducedMotion); err != nil {
		return fmt.Errorf("%w: capability.reduced_motion: %v", ErrInvalid, err)
	}
	if _, err := capability.ParseMode(c.Capability.FinePointer); err != nil {
		return fmt.Errorf("%w: capability.fine_pointer: %v", ErrInvalid, err)
	}
	if c.Audio.BaseHz <= 0 || c.Audio.SpanHz < 0 || c.Audio.SpanHz >= c.Audio.BaseHz {
		return fmt.Errorf("%w: audio needs base_hz > span_hz >= 0, got %v/%v", ErrInvalid, c.Audio.BaseHz, c.Audio.SpanHz)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume must be in [0, 1], got %v", ErrInvalid, c.Audio.Volume)
	}
	return nil
}

// Matcher applies the capability overrides to a host matcher
func (c *Config) Matcher(host capability.MediaMatcher) capability.MediaMatcher {
	reduced, _ := capability.ParseMode(c.Capability.ReducedMotion)
	fine, _ := capability.ParseMode(c.Capability.FinePointer)
	m := capability.Override(host, capability.QueryReducedMotion, reduced)
	return capability.Override(m, capability.QueryFinePointer, fine)
}

// TiltConfig converts the tilt section for tilt.NewController
func (c *Config) TiltConfig() tilt.Config {
	tc := tilt.Config{
		Interval: c.Tilt.Throttle,
		Damping:  c.Tilt.Damping,
		Epsilon:  c.Tilt.Epsilon,
	}
	if s := c.Tilt.Spring; s != nil {
		sc := motion.SpringConfig{Frequency: s.Frequency, DampingRatio: s.DampingRatio}
		if sc.Frequency == 0 {
			sc.Frequency = parameter.DefaultSpringFrequency
		}
		if sc.DampingRatio == 0 {
			sc.DampingRatio = parameter.DefaultSpringDampingRatio
		}
		tc.Spring = &sc
	}
	return tc
}

// ScrollConfig converts the scroll section for scroll.NewTracker
func (c *Config) ScrollConfig() scroll.Config {
	return scroll.Config{
		Interval:  c.Scroll.Interval,
		JitterPx:  c.Scroll.JitterPx,
		Tolerance: c.Scroll.Tolerance,
		ShowAbove: c.Scroll.ShowAbove,
		HideBelow: c.Scroll.HideBelow,
	}
}
