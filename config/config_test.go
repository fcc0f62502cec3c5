package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/parallax/capability"
	"github.com/lixenwraith/parallax/clock"
	"github.com/lixenwraith/parallax/frame/frametest"
	"github.com/lixenwraith/parallax/page"
	"github.com/lixenwraith/parallax/parameter"
	"github.com/lixenwraith/parallax/scroll"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parallax.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}
	if cfg.Tilt.Damping != parameter.DefaultDamping {
		t.Errorf("Tilt damping = %v, want %v", cfg.Tilt.Damping, parameter.DefaultDamping)
	}
	if cfg.Frame.Interval != 16*time.Millisecond {
		t.Errorf("Frame interval = %v, want 16ms", cfg.Frame.Interval)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Scroll.ShowAbove != parameter.ScrollShowAbove {
		t.Errorf("ShowAbove = %v, want default", cfg.Scroll.ShowAbove)
	}

	cfg, err = Load("")
	if err != nil || cfg == nil {
		t.Fatalf("Load(\"\") = (%v, %v)", cfg, err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
frame:
  interval: 8ms
tilt:
  damping: 0.08
  throttle: 32ms
  spring:
    frequency: 7
    damping_ratio: 0.6
scroll:
  hide_below: 200
capability:
  reduced_motion: "on"
audio:
  enabled: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Frame.Interval != 8*time.Millisecond {
		t.Errorf("Frame interval = %v, want 8ms", cfg.Frame.Interval)
	}
	if cfg.Tilt.Damping != 0.08 || cfg.Tilt.Throttle != 32*time.Millisecond {
		t.Errorf("Tilt = %+v", cfg.Tilt)
	}
	if cfg.Tilt.Epsilon != parameter.DefaultEpsilon {
		t.Errorf("Tilt epsilon = %v, want default kept", cfg.Tilt.Epsilon)
	}
	if !cfg.Audio.Enabled || cfg.Audio.BaseHz != parameter.ToneBaseHz {
		t.Errorf("Audio = %+v", cfg.Audio)
	}

	tc := cfg.TiltConfig()
	if tc.Spring == nil || tc.Spring.Frequency != 7 || tc.Spring.DampingRatio != 0.6 {
		t.Errorf("TiltConfig spring = %+v", tc.Spring)
	}
	sc := cfg.ScrollConfig()
	if sc.HideBelow != 200 || sc.ShowAbove != parameter.ScrollShowAbove {
		t.Errorf("ScrollConfig = %+v", sc)
	}

	m := cfg.Matcher(capability.StaticMatcher{capability.QueryFinePointer: true})
	if capability.Resolve(m).MotionAllowed() {
		t.Error("reduced_motion: on did not disable motion")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero_frame_interval", func(c *Config) { c.Frame.Interval = 0 }},
		{"damping_zero", func(c *Config) { c.Tilt.Damping = 0 }},
		{"damping_above_one", func(c *Config) { c.Tilt.Damping = 1.5 }},
		{"epsilon_negative", func(c *Config) { c.Tilt.Epsilon = -0.1 }},
		{"spring_negative_frequency", func(c *Config) { c.Tilt.Spring = &SpringConfig{Frequency: -1} }},
		{"show_above_negative", func(c *Config) { c.Scroll.ShowAbove = -1 }},
		{"hide_above_show", func(c *Config) { c.Scroll.HideBelow = 400 }},
		{"scroll_damping", func(c *Config) { c.Scroll.Damping = 2 }},
		{"bad_mode", func(c *Config) { c.Capability.FinePointer = "sometimes" }},
		{"volume", func(c *Config) { c.Audio.Volume = 1.5 }},
		{"span_exceeds_base", func(c *Config) { c.Audio.SpanHz = 500 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(writeConfig(t, "tilt: [not, a, map]")); err == nil {
		t.Error("Load accepted malformed YAML")
	}

	_, err := Load(writeConfig(t, "tilt:\n  damping: 3\n"))
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Load = %v, want ErrInvalid", err)
	}
}

func TestZeroScrollThresholdsReachTracker(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
scroll:
  show_above: 0
  jitter_px: 0
  tolerance: 0
`))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	doc := page.NewDocument(1800)
	doc.SetViewportHeight(800)
	doc.ScrollTo(50)

	rec := frametest.NewRecorder()
	mock := clock.NewMock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	tr := scroll.NewTracker(doc, rec, mock, cfg.ScrollConfig(), nil)
	if tr.Config().ShowAbove != 0 || tr.Config().JitterPx != 0 || tr.Config().Tolerance != 0 {
		t.Fatalf("Tracker config = %+v, want zero thresholds kept", tr.Config())
	}

	var got []scroll.State
	unsubscribe := tr.Subscribe(func(s scroll.State) { got = append(got, s) })
	defer unsubscribe()
	rec.Fire(mock.Now())
	if len(got) != 1 || !got[0].IsVisible {
		t.Fatalf("State at 50px = %+v, want visible with show_above 0", got)
	}

	// No jitter guard: a half-pixel move is still sampled and reported
	mock.Advance(20 * time.Millisecond)
	doc.ScrollTo(50.5)
	rec.Fire(mock.Now())
	if len(got) != 2 {
		t.Errorf("Expected sub-pixel move to notify with jitter_px 0, got %d notifications", len(got))
	}
}

func TestSpringZeroFieldsSelectDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "tilt:\n  spring: {}\n"))
	if err != nil {
		t.Fatalf("Load rejected empty spring: %v", err)
	}
	tc := cfg.TiltConfig()
	if tc.Spring == nil {
		t.Fatal("Expected spring easing enabled")
	}
	if tc.Spring.Frequency != parameter.DefaultSpringFrequency || tc.Spring.DampingRatio != parameter.DefaultSpringDampingRatio {
		t.Errorf("Spring = %+v, want parameter defaults", *tc.Spring)
	}
}
