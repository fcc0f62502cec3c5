package audio

import (
	"testing"
)

// TestSoundManagerGracefulDegradation verifies operations don't panic when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(220, 0.1)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	sm.PlayTone()
	sm.PauseTone()
	if sm.Playing() {
		t.Error("Playing reported true without initialization")
	}
	sm.Cleanup()
}

// TestSoundManagerInitialization verifies the manager can be initialized and cleaned up
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager(220, 0.1)

	// Speaker initialization may fail in CI without audio devices
	err := sm.Initialize()
	if err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}

	if err := sm.Initialize(); err != nil {
		t.Errorf("Second initialization should be a no-op, got error: %v", err)
	}

	sm.PlayTone()
	if !sm.Playing() {
		t.Error("Tone not playing after PlayTone")
	}
	sm.PauseTone()
	if sm.Playing() {
		t.Error("Tone still playing after PauseTone")
	}

	sm.Cleanup()
	sm.PlayTone()
	if sm.Playing() {
		t.Error("Tone playing after Cleanup")
	}
}

func TestSoundManagerToneShared(t *testing.T) {
	sm := NewSoundManager(330, 0.1)
	if sm.Tone() == nil || sm.Tone().Frequency() != 330 {
		t.Errorf("Tone frequency = %v, want 330", sm.Tone().Frequency())
	}
}
