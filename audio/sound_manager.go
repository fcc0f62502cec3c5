package audio

import (
	"log"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/parallax/parameter"
)

const sampleRate = beep.SampleRate(parameter.ToneSampleRate)

// SoundManager owns the speaker and the tilt tone
// Every method is safe to call when the speaker never initialized
type SoundManager struct {
	mu          sync.Mutex
	tone        *ToneGenerator
	toneCtrl    *beep.Ctrl
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a manager with a tone at baseHz and volume
func NewSoundManager(baseHz, volume float64) *SoundManager {
	return &SoundManager{
		tone:  NewToneGenerator(sampleRate, baseHz, volume),
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the audio device; calling twice is a no-op
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(parameter.ToneBufferDuration))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	log.Printf("[Audio] speaker initialized at %d Hz", sampleRate)
	return nil
}

// Tone returns the generator the tone sink drives
func (sm *SoundManager) Tone() *ToneGenerator {
	return sm.tone
}

// PlayTone starts the continuous tone; no-op if playing or uninitialized
func (sm *SoundManager) PlayTone() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	if sm.toneCtrl != nil {
		speaker.Lock()
		sm.toneCtrl.Paused = false
		speaker.Unlock()
		return
	}

	sm.toneCtrl = &beep.Ctrl{Streamer: sm.tone, Paused: false}
	speaker.Lock()
	sm.mixer.Add(sm.toneCtrl)
	speaker.Unlock()
}

// PauseTone silences the tone without dropping it from the mixer
func (sm *SoundManager) PauseTone() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.toneCtrl == nil || !sm.initialized {
		return
	}
	speaker.Lock()
	sm.toneCtrl.Paused = true
	speaker.Unlock()
}

// Playing reports whether the tone is audible
func (sm *SoundManager) Playing() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.toneCtrl == nil || !sm.initialized {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !sm.toneCtrl.Paused
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	if sm.toneCtrl != nil {
		sm.toneCtrl.Paused = true
	}
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker Close; clearing the mixer leaves it silent
	sm.toneCtrl = nil
	sm.initialized = false
}
