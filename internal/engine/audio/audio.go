// Package audio plays short feedback cues for pointer interactions.
package audio

import (
	"bytes"
	"fmt"
	"io"
	gomath "math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the sample rate for cue playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Preset cue shapes. Hover is a soft short tick, click a brighter blip.
const (
	HoverFreq = 660.0
	ClickFreq = 880.0

	HoverDuration = 45 * time.Millisecond
	ClickDuration = 90 * time.Millisecond
)

// Manager owns the speaker and mixes cues over it. All methods are safe for
// concurrent use; playback itself happens on the speaker's goroutine.
type Manager struct {
	mu sync.RWMutex

	initialized  bool
	enabled      bool
	sampleRate   beep.SampleRate
	masterVolume float64

	mixer *beep.Mixer
}

// New creates an audio manager. Call Init before playing.
func New() *Manager {
	return &Manager{
		enabled:      true,
		masterVolume: 1.0,
		mixer:        &beep.Mixer{},
	}
}

// Init opens the speaker and attaches the cue mixer.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	m.initialized = false
}

// IsInitialized returns whether the speaker is open.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetEnabled toggles cue playback without touching the speaker.
func (m *Manager) SetEnabled(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = on
}

// Enabled returns whether cues are being played.
func (m *Manager) Enabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled
}

// SetMasterVolume sets the cue volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// MasterVolume returns the cue volume.
func (m *Manager) MasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// Hover plays the hover tick.
func (m *Manager) Hover() error {
	return m.PlayCue(HoverFreq, HoverDuration)
}

// Click plays the click blip.
func (m *Manager) Click() error {
	return m.PlayCue(ClickFreq, ClickDuration)
}

// PlayCue mixes in a sine blip at the given frequency. Disabled or muted
// managers drop the cue silently; an unopened speaker is an error.
func (m *Manager) PlayCue(freq float64, dur time.Duration) error {
	m.mu.RLock()
	initialized := m.initialized
	enabled := m.enabled
	vol := m.masterVolume
	sr := m.sampleRate
	m.mu.RUnlock()

	if !initialized {
		return fmt.Errorf("audio not initialized")
	}
	if !enabled || vol <= 0 {
		return nil
	}

	m.play(&effects.Volume{
		Streamer: newBlip(sr, freq, dur),
		Base:     2,
		Volume:   volumeToGain(vol),
	})
	return nil
}

// PlayWAV mixes in a decoded WAV cue, resampled to the speaker rate.
func (m *Manager) PlayWAV(data []byte) error {
	m.mu.RLock()
	initialized := m.initialized
	enabled := m.enabled
	vol := m.masterVolume
	sr := m.sampleRate
	m.mu.RUnlock()

	if !initialized {
		return fmt.Errorf("audio not initialized")
	}
	if !enabled || vol <= 0 {
		return nil
	}

	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}

	var resampled beep.Streamer = streamer
	if format.SampleRate != sr {
		resampled = beep.Resample(4, format.SampleRate, sr, streamer)
	}

	m.play(&effects.Volume{
		Streamer: resampled,
		Base:     2,
		Volume:   volumeToGain(vol),
	})
	return nil
}

// play adds a streamer to the mixer under the speaker lock; the mixer is
// read concurrently by the speaker goroutine.
func (m *Manager) play(s beep.Streamer) {
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

// volumeToGain converts a 0-1 volume to the exponent effects.Volume expects
// with Base 2, so the perceived gain matches the linear setting.
func volumeToGain(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return gomath.Log2(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// blip is a fixed-length sine burst with a short linear attack and an
// exponential decay, so cues start and stop without popping.
type blip struct {
	freq       float64
	sampleRate float64
	pos        int
	length     int
	attack     int
}

func newBlip(sr beep.SampleRate, freq float64, dur time.Duration) *blip {
	length := sr.N(dur)
	if length < 1 {
		length = 1
	}
	attack := sr.N(2 * time.Millisecond)
	if attack < 1 {
		attack = 1
	}
	return &blip{
		freq:       freq,
		sampleRate: float64(sr),
		length:     length,
		attack:     attack,
	}
}

func (b *blip) Stream(samples [][2]float64) (int, bool) {
	if b.pos >= b.length {
		return 0, false
	}

	n := 0
	for i := range samples {
		if b.pos >= b.length {
			break
		}

		t := float64(b.pos) / b.sampleRate
		v := gomath.Sin(2 * gomath.Pi * b.freq * t)

		env := 1.0
		if b.pos < b.attack {
			env = float64(b.pos) / float64(b.attack)
		}
		env *= gomath.Exp(-4 * float64(b.pos) / float64(b.length))

		// Quarter scale keeps cues well under the WAV content they mix with.
		v *= 0.25 * env
		samples[i][0] = v
		samples[i][1] = v

		b.pos++
		n++
	}
	return n, true
}

func (b *blip) Err() error {
	return nil
}
