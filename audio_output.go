package main

import "fmt"

const (
	AUDIO_BACKEND_OTO = iota
	AUDIO_BACKEND_NULL
)

// AudioOutput drives an OscillatorEngine from a playback device's callback.
// Start/Stop only gate the device; the engine itself has no paused state.
type AudioOutput interface {
	Start()
	Stop()
	Close()
	IsStarted() bool
}

// NewAudioOutput initializes engine at sampleRate and attaches it to the
// selected backend. tap may be nil.
func NewAudioOutput(backend int, sampleRate int, channels int, engine *OscillatorEngine, tap *ScopeTap) (AudioOutput, error) {
	if channels < 1 {
		return nil, fmt.Errorf("audio output: invalid channel count %d", channels)
	}
	if !engine.Initialized() {
		if err := engine.Initialize(float64(sampleRate)); err != nil {
			return nil, fmt.Errorf("audio output: %w", err)
		}
	}

	switch backend {
	case AUDIO_BACKEND_OTO:
		player, err := NewOtoPlayer(sampleRate, channels)
		if err != nil {
			return nil, fmt.Errorf("audio output: oto: %w", err)
		}
		player.SetupPlayer(engine, tap)
		return player, nil
	case AUDIO_BACKEND_NULL:
		return NewNullPlayer(channels, engine, tap), nil
	default:
		return nil, fmt.Errorf("audio output: unknown backend %d", backend)
	}
}
