// oscillator_engine.go - Phase-accumulator oscillator for the Intuition Tone engine

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

var (
	ErrInvalidSampleRate  = errors.New("oscillator: sample rate must be positive and finite")
	ErrAlreadyInitialized = errors.New("oscillator: engine already initialized")
)

// RandomSource yields uniform values in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

func newDefaultRandomSource() RandomSource {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// OscillatorEngine is a single phase-accumulator voice. FillBuffer is the
// only method meant for the audio path; the tunables live in params and may
// be changed from any goroutine while audio is running.
type OscillatorEngine struct {
	// Producer-owned state. Nothing outside FillBuffer/Initialize writes these.
	phase       float64 // Position within the current cycle, always in [0, 1)
	sampleRate  float64 // Output rate in Hz, fixed by Initialize
	initialized bool

	params *OscillatorParams
	random RandomSource // Only consulted by WAVE_NOISE
}

// NewOscillatorEngine creates an uninitialized engine. A nil params gets the
// defaults; a nil random gets a freshly seeded PCG source.
func NewOscillatorEngine(params *OscillatorParams, random RandomSource) *OscillatorEngine {
	if params == nil {
		params = NewOscillatorParams()
	}
	if random == nil {
		random = newDefaultRandomSource()
	}
	return &OscillatorEngine{
		params: params,
		random: random,
	}
}

// Initialize fixes the sample rate and resets phase. It may be called once.
func (e *OscillatorEngine) Initialize(sampleRate float64) error {
	if e.initialized {
		oscPrecondition("Initialize called twice")
		return ErrAlreadyInitialized
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 1) {
		oscPrecondition("non-positive or non-finite sample rate")
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	e.sampleRate = sampleRate
	e.phase = 0
	e.initialized = true
	return nil
}

func (e *OscillatorEngine) Initialized() bool {
	return e.initialized
}

func (e *OscillatorEngine) SampleRate() float64 {
	return e.sampleRate
}

// Phase returns the accumulator. Only safe from the goroutine driving FillBuffer.
func (e *OscillatorEngine) Phase() float64 {
	return e.phase
}

func (e *OscillatorEngine) Params() *OscillatorParams {
	return e.params
}

// FillBuffer renders len(buffer)/channelCount frames of interleaved audio,
// writing the same sample to every channel of a frame. The phase advances
// before each sample is computed, so the first sample is never at phase 0.
//
// FillBuffer does not allocate, lock or block. Misuse (not initialized,
// channelCount <= 0) yields silence; a trailing partial frame is zeroed.
func (e *OscillatorEngine) FillBuffer(buffer []float32, channelCount int) {
	if !e.initialized {
		oscPrecondition("FillBuffer called before Initialize")
		clear(buffer)
		return
	}
	if channelCount <= 0 {
		oscPrecondition("channel count must be positive")
		clear(buffer)
		return
	}

	frames := len(buffer) / channelCount
	if tail := buffer[frames*channelCount:]; len(tail) != 0 {
		oscPrecondition("buffer length is not a multiple of the channel count")
		clear(tail)
	}

	p := e.params
	for i := 0; i < frames; i++ {
		// One fresh load of each tunable per sample
		e.advance(float64(p.Frequency()) / e.sampleRate)
		sample := float32(waveformValue(p.WaveType(), e.phase, e.random)) * p.Gain()

		frame := buffer[i*channelCount : (i+1)*channelCount]
		for c := range frame {
			frame[c] = sample
		}
	}
}

// advance moves the accumulator by increment and wraps it back into [0, 1).
// The usual case (0 <= increment < 1) needs one subtraction. Increments of a
// whole cycle or more, or negative frequencies, take the floor path.
func (e *OscillatorEngine) advance(increment float64) {
	e.phase += increment
	if e.phase >= 1 {
		e.phase -= 1
	}
	if !(e.phase >= 0 && e.phase < 1) {
		e.phase -= math.Floor(e.phase)
		// NaN/Inf frequencies, or a tiny negative phase that rounds up to 1
		if !(e.phase >= 0 && e.phase < 1) {
			e.phase = 0
		}
	}
}

// waveformValue maps a phase in [0, 1) to a raw sample in [-1, 1]. No
// band-limiting is applied. Unknown wave types are silent.
func waveformValue(w WaveType, phase float64, random RandomSource) float64 {
	switch w {
	case WAVE_SINE:
		return math.Sin(phase * 2 * math.Pi)
	case WAVE_SQUARE:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WAVE_TRIANGLE:
		if phase < 0.5 {
			return 4*phase - 1
		}
		return -4*(phase-0.5) + 1
	case WAVE_SAWTOOTH:
		return 2*phase - 1
	case WAVE_NOISE:
		return random.Float64()*2 - 1
	}
	return 0
}
