package main

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
)

// WaveType selects the oscillator waveform.
type WaveType int32

const (
	WAVE_SINE WaveType = iota
	WAVE_SQUARE
	WAVE_TRIANGLE
	WAVE_SAWTOOTH
	WAVE_NOISE

	NUM_WAVE_TYPES = 5
)

const (
	DEFAULT_WAVE      = WAVE_SINE
	DEFAULT_FREQUENCY = 440.0 // A4
	DEFAULT_GAIN      = 0.1   // Quiet by default to avoid clipping on first play
)

// Documented control ranges. The engine never enforces these; ControlPanel does.
const (
	MIN_FREQ = 20.0
	MAX_FREQ = 20000.0
	MIN_GAIN = 0.0
	MAX_GAIN = 1.0
)

var waveNames = [NUM_WAVE_TYPES]string{"sine", "square", "triangle", "sawtooth", "noise"}

func (w WaveType) String() string {
	if w < 0 || int(w) >= NUM_WAVE_TYPES {
		return fmt.Sprintf("wave(%d)", int32(w))
	}
	return waveNames[w]
}

// ParseWaveType accepts the wave names plus the short aliases "sin", "sq",
// "tri", "saw" and "white".
func ParseWaveType(name string) (WaveType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sine", "sin":
		return WAVE_SINE, nil
	case "square", "sq":
		return WAVE_SQUARE, nil
	case "triangle", "tri":
		return WAVE_TRIANGLE, nil
	case "sawtooth", "saw":
		return WAVE_SAWTOOTH, nil
	case "noise", "white":
		return WAVE_NOISE, nil
	default:
		return 0, fmt.Errorf("unknown wave type: %q", name)
	}
}

// OscillatorParams holds the tunables written by the control path and read
// by the audio path once per sample. Each field is an independent atomic;
// readers may observe a mix of old and new values across fields.
type OscillatorParams struct {
	waveType  atomic.Int32
	frequency atomic.Uint32 // float32 bits
	gain      atomic.Uint32 // float32 bits
}

// NewOscillatorParams returns a parameter block holding the defaults.
func NewOscillatorParams() *OscillatorParams {
	p := &OscillatorParams{}
	p.SetWaveType(DEFAULT_WAVE)
	p.SetFrequency(DEFAULT_FREQUENCY)
	p.SetGain(DEFAULT_GAIN)
	return p
}

func (p *OscillatorParams) WaveType() WaveType {
	return WaveType(p.waveType.Load())
}

func (p *OscillatorParams) SetWaveType(w WaveType) {
	p.waveType.Store(int32(w))
}

func (p *OscillatorParams) Frequency() float32 {
	return math.Float32frombits(p.frequency.Load())
}

// SetFrequency stores hz unvalidated.
func (p *OscillatorParams) SetFrequency(hz float32) {
	p.frequency.Store(math.Float32bits(hz))
}

func (p *OscillatorParams) Gain() float32 {
	return math.Float32frombits(p.gain.Load())
}

// SetGain stores g unvalidated.
func (p *OscillatorParams) SetGain(g float32) {
	p.gain.Store(math.Float32bits(g))
}

// ParamSnapshot is a plain copy of the three tunables, for display and IPC.
type ParamSnapshot struct {
	Wave      WaveType
	Frequency float32
	Gain      float32
}

func (p *OscillatorParams) Snapshot() ParamSnapshot {
	return ParamSnapshot{
		Wave:      p.WaveType(),
		Frequency: p.Frequency(),
		Gain:      p.Gain(),
	}
}

func (s ParamSnapshot) String() string {
	return fmt.Sprintf("wave=%s freq=%.2fHz gain=%.3f", s.Wave, s.Frequency, s.Gain)
}
