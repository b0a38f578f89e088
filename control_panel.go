package main

import (
	"math"
)

const (
	SEMITONE_RATIO   = 1.0594630943592953 // 2^(1/12)
	GAIN_NUDGE_STEP  = 0.05
	OCTAVE_SEMITONES = 12
)

// ControlPanel is the control-path front end for OscillatorParams. It owns
// range enforcement: the engine renders whatever it is given, so every
// GUI, terminal, script and socket write goes through here to stay within
// [MIN_FREQ, MAX_FREQ] and [MIN_GAIN, MAX_GAIN].
type ControlPanel struct {
	params *OscillatorParams
}

func NewControlPanel(params *OscillatorParams) *ControlPanel {
	return &ControlPanel{params: params}
}

func (cp *ControlPanel) Params() *OscillatorParams {
	return cp.params
}

func clampFrequency(hz float64) float32 {
	if math.IsNaN(hz) {
		return DEFAULT_FREQUENCY
	}
	return float32(max(MIN_FREQ, min(hz, MAX_FREQ)))
}

func clampGain(g float64) float32 {
	if math.IsNaN(g) {
		return MIN_GAIN
	}
	return float32(max(MIN_GAIN, min(g, MAX_GAIN)))
}

// SetFrequency stores hz clamped to the audible range and returns the stored value.
func (cp *ControlPanel) SetFrequency(hz float64) float32 {
	f := clampFrequency(hz)
	cp.params.SetFrequency(f)
	return f
}

// SetGain stores g clamped to [0, 1] and returns the stored value.
func (cp *ControlPanel) SetGain(g float64) float32 {
	v := clampGain(g)
	cp.params.SetGain(v)
	return v
}

// SetWave ignores out-of-range wave types.
func (cp *ControlPanel) SetWave(w WaveType) bool {
	if w < 0 || int(w) >= NUM_WAVE_TYPES {
		return false
	}
	cp.params.SetWaveType(w)
	return true
}

func (cp *ControlPanel) SetWaveByName(name string) error {
	w, err := ParseWaveType(name)
	if err != nil {
		return err
	}
	cp.params.SetWaveType(w)
	return nil
}

// CycleWave steps through the wave types, wrapping at both ends.
func (cp *ControlPanel) CycleWave(step int) WaveType {
	cur := int(cp.params.WaveType())
	next := ((cur+step)%NUM_WAVE_TYPES + NUM_WAVE_TYPES) % NUM_WAVE_TYPES
	cp.params.SetWaveType(WaveType(next))
	return WaveType(next)
}

// StepSemitones transposes by n equal-tempered semitones.
func (cp *ControlPanel) StepSemitones(n int) float32 {
	cur := float64(cp.params.Frequency())
	return cp.SetFrequency(cur * math.Pow(SEMITONE_RATIO, float64(n)))
}

func (cp *ControlPanel) NudgeGain(delta float64) float32 {
	return cp.SetGain(float64(cp.params.Gain()) + delta)
}

func (cp *ControlPanel) Snapshot() ParamSnapshot {
	return cp.params.Snapshot()
}

// Describe is the one-line summary shown in the GUI status bar, the
// terminal and copied to the clipboard.
func (cp *ControlPanel) Describe() string {
	return cp.params.Snapshot().String()
}

// ApplyConfig loads the initial tunables from the parsed command line.
func (cp *ControlPanel) ApplyConfig(cfg *ToneConfig) {
	cp.SetWave(cfg.Wave)
	cp.SetFrequency(cfg.Frequency)
	cp.SetGain(cfg.Gain)
}
