package main

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func probeEngine(wave WaveType, freq, gain float32) *OscillatorEngine {
	engine := NewOscillatorEngine(nil, nil)
	engine.Params().SetWaveType(wave)
	engine.Params().SetFrequency(freq)
	engine.Params().SetGain(gain)
	return engine
}

func TestProbe_Square(t *testing.T) {
	stats, err := runProbe(probeEngine(WAVE_SQUARE, 441, 0.5), 44100, time.Second)
	require.NoError(t, err)

	assert.Equal(t, 44100, stats.Frames)
	assert.InDelta(t, 0.5, stats.Peak, 1e-7)
	assert.InDelta(t, 0.5, stats.RMS, 1e-6)
	assert.InDelta(t, 0, stats.DC, 0.02) // a cycle may split 51/49 as the accumulator drifts
	assert.InDelta(t, 441, stats.EstimatedFreq, 2)
}

func TestProbe_Sine(t *testing.T) {
	stats, err := runProbe(probeEngine(WAVE_SINE, 1000, 1), 48000, 500*time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, 24000, stats.Frames)
	assert.InDelta(t, 1, stats.Peak, 1e-3)
	assert.InDelta(t, 1/math.Sqrt2, stats.RMS, 1e-3)
	assert.InDelta(t, 1000, stats.EstimatedFreq, 3)
}

func TestProbe_Triangle(t *testing.T) {
	stats, err := runProbe(probeEngine(WAVE_TRIANGLE, 500, 1), 48000, time.Second)
	require.NoError(t, err)
	// Triangle RMS is 1/sqrt(3)
	assert.InDelta(t, 1/math.Sqrt(3), stats.RMS, 1e-3)
	assert.InDelta(t, 500, stats.EstimatedFreq, 2)
}

func TestProbe_NoiseIsBounded(t *testing.T) {
	stats, err := runProbe(probeEngine(WAVE_NOISE, 440, 0.3), 44100, time.Second)
	require.NoError(t, err)
	assert.LessOrEqual(t, stats.Peak, 0.3+1e-7)
	assert.InDelta(t, 0, stats.DC, 0.01)
}

func TestProbe_RejectsBadDuration(t *testing.T) {
	_, err := runProbe(probeEngine(WAVE_SINE, 440, 0.1), 44100, 0)
	assert.Error(t, err)
}

func TestProbe_StatsString(t *testing.T) {
	s := ProbeStats{Frames: 10, Peak: 0.5, RMS: 0.25, EstimatedFreq: 440}
	assert.Contains(t, s.String(), "frames=10")
	assert.Contains(t, s.String(), "est_freq=440.00Hz")
}
