package main

import (
	"fmt"

	"github.com/faiface/beep"
)

const BEEP_SCRATCH_FRAMES = 1024

// BeepStreamer exposes the engine as an endless stereo beep.Streamer. Stream
// renders in chunks through a pre-allocated interleaved buffer, so it keeps
// FillBuffer's no-allocation guarantee.
type BeepStreamer struct {
	engine  *OscillatorEngine
	scratch []float32
}

// NewBeepStreamer initializes engine at sr if the host has not already.
func NewBeepStreamer(engine *OscillatorEngine, sr beep.SampleRate) (*BeepStreamer, error) {
	if !engine.Initialized() {
		if err := engine.Initialize(float64(sr)); err != nil {
			return nil, fmt.Errorf("beep streamer: %w", err)
		}
	}
	return &BeepStreamer{
		engine:  engine,
		scratch: make([]float32, BEEP_SCRATCH_FRAMES*2),
	}, nil
}

func (s *BeepStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for len(samples) > 0 {
		frames := min(len(samples), BEEP_SCRATCH_FRAMES)
		buf := s.scratch[:frames*2]
		s.engine.FillBuffer(buf, 2)
		for i := 0; i < frames; i++ {
			samples[i][0] = float64(buf[2*i])
			samples[i][1] = float64(buf[2*i+1])
		}
		samples = samples[frames:]
		n += frames
	}
	return n, true
}

func (s *BeepStreamer) Err() error {
	return nil
}
