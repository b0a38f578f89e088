package main

import (
	"fmt"
	"math"
	"time"

	"github.com/faiface/beep"
)

// ProbeStats summarises a block of rendered audio (left channel).
type ProbeStats struct {
	Frames        int
	Peak          float64
	RMS           float64
	DC            float64
	RisingCrosses int
	EstimatedFreq float64
}

func (s ProbeStats) String() string {
	return fmt.Sprintf("frames=%d peak=%.4f rms=%.4f dc=%+.5f est_freq=%.2fHz",
		s.Frames, s.Peak, s.RMS, s.DC, s.EstimatedFreq)
}

// runProbe renders d worth of audio through a BeepStreamer, with no device
// attached, and measures it.
func runProbe(engine *OscillatorEngine, sr beep.SampleRate, d time.Duration) (ProbeStats, error) {
	var stats ProbeStats
	if d <= 0 {
		return stats, fmt.Errorf("probe: duration must be positive, got %v", d)
	}

	streamer, err := NewBeepStreamer(engine, sr)
	if err != nil {
		return stats, fmt.Errorf("probe: %w", err)
	}
	taken := beep.Take(sr.N(d), streamer)

	var sum, sumSq float64
	prev := math.NaN()
	buf := make([][2]float64, 1024)
	for {
		n, ok := taken.Stream(buf)
		for _, frame := range buf[:n] {
			v := frame[0]
			sum += v
			sumSq += v * v
			stats.Peak = max(stats.Peak, math.Abs(v))
			if prev < 0 && v >= 0 {
				stats.RisingCrosses++
			}
			prev = v
		}
		stats.Frames += n
		if !ok {
			break
		}
	}
	if err := taken.Err(); err != nil {
		return stats, fmt.Errorf("probe: %w", err)
	}

	if stats.Frames > 0 {
		stats.DC = sum / float64(stats.Frames)
		stats.RMS = math.Sqrt(sumSq / float64(stats.Frames))
		seconds := float64(stats.Frames) / float64(sr)
		stats.EstimatedFreq = float64(stats.RisingCrosses) / seconds
	}
	return stats, nil
}
