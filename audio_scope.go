package main

import (
	"math"
	"sync/atomic"
)

const (
	SCOPE_TAP_SIZE = 4096 // Must be a power of two
	SCOPE_TAP_MASK = SCOPE_TAP_SIZE - 1
)

// ScopeTap keeps the most recent mono samples for display. It has a single
// writer (the audio callback) and any number of readers; readers never
// block the writer and may see a window that straddles a write.
type ScopeTap struct {
	samples  [SCOPE_TAP_SIZE]atomic.Uint32 // float32 bits
	writePos atomic.Uint64
}

func NewScopeTap() *ScopeTap {
	return &ScopeTap{}
}

// WriteInterleaved records channel 0 of each frame.
func (t *ScopeTap) WriteInterleaved(samples []float32, channels int) {
	if channels <= 0 {
		return
	}
	pos := t.writePos.Load()
	for i := 0; i+channels <= len(samples); i += channels {
		t.samples[pos&SCOPE_TAP_MASK].Store(math.Float32bits(samples[i]))
		pos++
	}
	t.writePos.Store(pos)
}

// Written is the total number of frames ever recorded.
func (t *ScopeTap) Written() uint64 {
	return t.writePos.Load()
}

// Snapshot copies the newest samples into dst, oldest first, and returns
// how many were copied (fewer than len(dst) until the tap has filled).
func (t *ScopeTap) Snapshot(dst []float32) int {
	end := t.writePos.Load()
	n := uint64(min(len(dst), SCOPE_TAP_SIZE))
	if end < n {
		n = end
	}
	start := end - n
	for i := uint64(0); i < n; i++ {
		dst[i] = math.Float32frombits(t.samples[(start+i)&SCOPE_TAP_MASK].Load())
	}
	return int(n)
}
