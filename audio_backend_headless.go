//go:build headless

package main

import (
	"encoding/binary"
	"math"
)

func init() {
	compiledFeatures = append(compiledFeatures, "audio:headless")
}

// OtoPlayer stands in for the device backend in headless builds. Read still
// renders through the engine so callers can pull audio without a device.
type OtoPlayer struct {
	started  bool
	channels int
	engine   *OscillatorEngine
	tap      *ScopeTap
	buf      []float32
}

func NewOtoPlayer(sampleRate int, channels int) (*OtoPlayer, error) {
	return &OtoPlayer{channels: channels}, nil
}

func (op *OtoPlayer) SetupPlayer(engine *OscillatorEngine, tap *ScopeTap) {
	op.engine = engine
	op.tap = tap
}

func (op *OtoPlayer) Read(p []byte) (n int, err error) {
	frames := len(p) / (4 * op.channels)
	n = frames * 4 * op.channels
	if op.engine == nil {
		clear(p[:n])
		return n, nil
	}
	if len(op.buf) < frames*op.channels {
		op.buf = make([]float32, frames*op.channels)
	}
	samples := op.buf[:frames*op.channels]
	op.engine.FillBuffer(samples, op.channels)
	if op.tap != nil {
		op.tap.WriteInterleaved(samples, op.channels)
	}
	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return n, nil
}

func (op *OtoPlayer) Start() {
	op.started = true
}

func (op *OtoPlayer) Stop() {
	op.started = false
}

func (op *OtoPlayer) Close() {
	op.started = false
}

func (op *OtoPlayer) IsStarted() bool {
	return op.started
}
