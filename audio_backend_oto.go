//go:build !headless

package main

import (
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/ebitengine/oto/v3"
)

const OTO_BUFFER_DURATION = 40 * time.Millisecond

func init() {
	compiledFeatures = append(compiledFeatures, "audio:oto")
}

type OtoPlayer struct {
	ctx       *oto.Context
	player    *oto.Player
	engine    atomic.Pointer[OscillatorEngine] // Atomic for lock-free Read()
	tap       *ScopeTap
	channels  int
	sampleBuf []float32 // Pre-allocated interleaved sample buffer
	started   bool
	mutex     sync.Mutex // Only for setup/control operations
}

func NewOtoPlayer(sampleRate int, channels int) (*OtoPlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   OTO_BUFFER_DURATION,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	return &OtoPlayer{
		ctx:      ctx,
		channels: channels,
	}, nil
}

func (op *OtoPlayer) SetupPlayer(engine *OscillatorEngine, tap *ScopeTap) {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	op.tap = tap
	op.engine.Store(engine)
	// Pre-allocate for typical oto read sizes (8192 bytes = 2048 float32 samples)
	op.sampleBuf = make([]float32, 2048*op.channels)
	op.player = op.ctx.NewPlayer(op)
}

// Read is called from oto's render goroutine. Only whole frames are produced.
func (op *OtoPlayer) Read(p []byte) (n int, err error) {
	frameBytes := 4 * op.channels
	n = len(p) / frameBytes * frameBytes
	if n == 0 {
		return 0, nil
	}

	// Load engine pointer atomically - no lock needed for the hot path
	engine := op.engine.Load()
	if engine == nil {
		clear(p[:n])
		return n, nil
	}

	numSamples := n / 4
	// This should rarely happen after initial SetupPlayer
	if len(op.sampleBuf) < numSamples {
		op.sampleBuf = make([]float32, numSamples)
	}
	samples := op.sampleBuf[:numSamples]

	engine.FillBuffer(samples, op.channels)
	if op.tap != nil {
		op.tap.WriteInterleaved(samples, op.channels)
	}

	copy(p[:n], unsafe.Slice((*byte)(unsafe.Pointer(&samples[0])), n))
	return n, nil
}

func (op *OtoPlayer) Start() {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if !op.started && op.player != nil {
		op.player.Play()
		op.started = true
	}
}

func (op *OtoPlayer) Stop() {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.started && op.player != nil {
		op.player.Pause()
		op.started = false
	}
}

func (op *OtoPlayer) Close() {
	op.Stop()
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.player != nil {
		op.player.Close()
		op.player = nil
	}
}

func (op *OtoPlayer) IsStarted() bool {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	return op.started
}
