package main

import (
	"sync"
	"time"
)

const NULL_BLOCK_FRAMES = 512

// NullPlayer drives the engine in real time without a device. It keeps the
// scope and control paths live on machines with no sound card.
type NullPlayer struct {
	engine   *OscillatorEngine
	tap      *ScopeTap
	channels int
	buf      []float32

	mutex   sync.Mutex
	started bool
	stopCh  chan struct{}
	done    chan struct{}
}

func NewNullPlayer(channels int, engine *OscillatorEngine, tap *ScopeTap) *NullPlayer {
	return &NullPlayer{
		engine:   engine,
		tap:      tap,
		channels: channels,
		buf:      make([]float32, NULL_BLOCK_FRAMES*channels),
	}
}

// blockPeriod is the wall-clock length of one rendered block.
func (np *NullPlayer) blockPeriod() time.Duration {
	return time.Duration(float64(NULL_BLOCK_FRAMES) / np.engine.SampleRate() * float64(time.Second))
}

func (np *NullPlayer) renderBlock() {
	np.engine.FillBuffer(np.buf, np.channels)
	if np.tap != nil {
		np.tap.WriteInterleaved(np.buf, np.channels)
	}
}

func (np *NullPlayer) Start() {
	np.mutex.Lock()
	defer np.mutex.Unlock()
	if np.started {
		return
	}
	np.started = true
	np.stopCh = make(chan struct{})
	np.done = make(chan struct{})

	go func(stopCh, done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(np.blockPeriod())
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				np.renderBlock()
			}
		}
	}(np.stopCh, np.done)
}

func (np *NullPlayer) Stop() {
	np.mutex.Lock()
	if !np.started {
		np.mutex.Unlock()
		return
	}
	np.started = false
	close(np.stopCh)
	done := np.done
	np.mutex.Unlock()
	<-done
}

func (np *NullPlayer) Close() {
	np.Stop()
}

func (np *NullPlayer) IsStarted() bool {
	np.mutex.Lock()
	defer np.mutex.Unlock()
	return np.started
}
