//go:build oscdebug

package main

import "testing"

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestOscDebug_PreconditionsPanic(t *testing.T) {
	expectPanic(t, "fill before init", func() {
		NewOscillatorEngine(nil, nil).FillBuffer(make([]float32, 4), 2)
	})
	expectPanic(t, "zero rate", func() {
		_ = NewOscillatorEngine(nil, nil).Initialize(0)
	})
	expectPanic(t, "zero channels", func() {
		e := NewOscillatorEngine(nil, nil)
		_ = e.Initialize(48000)
		e.FillBuffer(make([]float32, 4), 0)
	})
	expectPanic(t, "ragged buffer", func() {
		e := NewOscillatorEngine(nil, nil)
		_ = e.Initialize(48000)
		e.FillBuffer(make([]float32, 5), 2)
	})
}
