package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScriptPanel() *ControlPanel {
	return NewControlPanel(NewOscillatorParams())
}

func TestScriptHostSetsParameters(t *testing.T) {
	cp := newScriptPanel()
	h := NewScriptHost(cp, "set.lua", `
		wave("saw")
		assert(freq(880) == 880)
		gain(0.25)
		semitones(-12)
	`)
	require.NoError(t, h.Run(context.Background()))

	s := cp.Snapshot()
	assert.Equal(t, WAVE_SAWTOOTH, s.Wave)
	assert.InDelta(t, 440, s.Frequency, 1e-3)
	assert.InDelta(t, 0.25, s.Gain, 1e-6)
}

func TestScriptHostClampsThroughPanel(t *testing.T) {
	cp := newScriptPanel()
	h := NewScriptHost(cp, "clamp.lua", `
		assert(freq(1e6) == 20000)
		assert(gain(-3) == 0)
	`)
	require.NoError(t, h.Run(context.Background()))
	assert.Equal(t, float32(MAX_FREQ), cp.Snapshot().Frequency)
	assert.Equal(t, float32(0), cp.Snapshot().Gain)
}

func TestScriptHostParamsTable(t *testing.T) {
	cp := newScriptPanel()
	var out bytes.Buffer
	h := NewScriptHost(cp, "params.lua", `
		local p = params()
		assert(p.wave == "sine")
		assert(p.freq == 440)
		log(p.wave .. " " .. p.freq)
	`)
	h.out = &out
	require.NoError(t, h.Run(context.Background()))
	assert.Equal(t, "script: sine 440\n", out.String())
}

func TestScriptHostErrors(t *testing.T) {
	cases := map[string]string{
		"bad wave":     `wave("organ")`,
		"bad number":   `freq("abc")`,
		"syntax":       `freq(`,
		"runtime":      `error("boom")`,
		"no io module": `io.write("x")`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			h := NewScriptHost(newScriptPanel(), name, src)
			assert.Error(t, h.Run(context.Background()))
		})
	}
}

func TestScriptHostCancelInterruptsSleep(t *testing.T) {
	cp := newScriptPanel()
	h := NewScriptHost(cp, "loop.lua", `
		while true do
			semitones(1)
			sleep(10)
			semitones(-1)
		end
	`)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := h.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestLoadScriptHost(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.lua")
	require.NoError(t, os.WriteFile(path, []byte(`wave("square")`), 0o644))

	cp := newScriptPanel()
	h, err := LoadScriptHost(cp, path)
	require.NoError(t, err)
	require.NoError(t, h.Run(context.Background()))
	assert.Equal(t, WAVE_SQUARE, cp.Snapshot().Wave)

	_, err = LoadScriptHost(cp, filepath.Join(t.TempDir(), "missing.lua"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
