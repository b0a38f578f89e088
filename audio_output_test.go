package main

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeTap_SnapshotOrder(t *testing.T) {
	tap := NewScopeTap()
	dst := make([]float32, 8)
	require.Equal(t, 0, tap.Snapshot(dst), "empty tap")

	// Stereo frames: only channel 0 is recorded
	tap.WriteInterleaved([]float32{1, -1, 2, -2, 3, -3}, 2)
	n := tap.Snapshot(dst)
	require.Equal(t, 3, n)
	assert.Equal(t, []float32{1, 2, 3}, dst[:n])
	assert.Equal(t, uint64(3), tap.Written())
}

func TestScopeTap_WrapsKeepingNewest(t *testing.T) {
	tap := NewScopeTap()
	src := make([]float32, SCOPE_TAP_SIZE+100)
	for i := range src {
		src[i] = float32(i)
	}
	tap.WriteInterleaved(src, 1)

	dst := make([]float32, 10)
	require.Equal(t, 10, tap.Snapshot(dst))
	for i, v := range dst {
		assert.Equal(t, float32(len(src)-10+i), v)
	}

	big := make([]float32, SCOPE_TAP_SIZE*2)
	assert.Equal(t, SCOPE_TAP_SIZE, tap.Snapshot(big), "snapshot is capped at the tap size")
}

func TestScopeTap_IgnoresBadChannelCount(t *testing.T) {
	tap := NewScopeTap()
	tap.WriteInterleaved([]float32{1, 2, 3}, 0)
	assert.Equal(t, uint64(0), tap.Written())
}

func TestNewAudioOutput_InitializesEngine(t *testing.T) {
	engine := NewOscillatorEngine(nil, nil)
	out, err := NewAudioOutput(AUDIO_BACKEND_NULL, 22050, 2, engine, nil)
	require.NoError(t, err)
	defer out.Close()

	assert.True(t, engine.Initialized())
	assert.Equal(t, 22050.0, engine.SampleRate())
}

func TestNewAudioOutput_Errors(t *testing.T) {
	_, err := NewAudioOutput(AUDIO_BACKEND_NULL, 44100, 0, NewOscillatorEngine(nil, nil), nil)
	assert.Error(t, err)

	_, err = NewAudioOutput(99, 44100, 2, NewOscillatorEngine(nil, nil), nil)
	assert.ErrorContains(t, err, "unknown backend")
}

func TestNullPlayer_FeedsScopeInRealTime(t *testing.T) {
	engine := NewOscillatorEngine(nil, nil)
	engine.Params().SetWaveType(WAVE_SQUARE)
	engine.Params().SetGain(0.5)
	tap := NewScopeTap()

	out, err := NewAudioOutput(AUDIO_BACKEND_NULL, 48000, 2, engine, tap)
	require.NoError(t, err)

	out.Start()
	assert.True(t, out.IsStarted())
	require.Eventually(t, func() bool {
		return tap.Written() >= 2*NULL_BLOCK_FRAMES
	}, 2*time.Second, 5*time.Millisecond)
	out.Stop()
	assert.False(t, out.IsStarted())

	dst := make([]float32, 256)
	n := tap.Snapshot(dst)
	require.Equal(t, 256, n)
	for _, s := range dst {
		assert.InDelta(t, 0.5, math.Abs(float64(s)), 1e-7)
	}

	// Stop is idempotent, and the engine is quiet afterwards
	written := tap.Written()
	out.Close()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, written, tap.Written())
}

func TestBeepStreamer_StereoFrames(t *testing.T) {
	engine := NewOscillatorEngine(nil, nil)
	engine.Params().SetWaveType(WAVE_SAWTOOTH)
	engine.Params().SetFrequency(480)
	engine.Params().SetGain(1)

	streamer, err := NewBeepStreamer(engine, 48000)
	require.NoError(t, err)
	assert.Equal(t, 48000.0, engine.SampleRate())

	// Larger than the scratch buffer so Stream has to loop
	samples := make([][2]float64, BEEP_SCRATCH_FRAMES*2+7)
	n, ok := streamer.Stream(samples)
	require.True(t, ok)
	require.Equal(t, len(samples), n)
	require.NoError(t, streamer.Err())

	for i, frame := range samples {
		require.Equal(t, frame[0], frame[1], "frame %d channels differ", i)
		expected := 2*math.Mod(0.01*float64(i+1), 1) - 1
		if math.Abs(frame[0]-expected) > 1e-4 && math.Abs(math.Abs(frame[0]-expected)-2) > 1e-4 {
			t.Fatalf("frame %d = %v, expected %v", i, frame[0], expected)
		}
	}
}

func TestBeepStreamer_RespectsExistingSampleRate(t *testing.T) {
	engine := NewOscillatorEngine(nil, nil)
	require.NoError(t, engine.Initialize(96000))
	_, err := NewBeepStreamer(engine, 44100)
	require.NoError(t, err)
	assert.Equal(t, 96000.0, engine.SampleRate())
}

func TestBeepStreamer_DoesNotAllocate(t *testing.T) {
	engine := NewOscillatorEngine(nil, nil)
	streamer, err := NewBeepStreamer(engine, 44100)
	require.NoError(t, err)
	samples := make([][2]float64, 3000)
	allocs := testing.AllocsPerRun(50, func() {
		streamer.Stream(samples)
	})
	assert.Zero(t, allocs)
}
