package main

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Unix socket paths are length limited, so keep them out of t.TempDir's
// long per-test names.
func shortSocketPath(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "tone")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return filepath.Join(dir, "c.sock")
}

func startControlServer(t *testing.T) (*ControlServer, *ControlPanel) {
	t.Helper()
	cp := NewControlPanel(NewOscillatorParams())
	srv, err := NewControlServer(shortSocketPath(t), cp)
	require.NoError(t, err)
	srv.Start()
	t.Cleanup(srv.Stop)
	return srv, cp
}

func decodeResponse(t *testing.T, data []byte) controlResponse {
	t.Helper()
	var resp controlResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	return resp
}

func TestControlServerGet(t *testing.T) {
	srv, _ := startControlServer(t)

	data, err := SendControlRequest(srv.Path(), []byte(`{"cmd":"get"}`))
	require.NoError(t, err)
	resp := decodeResponse(t, data)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "sine", resp.Wave)
	require.NotNil(t, resp.Freq)
	assert.Equal(t, float32(440), *resp.Freq)
	require.NotNil(t, resp.Gain)
	assert.InDelta(t, 0.1, *resp.Gain, 1e-6)
}

func TestControlServerSet(t *testing.T) {
	srv, cp := startControlServer(t)

	data, err := SendControlRequest(srv.Path(), []byte(`{"cmd":"set","wave":"saw","freq":880,"gain":0.2}`))
	require.NoError(t, err)
	resp := decodeResponse(t, data)
	assert.Equal(t, "sawtooth", resp.Wave)

	s := cp.Snapshot()
	assert.Equal(t, WAVE_SAWTOOTH, s.Wave)
	assert.Equal(t, float32(880), s.Frequency)
	assert.InDelta(t, 0.2, s.Gain, 1e-6)
}

func TestControlServerSetClampsAndTransposes(t *testing.T) {
	srv, cp := startControlServer(t)

	_, err := SendControlRequest(srv.Path(), []byte(`{"cmd":"set","gain":7}`))
	require.NoError(t, err)
	assert.Equal(t, float32(MAX_GAIN), cp.Snapshot().Gain)

	_, err = SendControlRequest(srv.Path(), []byte(`{"cmd":"set","freq":220,"semitones":12}`))
	require.NoError(t, err)
	assert.InDelta(t, 440, cp.Snapshot().Frequency, 1e-3)
}

func TestControlServerRejects(t *testing.T) {
	srv, cp := startControlServer(t)

	for name, req := range map[string]string{
		"unknown cmd": `{"cmd":"open"}`,
		"bad wave":    `{"cmd":"set","wave":"organ","freq":1000}`,
		"empty set":   `{"cmd":"set"}`,
	} {
		t.Run(name, func(t *testing.T) {
			data, err := SendControlRequest(srv.Path(), []byte(req))
			require.Error(t, err)
			assert.Equal(t, "err", decodeResponse(t, data).Status)
		})
	}
	// The rejected wave name must not have applied the frequency either.
	assert.Equal(t, float32(440), cp.Snapshot().Frequency)
}

func TestControlServerInvalidJSON(t *testing.T) {
	srv, _ := startControlServer(t)

	conn, err := net.Dial("unix", srv.Path())
	require.NoError(t, err)
	defer conn.Close()
	_, err = conn.Write([]byte("not json"))
	require.NoError(t, err)

	buf := make([]byte, ipcMaxRequestSize)
	n, err := conn.Read(buf)
	require.NoError(t, err)
	resp := decodeResponse(t, buf[:n])
	assert.Equal(t, "err", resp.Status)
	assert.Equal(t, "invalid json", resp.Message)
}

func TestSendControlRequestValidation(t *testing.T) {
	_, err := SendControlRequest(shortSocketPath(t), []byte("{"))
	assert.Error(t, err)

	big := make([]byte, ipcMaxRequestSize+1)
	_, err = SendControlRequest(shortSocketPath(t), big)
	assert.Error(t, err)

	_, err = SendControlRequest(shortSocketPath(t), []byte(`{"cmd":"get"}`))
	assert.ErrorContains(t, err, "cannot connect")
}

func TestControlServerStaleSocket(t *testing.T) {
	path := shortSocketPath(t)
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	srv, err := NewControlServer(path, NewControlPanel(NewOscillatorParams()))
	require.NoError(t, err)
	srv.Start()
	srv.Stop()

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestControlServerInUse(t *testing.T) {
	srv, _ := startControlServer(t)
	_, err := NewControlServer(srv.Path(), NewControlPanel(NewOscillatorParams()))
	assert.ErrorContains(t, err, "in use")
}
