package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	ipcMaxRequestSize = 4096
	ipcConnTimeout    = 10 * time.Second
)

// controlRequest is one JSON command. Set fields are optional; absent ones
// leave that tunable alone.
type controlRequest struct {
	Cmd       string   `json:"cmd"`
	Wave      *string  `json:"wave,omitempty"`
	Freq      *float64 `json:"freq,omitempty"`
	Gain      *float64 `json:"gain,omitempty"`
	Semitones *int     `json:"semitones,omitempty"`
}

type controlResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message,omitempty"`
	Wave    string   `json:"wave,omitempty"`
	Freq    *float32 `json:"freq,omitempty"`
	Gain    *float32 `json:"gain,omitempty"`
}

func okResponse(s ParamSnapshot) controlResponse {
	return controlResponse{Status: "ok", Wave: s.Wave.String(), Freq: &s.Frequency, Gain: &s.Gain}
}

func errResponse(msg string) controlResponse {
	return controlResponse{Status: "err", Message: msg}
}

// ControlServer listens on a Unix socket and applies set/get requests to a
// ControlPanel. One request and one response per connection.
type ControlServer struct {
	listener net.Listener
	panel    *ControlPanel
	done     chan struct{}
	sockPath string
}

func resolveSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "intuition-tone.sock")
	}
	return "/tmp/intuition-tone.sock"
}

// NewControlServer binds the control socket at sockPath.
func NewControlServer(sockPath string, panel *ControlPanel) (*ControlServer, error) {
	ln, err := net.Listen("unix", sockPath)
	if err != nil {
		// Stale socket cleanup: try connecting. If peer is dead, remove and retry.
		conn, dialErr := net.DialTimeout("unix", sockPath, 2*time.Second)
		if dialErr != nil {
			os.Remove(sockPath)
			ln, err = net.Listen("unix", sockPath)
			if err != nil {
				return nil, fmt.Errorf("control socket bind failed: %w", err)
			}
		} else {
			conn.Close()
			return nil, fmt.Errorf("control socket %s is in use by another instance", sockPath)
		}
	}
	return &ControlServer{listener: ln, panel: panel, done: make(chan struct{}), sockPath: sockPath}, nil
}

func (s *ControlServer) Path() string {
	return s.sockPath
}

// Start begins accepting connections in a goroutine.
func (s *ControlServer) Start() {
	go s.acceptLoop()
}

// Stop closes the listener and waits for the accept loop to exit.
func (s *ControlServer) Stop() {
	s.listener.Close()
	<-s.done
	os.Remove(s.sockPath)
}

func (s *ControlServer) acceptLoop() {
	defer close(s.done)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handleConn(conn)
	}
}

func (s *ControlServer) handleConn(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(ipcConnTimeout))

	buf := make([]byte, ipcMaxRequestSize)
	n, err := conn.Read(buf)
	if err != nil || n == 0 {
		return
	}

	var req controlRequest
	if err := json.Unmarshal(buf[:n], &req); err != nil {
		writeControlResponse(conn, errResponse("invalid json"))
		return
	}
	writeControlResponse(conn, s.dispatch(req))
}

func (s *ControlServer) dispatch(req controlRequest) controlResponse {
	switch strings.ToLower(req.Cmd) {
	case "get":
		return okResponse(s.panel.Snapshot())
	case "set":
		if err := applyControlRequest(s.panel, req); err != nil {
			return errResponse(err.Error())
		}
		return okResponse(s.panel.Snapshot())
	default:
		return errResponse("unknown command")
	}
}

// applyControlRequest validates the whole request before touching the panel,
// so a bad wave name leaves frequency and gain unchanged too.
func applyControlRequest(cp *ControlPanel, req controlRequest) error {
	var wave WaveType
	if req.Wave != nil {
		w, err := ParseWaveType(*req.Wave)
		if err != nil {
			return err
		}
		wave = w
	}
	if req.Wave == nil && req.Freq == nil && req.Gain == nil && req.Semitones == nil {
		return errors.New("set needs at least one of wave, freq, gain, semitones")
	}

	if req.Wave != nil {
		cp.SetWave(wave)
	}
	if req.Freq != nil {
		cp.SetFrequency(*req.Freq)
	}
	if req.Semitones != nil {
		cp.StepSemitones(*req.Semitones)
	}
	if req.Gain != nil {
		cp.SetGain(*req.Gain)
	}
	return nil
}

func writeControlResponse(conn net.Conn, resp controlResponse) {
	data, _ := json.Marshal(resp)
	conn.Write(data)
}

// SendControlRequest sends one raw JSON request to a running instance and
// returns its raw JSON response. A status other than "ok" is an error.
func SendControlRequest(sockPath string, request []byte) ([]byte, error) {
	if len(request) > ipcMaxRequestSize {
		return nil, fmt.Errorf("request too large (%d bytes, max %d)", len(request), ipcMaxRequestSize)
	}
	if !json.Valid(request) {
		return nil, errors.New("request is not valid json")
	}

	conn, err := net.DialTimeout("unix", sockPath, ipcConnTimeout)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to running instance: %w", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(ipcConnTimeout))

	if _, err := conn.Write(request); err != nil {
		return nil, fmt.Errorf("send failed: %w", err)
	}

	buf := make([]byte, ipcMaxRequestSize)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("read response failed: %w", err)
	}

	var resp controlResponse
	if err := json.Unmarshal(buf[:n], &resp); err != nil {
		return nil, fmt.Errorf("invalid response: %w", err)
	}
	if resp.Status != "ok" {
		return buf[:n], fmt.Errorf("remote error: %s", resp.Message)
	}
	return buf[:n], nil
}
