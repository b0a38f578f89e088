//go:build windows

package main

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// TerminalHost reads raw stdin keystrokes and routes them to a ControlPanel.
// Only instantiated in main.go for interactive use - never in tests.
type TerminalHost struct {
	panel        *ControlPanel
	out          io.Writer
	stopCh       chan struct{}
	done         chan struct{}
	quitCh       chan struct{}
	stopped      sync.Once
	quitOnce     sync.Once
	fd           int
	oldTermState *term.State
}

// NewTerminalHost creates a host adapter that drives panel from stdin.
func NewTerminalHost(panel *ControlPanel) *TerminalHost {
	return &TerminalHost{
		panel:  panel,
		out:    os.Stdout,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
		quitCh: make(chan struct{}),
	}
}

func (h *TerminalHost) Quit() <-chan struct{} {
	return h.quitCh
}

func (h *TerminalHost) signalQuit() {
	h.quitOnce.Do(func() { close(h.quitCh) })
}

// Start sets stdin to raw mode and begins reading in a goroutine.
// Call Stop() to restore stdin.
func (h *TerminalHost) Start() error {
	h.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		close(h.done)
		return fmt.Errorf("terminal_host: failed to set raw mode: %w", err)
	}
	h.oldTermState = oldState

	fmt.Fprintf(h.out, "%s\r\n", terminalHelp)
	printTerminalStatus(h.out, h.panel)

	go func() {
		defer close(h.done)
		buf := make([]byte, 1)

		for {
			select {
			case <-h.stopCh:
				return
			default:
			}

			n, err := os.Stdin.Read(buf)
			if n > 0 {
				quit, changed := applyTerminalKey(h.panel, buf[0])
				if quit {
					h.signalQuit()
					return
				}
				if changed {
					printTerminalStatus(h.out, h.panel)
				}
			}
			if err != nil {
				h.signalQuit()
				return
			}
			if n == 0 {
				time.Sleep(5 * time.Millisecond)
			}
		}
	}()
	return nil
}

// Stop restores terminal state. A blocked console read cannot be
// interrupted on Windows, so Stop does not wait for the reader to exit.
func (h *TerminalHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
		fmt.Fprint(h.out, "\r\n")
	}
}
