//go:build !headless

// gui_frontend_ebiten.go - Ebiten tunables window for Intuition Tone

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

func init() {
	compiledFeatures = append(compiledFeatures, "gui:ebiten")
}

const guiStatusBarHeight = 44

var (
	scopeBackground = color.RGBA{8, 12, 16, 255}
	scopeGrid       = color.RGBA{30, 40, 48, 255}
	scopeTrace      = color.RGBA{0, 220, 90, 255}
	statusLabel     = color.RGBA{190, 190, 190, 255}
	statusLegend    = color.RGBA{160, 160, 160, 255}
)

// ToneWindow draws the scope tap and routes key presses to a ControlPanel.
type ToneWindow struct {
	config     GUIConfig
	panel      *ControlPanel
	tap        *ScopeTap
	scope      []float32
	fullscreen bool
	closing    atomic.Bool
	message    string

	clipboardOnce sync.Once
	clipboardOK   bool
}

func newToneWindow(config GUIConfig, panel *ControlPanel, tap *ScopeTap) (GUIFrontend, error) {
	if config.Width <= 0 || config.Height <= guiStatusBarHeight {
		return nil, fmt.Errorf("gui: window %dx%d too small", config.Width, config.Height)
	}
	return &ToneWindow{
		config:     config,
		panel:      panel,
		tap:        tap,
		scope:      make([]float32, config.Width),
		fullscreen: config.Fullscreen,
	}, nil
}

func (w *ToneWindow) Run() error {
	ebiten.SetWindowSize(w.config.Width, w.config.Height)
	ebiten.SetWindowTitle(w.config.Title)
	ebiten.SetWindowResizable(true)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)
	if w.fullscreen {
		ebiten.SetFullscreen(true)
	}
	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}

// Close asks the window to shut down on its next update. Safe from any goroutine.
func (w *ToneWindow) Close() error {
	w.closing.Store(true)
	return nil
}

// guiKeyAction applies one just-pressed key to the panel and reports
// whether a tunable changed. Shift turns the semitone keys into octave keys.
func guiKeyAction(cp *ControlPanel, key ebiten.Key, shift bool) bool {
	switch key {
	case ebiten.KeyDigit1:
		return cp.SetWave(WAVE_SINE)
	case ebiten.KeyDigit2:
		return cp.SetWave(WAVE_SQUARE)
	case ebiten.KeyDigit3:
		return cp.SetWave(WAVE_TRIANGLE)
	case ebiten.KeyDigit4:
		return cp.SetWave(WAVE_SAWTOOTH)
	case ebiten.KeyDigit5:
		return cp.SetWave(WAVE_NOISE)
	case ebiten.KeyW:
		if shift {
			cp.CycleWave(-1)
		} else {
			cp.CycleWave(1)
		}
	case ebiten.KeyArrowUp, ebiten.KeyArrowDown:
		n := 1
		if shift {
			n = OCTAVE_SEMITONES
		}
		if key == ebiten.KeyArrowDown {
			n = -n
		}
		cp.StepSemitones(n)
	case ebiten.KeyArrowRight:
		cp.NudgeGain(GAIN_NUDGE_STEP)
	case ebiten.KeyArrowLeft:
		cp.NudgeGain(-GAIN_NUDGE_STEP)
	default:
		return false
	}
	return true
}

var guiControlKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5,
	ebiten.KeyW,
	ebiten.KeyArrowUp, ebiten.KeyArrowDown, ebiten.KeyArrowLeft, ebiten.KeyArrowRight,
}

func (w *ToneWindow) Update() error {
	if ebiten.IsWindowBeingClosed() || w.closing.Load() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		w.fullscreen = !w.fullscreen
		ebiten.SetFullscreen(w.fullscreen)
		if !w.fullscreen {
			ebiten.SetWindowSize(w.config.Width, w.config.Height)
		}
	}

	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	for _, key := range guiControlKeys {
		if inpututil.IsKeyJustPressed(key) && guiKeyAction(w.panel, key, shift) {
			w.message = ""
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		w.copySettings()
	}
	return nil
}

func (w *ToneWindow) copySettings() {
	w.clipboardOnce.Do(func() {
		w.clipboardOK = clipboard.Init() == nil
	})
	if !w.clipboardOK {
		w.message = "clipboard unavailable"
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(w.panel.Describe()))
	w.message = "copied"
}

func (w *ToneWindow) Draw(screen *ebiten.Image) {
	width := w.config.Width
	scopeH := w.config.Height - guiStatusBarHeight

	screen.Fill(scopeBackground)
	mid := float64(scopeH) / 2
	ebitenutil.DrawRect(screen, 0, mid, float64(width), 1, scopeGrid)

	n := 0
	if w.tap != nil {
		n = w.tap.Snapshot(w.scope)
	}
	// Vertical spans between neighbouring samples keep the trace connected.
	prevY := mid
	for x := 0; x < n; x++ {
		y := mid - float64(w.scope[x])*(mid-2)
		top, bottom := min(prevY, y), max(prevY, y)
		ebitenutil.DrawRect(screen, float64(x), top, 1, bottom-top+1, scopeTrace)
		prevY = y
	}

	w.drawStatusBar(screen, scopeH)
}

func (w *ToneWindow) drawStatusBar(screen *ebiten.Image, y int) {
	face := basicfont.Face7x13
	ebitenutil.DrawRect(screen, 0, float64(y), float64(w.config.Width), guiStatusBarHeight, color.RGBA{0, 0, 0, 220})

	status := w.panel.Describe()
	if w.message != "" {
		status += "  [" + w.message + "]"
	}
	text.Draw(screen, status, face, 6, y+16, statusLabel)

	legend := "1-5 Wave  Up/Down Semitone (+Shift Octave)  Left/Right Gain  C Copy  F11 Fullscreen"
	text.Draw(screen, legend, face, 6, y+36, statusLegend)
}

func (w *ToneWindow) Layout(_, _ int) (int, int) {
	return w.config.Width, w.config.Height
}
