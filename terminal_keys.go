package main

import (
	"fmt"
	"io"
)

const (
	KEY_CTRL_C = 0x03
	KEY_ESC    = 0x1B
)

// applyTerminalKey maps one raw-mode keystroke onto the control panel.
// It reports whether the key asked to quit and whether a tunable changed.
func applyTerminalKey(cp *ControlPanel, b byte) (quit bool, changed bool) {
	switch b {
	case '1', '2', '3', '4', '5':
		return false, cp.SetWave(WaveType(b - '1'))
	case 'w':
		cp.CycleWave(1)
	case 'W':
		cp.CycleWave(-1)
	case '+', '=':
		cp.StepSemitones(1)
	case '-', '_':
		cp.StepSemitones(-1)
	case 'u':
		cp.StepSemitones(OCTAVE_SEMITONES)
	case 'd':
		cp.StepSemitones(-OCTAVE_SEMITONES)
	case ']':
		cp.NudgeGain(GAIN_NUDGE_STEP)
	case '[':
		cp.NudgeGain(-GAIN_NUDGE_STEP)
	case 'q', 'Q', KEY_CTRL_C, KEY_ESC:
		return true, false
	default:
		return false, false
	}
	return false, true
}

const terminalHelp = "keys: 1-5 wave  w/W cycle  +/- semitone  u/d octave  ]/[ gain  q quit"

// printTerminalStatus redraws the status line in place. Raw mode needs the
// explicit carriage return.
func printTerminalStatus(w io.Writer, cp *ControlPanel) {
	fmt.Fprintf(w, "\r%s\033[K", cp.Describe())
}
