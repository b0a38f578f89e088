package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strings"
	"time"
)

const (
	DEFAULT_SAMPLE_RATE = 44100
	DEFAULT_CHANNELS    = 2
	MAX_CHANNELS        = 8
)

var errHelpRequested = errors.New("help requested")

// ToneConfig is everything the command line can set.
type ToneConfig struct {
	SampleRate int
	Channels   int
	Wave       WaveType
	Frequency  float64
	Gain       float64
	Backend    int

	GUI        bool
	Terminal   bool
	ScriptPath string
	SocketPath string
	Send       string
	Probe      time.Duration
	Version    bool
}

func defaultToneConfig() *ToneConfig {
	return &ToneConfig{
		SampleRate: DEFAULT_SAMPLE_RATE,
		Channels:   DEFAULT_CHANNELS,
		Wave:       DEFAULT_WAVE,
		Frequency:  DEFAULT_FREQUENCY,
		Gain:       DEFAULT_GAIN,
		Backend:    AUDIO_BACKEND_OTO,
	}
}

func parseBackendName(name string) (int, error) {
	switch strings.ToLower(name) {
	case "oto", "":
		return AUDIO_BACKEND_OTO, nil
	case "null", "none":
		return AUDIO_BACKEND_NULL, nil
	default:
		return 0, fmt.Errorf("unknown audio backend: %q", name)
	}
}

// parseToneConfig parses args (without the program name). usage receives
// the help text when -h is given; the returned error is errHelpRequested.
func parseToneConfig(args []string, usage io.Writer) (*ToneConfig, error) {
	cfg := defaultToneConfig()
	var waveName, backendName string

	flagSet := flag.NewFlagSet("intuition_tone", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.IntVar(&cfg.SampleRate, "rate", DEFAULT_SAMPLE_RATE, "Output sample rate in Hz")
	flagSet.IntVar(&cfg.Channels, "channels", DEFAULT_CHANNELS, "Output channel count (1-8)")
	flagSet.StringVar(&waveName, "wave", DEFAULT_WAVE.String(), "Waveform: sine|square|triangle|sawtooth|noise")
	flagSet.Float64Var(&cfg.Frequency, "freq", DEFAULT_FREQUENCY, "Frequency in Hz (20-20000)")
	flagSet.Float64Var(&cfg.Gain, "gain", DEFAULT_GAIN, "Linear gain (0-1)")
	flagSet.StringVar(&backendName, "backend", "oto", "Audio backend: oto|null")
	flagSet.BoolVar(&cfg.GUI, "gui", false, "Open the tunables window")
	flagSet.BoolVar(&cfg.Terminal, "term", false, "Control the oscillator from the keyboard in this terminal")
	flagSet.StringVar(&cfg.ScriptPath, "script", "", "Lua control script to run")
	flagSet.StringVar(&cfg.SocketPath, "socket", "", "Unix socket path for remote control (empty = disabled, \"auto\" = default path)")
	flagSet.StringVar(&cfg.Send, "send", "", "Send a JSON control request to a running instance and exit")
	flagSet.DurationVar(&cfg.Probe, "probe", 0, "Render this much audio offline, print signal stats and exit")
	flagSet.BoolVar(&cfg.Version, "version", false, "Print version and compiled features")

	flagSet.Usage = func() {
		flagSet.SetOutput(usage)
		fmt.Fprintln(usage, "Usage: ./intuition_tone [-wave sine] [-freq 440] [-gain 0.1] [-gui|-term|-script file.lua] [-probe 1s]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, errHelpRequested
		}
		return nil, err
	}
	if flagSet.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", flagSet.Args())
	}

	w, err := ParseWaveType(waveName)
	if err != nil {
		return nil, err
	}
	cfg.Wave = w

	if cfg.Backend, err = parseBackendName(backendName); err != nil {
		return nil, err
	}
	if cfg.SocketPath == "auto" || (cfg.Send != "" && cfg.SocketPath == "") {
		cfg.SocketPath = resolveSocketPath()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the host cannot run with. Frequency and gain
// outside their documented ranges are accepted here and clamped by the
// control panel.
func (c *ToneConfig) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d: must be positive", c.SampleRate)
	}
	if c.Channels < 1 || c.Channels > MAX_CHANNELS {
		return fmt.Errorf("invalid channel count %d: must be 1-%d", c.Channels, MAX_CHANNELS)
	}
	if math.IsNaN(c.Frequency) || math.IsNaN(c.Gain) {
		return errors.New("frequency and gain must be numbers")
	}
	if c.Probe < 0 {
		return fmt.Errorf("invalid probe duration %v", c.Probe)
	}
	if c.GUI && c.Terminal {
		return errors.New("select at most one of -gui and -term")
	}
	return nil
}
