package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"slices"
	"strings"
)

// Version is overridden at link time with -ldflags "-X main.Version=...".
var Version = "dev"

// compiledFeatures tracks build-time feature flags via init() registration.
var compiledFeatures []string

// Modules whose versions are worth quoting in a bug report.
var reportedModules = []string{
	"github.com/ebitengine/oto/v3",
	"github.com/faiface/beep",
	"github.com/hajimehoshi/ebiten/v2",
	"github.com/yuin/gopher-lua",
}

func writeFeatures(w io.Writer) {
	fmt.Fprintf(w, "Intuition Tone %s (%s %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)

	features := slices.Sorted(slices.Values(compiledFeatures))
	if len(features) == 0 {
		features = []string{"(none)"}
	}
	fmt.Fprintf(w, "Features: %s\n", strings.Join(features, " "))

	defaults := ParamSnapshot{Wave: DEFAULT_WAVE, Frequency: DEFAULT_FREQUENCY, Gain: DEFAULT_GAIN}
	fmt.Fprintf(w, "Defaults: %s, %d Hz, %d channel(s)\n", defaults, DEFAULT_SAMPLE_RATE, DEFAULT_CHANNELS)

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, dep := range info.Deps {
		if slices.Contains(reportedModules, dep.Path) {
			fmt.Fprintf(w, "  %s %s\n", dep.Path, dep.Version)
		}
	}
}

func printFeatures() {
	writeFeatures(os.Stdout)
}
