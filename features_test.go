package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteFeatures(t *testing.T) {
	var buf bytes.Buffer
	writeFeatures(&buf)
	out := buf.String()

	if !strings.HasPrefix(out, "Intuition Tone "+Version+" (") {
		t.Fatalf("unexpected header: %q", out)
	}
	if !strings.Contains(out, "audio:") {
		t.Fatalf("expected an audio feature, got %q", out)
	}
	want := "Defaults: wave=sine freq=440.00Hz gain=0.100, 44100 Hz, 2 channel(s)\n"
	if !strings.Contains(out, want) {
		t.Fatalf("missing %q in %q", want, out)
	}
}
