//go:build !(amd64 || arm64 || 386 || arm || riscv64 || loong64 || mipsle || mips64le || ppc64le || wasm)

package main

// The oto backend hands []float32 to a FormatFloat32LE device by
// reinterpreting the slice as bytes, which assumes little-endian order.
var _ = "Intuition Tone requires a little-endian architecture" + 1
