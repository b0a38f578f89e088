//go:build !oscdebug

package main

// oscPrecondition is a no-op in release builds; callers contain the fault
// themselves (silence on the audio path, an error from Initialize).
func oscPrecondition(string) {}
