//go:build oscdebug

package main

func init() {
	compiledFeatures = append(compiledFeatures, "asserts:oscdebug")
}

// oscPrecondition panics so misuse of the engine is caught at the call site.
func oscPrecondition(msg string) {
	panic("oscillator: " + msg)
}
