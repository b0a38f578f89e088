//go:build headless

package main

import "errors"

func init() {
	compiledFeatures = append(compiledFeatures, "gui:none")
}

var errNoGUI = errors.New("gui: not available in headless build")

type headlessWindow struct{}

func newToneWindow(GUIConfig, *ControlPanel, *ScopeTap) (GUIFrontend, error) {
	return headlessWindow{}, nil
}

func (headlessWindow) Run() error   { return errNoGUI }
func (headlessWindow) Close() error { return nil }
