package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// ScriptHost runs a Lua control script against a ControlPanel. Scripts see
// a small API:
//
//	wave(name)      select waveform by name
//	freq(hz)        set frequency, returns the clamped value
//	gain(g)         set gain, returns the clamped value
//	semitones(n)    transpose, returns the new frequency
//	sleep(ms)       pause, returns early when the host is stopped
//	params()        table {wave=, freq=, gain=}
//	log(msg)        print a line prefixed with "script:"
//
// Only the base, table, string and math libraries are opened.
type ScriptHost struct {
	panel  *ControlPanel
	name   string
	source string
	out    io.Writer
}

func NewScriptHost(panel *ControlPanel, name, source string) *ScriptHost {
	return &ScriptHost{panel: panel, name: name, source: source, out: os.Stdout}
}

func LoadScriptHost(panel *ControlPanel, path string) (*ScriptHost, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return NewScriptHost(panel, path, string(data)), nil
}

// Run executes the script to completion or until ctx is done. Cancellation
// is reported as ctx.Err(), wrapped.
func (h *ScriptHost) Run(ctx context.Context) error {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	h.register(L)
	L.SetContext(ctx)

	fn, err := L.Load(strings.NewReader(h.source), h.name)
	if err != nil {
		return fmt.Errorf("script %s: %w", h.name, err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("script %s stopped: %w", h.name, ctxErr)
		}
		return fmt.Errorf("script %s: %w", h.name, err)
	}
	return nil
}

func (h *ScriptHost) register(L *lua.LState) {
	L.SetGlobal("wave", L.NewFunction(h.luaWave))
	L.SetGlobal("freq", L.NewFunction(h.luaFreq))
	L.SetGlobal("gain", L.NewFunction(h.luaGain))
	L.SetGlobal("semitones", L.NewFunction(h.luaSemitones))
	L.SetGlobal("sleep", L.NewFunction(h.luaSleep))
	L.SetGlobal("params", L.NewFunction(h.luaParams))
	L.SetGlobal("log", L.NewFunction(h.luaLog))
}

func (h *ScriptHost) luaWave(L *lua.LState) int {
	if err := h.panel.SetWaveByName(L.CheckString(1)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (h *ScriptHost) luaFreq(L *lua.LState) int {
	L.Push(lua.LNumber(h.panel.SetFrequency(float64(L.CheckNumber(1)))))
	return 1
}

func (h *ScriptHost) luaGain(L *lua.LState) int {
	L.Push(lua.LNumber(h.panel.SetGain(float64(L.CheckNumber(1)))))
	return 1
}

func (h *ScriptHost) luaSemitones(L *lua.LState) int {
	L.Push(lua.LNumber(h.panel.StepSemitones(L.CheckInt(1))))
	return 1
}

func (h *ScriptHost) luaSleep(L *lua.LState) int {
	ms := float64(L.CheckNumber(1))
	if ms <= 0 {
		return 0
	}
	timer := time.NewTimer(time.Duration(ms * float64(time.Millisecond)))
	defer timer.Stop()

	ctx := L.Context()
	if ctx == nil {
		<-timer.C
		return 0
	}
	select {
	case <-timer.C:
	case <-ctx.Done():
		L.RaiseError("%v", ctx.Err())
	}
	return 0
}

func (h *ScriptHost) luaParams(L *lua.LState) int {
	s := h.panel.Snapshot()
	t := L.NewTable()
	L.SetField(t, "wave", lua.LString(s.Wave.String()))
	L.SetField(t, "freq", lua.LNumber(s.Frequency))
	L.SetField(t, "gain", lua.LNumber(s.Gain))
	L.Push(t)
	return 1
}

func (h *ScriptHost) luaLog(L *lua.LState) int {
	fmt.Fprintf(h.out, "script: %s\n", L.CheckString(1))
	return 0
}
