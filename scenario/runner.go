// Package scenario exposes the bus's public broadcast contract (spec.md §1,
// §9: perception models, the drive-cycle driver, report generation, and
// RL/fuzzing adversaries are external collaborators, not bus nodes) to a
// sandboxed goja JS runtime, so an external scenario script can drive a
// literal end-to-end run (spec.md §8) without a Go recompile.
package scenario

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/vvtb/bench/core"
)

// Request describes one scenario script invocation.
type Request struct {
	// Script is the JS source. It must define EntryPoint as a top-level
	// function taking the injected `bench` object.
	Script string
	// EntryPoint is the function name goja calls after loading Script.
	// Defaults to "run".
	EntryPoint string
}

// Result carries everything an external caller needs after a scenario run.
type Result struct {
	Logs  []string       // console.log output captured from the script
	Log   []core.LogEntry // the engine's bus log at the end of the run
	Ticks uint64
}

// Runner executes scenario scripts against one Engine. Each Run gets a
// fresh goja.Runtime for isolation, mirroring the teacher's
// gojaScriptEngine.Execute (system/tee/script_engine.go): a new VM per
// invocation rather than one VM reused and reset.
type Runner struct {
	eng *core.Engine
}

// NewRunner returns a scenario Runner driving eng.
func NewRunner(eng *core.Engine) *Runner {
	return &Runner{eng: eng}
}

// Run loads and executes req.Script in a fresh sandboxed runtime. The
// runtime sees exactly one injected global, `bench`, whose methods are the
// bus's public surface (broadcast, log, step, tick) plus `console.log` for
// script diagnostics — nothing else from the Go process is reachable.
func (r *Runner) Run(req Request) (*Result, error) {
	entryPoint := req.EntryPoint
	if entryPoint == "" {
		entryPoint = "run"
	}

	vm := goja.New()
	var logs []string

	console := vm.NewObject()
	_ = console.Set("log", func(call goja.FunctionCall) goja.Value {
		args := make([]string, len(call.Arguments))
		for i, a := range call.Arguments {
			args[i] = a.String()
		}
		logs = append(logs, fmt.Sprint(args))
		return goja.Undefined()
	})
	_ = vm.Set("console", console)

	bench := vm.NewObject()
	_ = bench.Set("broadcast", r.jsBroadcast(vm))
	_ = bench.Set("log", r.jsLog(vm))
	_ = bench.Set("step", r.jsStep())
	_ = bench.Set("tick", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(r.eng.Tick())
	})
	_ = vm.Set("bench", bench)

	if _, err := vm.RunString(req.Script); err != nil {
		return nil, fmt.Errorf("scenario: load script: %w", err)
	}

	fn, ok := goja.AssertFunction(vm.Get(entryPoint))
	if !ok {
		return nil, fmt.Errorf("scenario: entry point %q is not a function", entryPoint)
	}
	if _, err := fn(goja.Undefined(), vm.Get("bench")); err != nil {
		return nil, fmt.Errorf("scenario: run script: %w", err)
	}

	return &Result{Logs: logs, Log: r.eng.Bus().Log(), Ticks: r.eng.Tick()}, nil
}

// jsBroadcast implements bench.broadcast(id, data, sender). data is a plain
// JS object whose fields are interpreted per the target message ID's fixed
// payload shape (see buildPayload) — the script never picks the Go type.
func (r *Runner) jsBroadcast(vm *goja.Runtime) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 3 {
			panic(vm.ToValue("bench.broadcast(id, data, sender) requires 3 arguments"))
		}
		id := core.MessageID(call.Arguments[0].String())
		raw, _ := call.Arguments[1].Export().(map[string]interface{})
		sender := call.Arguments[2].String()

		payload, err := buildPayload(id, raw)
		if err != nil {
			panic(vm.ToValue(err.Error()))
		}
		r.eng.Bus().Broadcast(id, payload, sender)
		return goja.Undefined()
	}
}

// jsLog implements bench.log(), returning a JS-visible copy of the bus's
// ring log for scenario-side assertions.
func (r *Runner) jsLog(vm *goja.Runtime) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(r.eng.Bus().Log())
	}
}

// jsStep implements bench.step(n), advancing the engine n ticks (default 1).
func (r *Runner) jsStep() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		n := 1
		if len(call.Arguments) > 0 {
			n = int(call.Arguments[0].ToInteger())
		}
		for i := 0; i < n; i++ {
			r.eng.Step()
		}
		return goja.Undefined()
	}
}

