// Package starengine adapts the Starlark interpreter to the benchmark
// lifecycle. Starlark separates compilation from execution cleanly, so
// the load and execute phases map one-to-one onto the interpreter API.
package starengine

import (
	"go.starlark.net/starlark"

	"runebench/internal/core"
)

type Engine struct{}

type starHandle struct {
	thread *starlark.Thread
}

// New constructs a fresh Starlark adapter.
func New() core.Adapter { return &Engine{} }

func (e *Engine) Name() string { return "starlark" }

func (e *Engine) Init() (core.Handle, error) {
	return &starHandle{thread: &starlark.Thread{Name: "benchmark"}}, nil
}

func (e *Engine) Load(_ core.Handle, w *core.Workload) (core.Program, error) {
	_, prog, err := starlark.SourceProgram(w.Name+".star", string(w.Bytes), func(string) bool { return false })
	if err != nil {
		return nil, core.Errorf(core.ParseError, "compiling %s: %v", w.Name, err)
	}
	return prog, nil
}

func (e *Engine) Execute(h core.Handle, p core.Program) (core.Value, error) {
	sh := h.(*starHandle)
	prog := p.(*starlark.Program)

	globals, err := prog.Init(sh.thread, nil)
	if err != nil {
		return nil, core.Errorf(core.RuntimeError, "running module: %v", err)
	}
	globals.Freeze()

	entry, ok := globals["benchmark"].(starlark.Callable)
	if !ok {
		return nil, core.Errorf(core.RuntimeError, "module defines no benchmark()")
	}
	result, err := starlark.Call(sh.thread, entry, nil, nil)
	if err != nil {
		return nil, core.Errorf(core.RuntimeError, "benchmark(): %v", err)
	}
	if b, ok := result.(starlark.Bool); ok {
		return bool(b), nil
	}
	return result, nil
}

func (e *Engine) Teardown(h core.Handle) {
	sh, ok := h.(*starHandle)
	if !ok {
		return
	}
	sh.thread = nil
}
