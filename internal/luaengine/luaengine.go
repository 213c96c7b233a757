// Package luaengine adapts the gopher-lua interpreter to the benchmark
// lifecycle. The workload chunk is compiled in Load, run at global scope
// in Execute, and its benchmark() entry point called for the verdict.
package luaengine

import (
	lua "github.com/yuin/gopher-lua"

	"runebench/internal/core"
)

type Engine struct{}

type luaHandle struct {
	state *lua.LState
}

// New constructs a fresh Lua adapter.
func New() core.Adapter { return &Engine{} }

func (e *Engine) Name() string { return "lua" }

func (e *Engine) Init() (core.Handle, error) {
	state := lua.NewState(lua.Options{SkipOpenLibs: false})
	return &luaHandle{state: state}, nil
}

func (e *Engine) Load(h core.Handle, w *core.Workload) (core.Program, error) {
	lh := h.(*luaHandle)
	fn, err := lh.state.LoadString(string(w.Bytes))
	if err != nil {
		return nil, core.Errorf(core.ParseError, "compiling %s: %v", w.Name, err)
	}
	return fn, nil
}

func (e *Engine) Execute(h core.Handle, p core.Program) (core.Value, error) {
	lh := h.(*luaHandle)
	chunk := p.(*lua.LFunction)

	// Run the module body so its globals, benchmark() included, exist.
	lh.state.Push(chunk)
	if err := lh.state.PCall(0, lua.MultRet, nil); err != nil {
		return nil, core.Errorf(core.RuntimeError, "running module: %v", err)
	}
	lh.state.SetTop(0)

	entry := lh.state.GetGlobal("benchmark")
	if entry == lua.LNil {
		return nil, core.Errorf(core.RuntimeError, "module defines no benchmark()")
	}
	err := lh.state.CallByParam(lua.P{Fn: entry, NRet: 1, Protect: true})
	if err != nil {
		return nil, core.Errorf(core.RuntimeError, "benchmark(): %v", err)
	}
	ret := lh.state.Get(-1)
	lh.state.Pop(1)

	if b, ok := ret.(lua.LBool); ok {
		return bool(b), nil
	}
	return ret, nil
}

func (e *Engine) Teardown(h core.Handle) {
	lh, ok := h.(*luaHandle)
	if !ok || lh.state == nil {
		return
	}
	lh.state.Close()
	lh.state = nil
}
