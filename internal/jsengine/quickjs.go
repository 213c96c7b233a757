//go:build !v8

// Package jsengine adapts an embedded JavaScript engine to the benchmark
// lifecycle. The backend is selected at build time: QuickJS by default,
// V8 with the `v8` build tag. Both evaluate the workload module globally
// and then invoke its benchmark() entry point.
package jsengine

import (
	"modernc.org/quickjs"

	"runebench/internal/core"
)

// BackendName identifies which JS engine this binary was built with.
const BackendName = "quickjs"

type Engine struct {
	memoryLimitMB int
}

type qjsHandle struct {
	vm *quickjs.VM
}

// New constructs a fresh QuickJS adapter. memoryLimitMB caps the engine
// heap; zero means unlimited.
func New(memoryLimitMB int) core.Adapter {
	return &Engine{memoryLimitMB: memoryLimitMB}
}

func (e *Engine) Name() string { return BackendName }

func (e *Engine) Init() (core.Handle, error) {
	vm, err := quickjs.NewVM()
	if err != nil {
		return nil, core.Errorf(core.AllocationFailure, "creating quickjs vm: %v", err)
	}
	if e.memoryLimitMB > 0 {
		vm.SetMemoryLimit(uintptr(e.memoryLimitMB) * 1024 * 1024)
	}
	return &qjsHandle{vm: vm}, nil
}

// Load evaluates the workload source at global scope so its benchmark()
// declaration becomes callable. QuickJS has no separate compile step over
// this API, so parse and link both happen here.
func (e *Engine) Load(h core.Handle, w *core.Workload) (core.Program, error) {
	qh := h.(*qjsHandle)
	v, err := qh.vm.EvalValue(string(w.Bytes), quickjs.EvalGlobal)
	if err != nil {
		return nil, core.Errorf(core.ParseError, "evaluating %s: %v", w.Name, err)
	}
	v.Free()
	return w.Name, nil
}

func (e *Engine) Execute(h core.Handle, _ core.Program) (core.Value, error) {
	qh := h.(*qjsHandle)
	result, err := qh.vm.Eval("benchmark()", quickjs.EvalGlobal)
	if err != nil {
		return nil, core.Errorf(core.RuntimeError, "benchmark(): %v", err)
	}
	if b, ok := result.(bool); ok {
		return b, nil
	}
	return result, nil
}

func (e *Engine) Teardown(h core.Handle) {
	qh, ok := h.(*qjsHandle)
	if !ok || qh.vm == nil {
		return
	}
	qh.vm.Close()
	qh.vm = nil
}
