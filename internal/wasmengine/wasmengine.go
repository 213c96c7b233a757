// Package wasmengine adapts the Wasmer WebAssembly runtime to the
// benchmark lifecycle. Workloads are wasm modules exporting a zero-arg
// `benchmark` function returning an i32, where 1 means the workload's
// self-check passed.
package wasmengine

import (
	"github.com/wasmerio/wasmer-go/wasmer"

	"runebench/internal/core"
)

type Engine struct{}

type wasmHandle struct {
	engine   *wasmer.Engine
	store    *wasmer.Store
	instance *wasmer.Instance
}

// New constructs a fresh Wasmer adapter.
func New() core.Adapter { return &Engine{} }

func (e *Engine) Name() string { return "wasm" }

func (e *Engine) Init() (core.Handle, error) {
	engine := wasmer.NewEngine()
	store := wasmer.NewStore(engine)
	return &wasmHandle{engine: engine, store: store}, nil
}

// Load compiles and instantiates the module. Instantiation belongs to the
// load phase here because it is where the module's start section and data
// segments run, which is setup work, not the benchmark itself.
func (e *Engine) Load(h core.Handle, w *core.Workload) (core.Program, error) {
	wh := h.(*wasmHandle)
	module, err := wasmer.NewModule(wh.store, w.Bytes)
	if err != nil {
		return nil, core.Errorf(core.ParseError, "compiling %s: %v", w.Name, err)
	}
	instance, err := wasmer.NewInstance(module, wasmer.NewImportObject())
	if err != nil {
		return nil, core.Errorf(core.ParseError, "instantiating %s: %v", w.Name, err)
	}
	wh.instance = instance

	entry, err := instance.Exports.GetFunction("benchmark")
	if err != nil {
		return nil, core.Errorf(core.ParseError, "%s exports no benchmark function: %v", w.Name, err)
	}
	return entry, nil
}

func (e *Engine) Execute(_ core.Handle, p core.Program) (core.Value, error) {
	entry := p.(wasmer.NativeFunction)
	result, err := entry()
	if err != nil {
		return nil, core.Errorf(core.RuntimeError, "benchmark(): %v", err)
	}
	// Wasm has no boolean type; the convention is i32 with 1 for pass.
	if n, ok := result.(int32); ok && (n == 0 || n == 1) {
		return n == 1, nil
	}
	return result, nil
}

func (e *Engine) Teardown(h core.Handle) {
	wh, ok := h.(*wasmHandle)
	if !ok {
		return
	}
	if wh.instance != nil {
		wh.instance.Close()
		wh.instance = nil
	}
	wh.store = nil
	wh.engine = nil
}
