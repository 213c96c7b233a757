//go:build v8

// Package jsengine adapts an embedded JavaScript engine to the benchmark
// lifecycle. The backend is selected at build time: QuickJS by default,
// V8 with the `v8` build tag. Both evaluate the workload module globally
// and then invoke its benchmark() entry point.
package jsengine

import (
	v8 "github.com/tommie/v8go"

	"runebench/internal/core"
)

// BackendName identifies which JS engine this binary was built with.
const BackendName = "v8"

type Engine struct {
	memoryLimitMB int
}

type v8Handle struct {
	iso *v8.Isolate
	ctx *v8.Context
}

// New constructs a fresh V8 adapter. memoryLimitMB caps the isolate heap;
// zero means V8's defaults.
func New(memoryLimitMB int) core.Adapter {
	return &Engine{memoryLimitMB: memoryLimitMB}
}

func (e *Engine) Name() string { return BackendName }

func (e *Engine) Init() (core.Handle, error) {
	var iso *v8.Isolate
	if e.memoryLimitMB > 0 {
		heap := uint64(e.memoryLimitMB) * 1024 * 1024
		iso = v8.NewIsolate(v8.WithResourceConstraints(heap/2, heap))
	} else {
		iso = v8.NewIsolate()
	}
	ctx := v8.NewContext(iso)
	return &v8Handle{iso: iso, ctx: ctx}, nil
}

// Load compiles the workload without running it. V8 exposes a real
// compile step, so parse errors surface here and execution stays in
// Execute where it belongs.
func (e *Engine) Load(h core.Handle, w *core.Workload) (core.Program, error) {
	vh := h.(*v8Handle)
	script, err := vh.iso.CompileUnboundScript(string(w.Bytes), w.Name+".js", v8.CompileOptions{})
	if err != nil {
		return nil, core.Errorf(core.ParseError, "compiling %s: %v", w.Name, err)
	}
	return script, nil
}

func (e *Engine) Execute(h core.Handle, p core.Program) (core.Value, error) {
	vh := h.(*v8Handle)
	script := p.(*v8.UnboundScript)
	if _, err := script.Run(vh.ctx); err != nil {
		return nil, core.Errorf(core.RuntimeError, "running module: %v", err)
	}
	val, err := vh.ctx.RunScript("benchmark()", "call.js")
	if err != nil {
		return nil, core.Errorf(core.RuntimeError, "benchmark(): %v", err)
	}
	if val.IsBoolean() {
		return val.Boolean(), nil
	}
	return val, nil
}

func (e *Engine) Teardown(h core.Handle) {
	vh, ok := h.(*v8Handle)
	if !ok {
		return
	}
	if vh.ctx != nil {
		vh.ctx.Close()
		vh.ctx = nil
	}
	if vh.iso != nil {
		vh.iso.Dispose()
		vh.iso = nil
	}
}
