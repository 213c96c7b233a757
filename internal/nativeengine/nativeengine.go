// Package nativeengine is the ahead-of-time-compiled baseline: workloads
// run as plain Go functions with no interpreter between them and the CPU.
// Its numbers are the floor the embedded engines are compared against.
package nativeengine

import (
	"runtime"

	"runebench/internal/core"
	"runebench/internal/workloads"
)

type Engine struct{}

// New constructs a fresh adapter instance.
func New() core.Adapter { return &Engine{} }

func (e *Engine) Name() string { return "native" }

// Init has no engine state to allocate. The handle is the adapter itself
// so the remaining phases have something non-nil to thread through.
func (e *Engine) Init() (core.Handle, error) { return e, nil }

// Load resolves the pre-linked entry point. There is nothing to parse;
// an unknown workload name is still a ParseError so the harness records
// it the same way as a script engine rejecting bad source.
func (e *Engine) Load(_ core.Handle, w *core.Workload) (core.Program, error) {
	fn, err := workloads.NativeFunc(w.Name)
	if err != nil {
		return nil, core.NewError(core.ParseError, err)
	}
	return fn, nil
}

func (e *Engine) Execute(_ core.Handle, p core.Program) (core.Value, error) {
	fn := p.(func() bool)
	return fn(), nil
}

func (e *Engine) Teardown(core.Handle) {}

// NoopPhases marks both init and load as semantically empty: the program
// was compiled before the process started.
func (e *Engine) NoopPhases() (bool, bool) { return true, true }

// MemorySample reports Go heap figures from the runtime. Peak is the
// cumulative allocation counter, which only ever grows, so the harness's
// before/after delta isolates the iteration's own churn.
func (e *Engine) MemorySample() core.MemoryStats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return core.MemoryStats{
		PeakBytes:      ms.TotalAlloc,
		AllocatedBytes: ms.HeapAlloc,
		HeapBytes:      ms.HeapSys,
	}
}
