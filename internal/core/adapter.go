package core

// Adapter binds one embedded execution engine to the harness's four-phase
// lifecycle. One concrete implementation exists per engine family; the
// controller drives them identically.
//
// The per-iteration state machine is:
//
//	Uninitialized → Initialized → Loaded → Executed → Verified → TornDown
//
// with a Failed absorbing state reachable from Initialized (load failure)
// and Loaded (execution failure). Failed still transitions to TornDown —
// Teardown runs unconditionally on every path.
type Adapter interface {
	// Name identifies the engine family ("native", "quickjs", "lua", ...).
	Name() string

	// Init allocates fresh engine state. It must be safe to call on a new
	// instance every iteration with no residual state from a prior call.
	// The only error kind it may return is AllocationFailure.
	Init() (Handle, error)

	// Load parses/compiles the workload into a Program. Engines with no
	// separate parse step implement this as a no-op returning the
	// pre-linked entry point. The only error kind is ParseError.
	Load(h Handle, w *Workload) (Program, error)

	// Execute runs the program to completion and returns its result value.
	// The only error kind is RuntimeError.
	Execute(h Handle, p Program) (Value, error)

	// Teardown releases all resources owned by the Handle. It must not
	// panic, even when a prior phase failed.
	Teardown(h Handle)
}

// AdapterFactory constructs a fresh Adapter instance. The controller calls
// it once per iteration; adapter instances are never reused.
type AdapterFactory func() Adapter

// MemoryProber is an optional adapter capability. When present, the
// controller samples it immediately before Init and immediately after
// Teardown and reports the delta; adapters without the capability simply
// omit the record field — the controller never synthesizes one.
type MemoryProber interface {
	MemorySample() MemoryStats
}

// NoopPhaser is an optional adapter capability marking phases that have no
// semantic meaning for the engine (a pre-linked native workload has no init
// or load work). The controller still drives the phase for the state
// machine but reports its duration as exactly zero.
type NoopPhaser interface {
	NoopPhases() (initNoop, loadNoop bool)
}
