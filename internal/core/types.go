package core

// Workload is an opaque program payload plus its embedded pass/fail oracle.
// It is owned by the caller, immutable, and shared read-only by every
// iteration; the harness never looks inside the bytes.
type Workload struct {
	Name  string
	Bytes []byte
}

// Handle is opaque per-adapter runtime state (heap, interpreter globals, VM
// instance). A Handle is created by Init, destroyed by Teardown, and is
// never reused across iterations: several workloads mutate engine-wide
// state (hash accumulators, PRNG seed) that must not leak between runs.
type Handle interface{}

// Program is the adapter-internal result of loading a Workload: a compiled
// chunk, an instantiated module, or a pre-linked entry point.
type Program interface{}

// Value is the raw result of Execute. Adapters normalize their engine's
// native boolean representation to a Go bool; any other value is passed
// through unchanged so the verifier can classify it.
type Value interface{}

// PhaseTiming holds the measured duration of the three lifecycle phases in
// microseconds. A phase with no semantic meaning for an adapter is exactly
// zero, never omitted and never negative.
type PhaseTiming struct {
	InitUS int64
	LoadUS int64
	ExecUS int64
}

// MemoryStats is an allocator sample from an adapter's memory probe.
// The field set mirrors what embedded engines report: peak cumulative
// allocation, bytes currently live, and the size of the backing heap.
type MemoryStats struct {
	PeakBytes      uint64
	AllocatedBytes uint64
	HeapBytes      uint64
}

// BenchmarkRecord is the telemetry for a single iteration. It is produced
// exactly once per iteration and immutable once emitted.
type BenchmarkRecord struct {
	Iteration int
	Timing    PhaseTiming
	Correct   bool
	Err       *Error       // nil when all phases succeeded
	Mem       *MemoryStats // nil when the adapter has no memory probe
}

// RecordSink receives each BenchmarkRecord after it has been written to the
// primary output stream. Sinks are optional collaborators (record store,
// live telemetry); a sink error is reported but never stops the run.
type RecordSink interface {
	Record(rec BenchmarkRecord) error
}
