// Package runebench is a repeatable micro-benchmark harness for embedded
// language runtimes. It drives the same small, self-verifying workloads
// through an ahead-of-time-compiled baseline and a set of embedded
// engines (JavaScript, Lua, Starlark, WebAssembly, an eBPF register VM),
// timing each lifecycle phase separately so startup, load, and execution
// costs can be compared across engines on equal terms.
package runebench

import (
	"fmt"
	"io"
	"os"

	"runebench/internal/core"
	"runebench/internal/harness"
	"runebench/internal/workloads"
)

// DefaultIterations mirrors core.DefaultIterations for callers that only
// import the facade.
const DefaultIterations = core.DefaultIterations

// Options configures a single benchmark run.
type Options struct {
	// Runtime selects the adapter: native, js, lua, starlark, wasm, bpf.
	Runtime string

	// Workload names a built-in payload (sum, crc32, md5, libud, tarfind;
	// availability varies per runtime). Ignored when WorkloadFile is set.
	Workload string

	// WorkloadFile loads the payload from disk instead, decompressing
	// .br files and bundling multi-file JS sources.
	WorkloadFile string

	// Iterations is the number of lifecycle repetitions; zero means
	// DefaultIterations.
	Iterations int

	// MemoryLimitMB caps the engine heap for adapters that support a
	// limit; zero means unlimited.
	MemoryLimitMB int

	// MemStats enables the per-iteration memory block for adapters with
	// a probe.
	MemStats bool

	// Out receives the primary output stream; nil means os.Stdout.
	Out io.Writer

	// Sinks receive each record after it is written to Out.
	Sinks []core.RecordSink
}

// Run executes the benchmark and returns the correctness flag of the
// final iteration, which callers turn into the process exit status.
// The returned error is non-nil only when the run could not start or was
// aborted by an allocation failure.
func Run(opts Options) (bool, error) {
	if opts.Runtime == "" {
		return false, fmt.Errorf("no runtime selected")
	}

	var w *core.Workload
	var err error
	if opts.WorkloadFile != "" {
		w, err = workloads.FromFile(opts.WorkloadFile)
	} else {
		if opts.Workload == "" {
			return false, fmt.Errorf("no workload selected")
		}
		w, err = workloads.Builtin(opts.Runtime, opts.Workload)
	}
	if err != nil {
		return false, err
	}

	factory, err := newAdapterFactory(opts.Runtime, opts.MemoryLimitMB)
	if err != nil {
		return false, err
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	ctrl := harness.NewController(factory, w, harness.NewEmitter(out))
	for _, s := range opts.Sinks {
		ctrl.AddSink(s)
	}
	if opts.MemStats {
		ctrl.EnableMemStats()
	}

	n := opts.Iterations
	if n <= 0 {
		n = DefaultIterations
	}
	return ctrl.Run(n)
}
