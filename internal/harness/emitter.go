package harness

import (
	"fmt"
	"io"

	"runebench/internal/core"
)

// Output stream framing. The per-iteration line is semicolon-delimited with
// no trailing delimiter; boolean fields use lowercase true/false for every
// adapter variant.
const (
	beginBanner = "=== Benchmark Begins ==="
	headerLine  = "iteration;init_runtime_us;load_program_us;execution_time_us;correct"
	endBanner   = "=== Benchmark End ==="
)

// Emitter renders benchmark records and interleaved diagnostics to a single
// line-oriented text stream. Diagnostics never replace the structured
// per-iteration line, which is always emitted.
type Emitter struct {
	w io.Writer
}

// NewEmitter creates an Emitter writing to w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// Begin writes the start-of-run banner and the header line.
func (e *Emitter) Begin() {
	fmt.Fprintln(e.w, beginBanner)
	fmt.Fprintln(e.w, headerLine)
}

// Record writes the structured line for one iteration.
func (e *Emitter) Record(rec core.BenchmarkRecord) {
	fmt.Fprintf(e.w, "%d;%d;%d;%d;%s\n",
		rec.Iteration,
		rec.Timing.InitUS,
		rec.Timing.LoadUS,
		rec.Timing.ExecUS,
		boolLiteral(rec.Correct),
	)
}

// MemStats writes the free-form memory block for one iteration. The layout
// follows the engine heap-statistics block of the original embedded
// harness.
func (e *Emitter) MemStats(ms core.MemoryStats) {
	fmt.Fprintln(e.w, "--- Memory Stats ---")
	fmt.Fprintf(e.w, "peak_allocated_bytes = %d\n", ms.PeakBytes)
	fmt.Fprintf(e.w, "currently_allocated_bytes = %d\n", ms.AllocatedBytes)
	fmt.Fprintf(e.w, "heap_size = %d\n", ms.HeapBytes)
	fmt.Fprintln(e.w, "--------------------")
}

// Diagnostic writes an adapter diagnostic line interleaved with the record
// stream.
func (e *Emitter) Diagnostic(format string, args ...any) {
	fmt.Fprintf(e.w, format+"\n", args...)
}

// End writes the end-of-run banner.
func (e *Emitter) End() {
	fmt.Fprintln(e.w, endBanner)
}

func boolLiteral(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
