package harness

import (
	"bytes"
	"strings"
	"testing"

	"runebench/internal/core"
)

func TestEmitterFraming(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf)

	e.Begin()
	e.Record(core.BenchmarkRecord{
		Iteration: 0,
		Timing:    core.PhaseTiming{InitUS: 120, LoadUS: 45, ExecUS: 9001},
		Correct:   true,
	})
	e.Record(core.BenchmarkRecord{
		Iteration: 1,
		Timing:    core.PhaseTiming{ExecUS: 17},
		Correct:   false,
	})
	e.End()

	want := strings.Join([]string{
		"=== Benchmark Begins ===",
		"iteration;init_runtime_us;load_program_us;execution_time_us;correct",
		"0;120;45;9001;true",
		"1;0;0;17;false",
		"=== Benchmark End ===",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestEmitterMemStatsBlock(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf)

	e.MemStats(core.MemoryStats{PeakBytes: 16384, AllocatedBytes: 512, HeapBytes: 65536})

	want := strings.Join([]string{
		"--- Memory Stats ---",
		"peak_allocated_bytes = 16384",
		"currently_allocated_bytes = 512",
		"heap_size = 65536",
		"--------------------",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("mem block mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestEmitterDiagnosticInterleaves(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf)

	e.Diagnostic("%s: load failed: %v", "lua", "unexpected symbol")
	e.Record(core.BenchmarkRecord{Iteration: 3})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), lines)
	}
	if lines[0] != "lua: load failed: unexpected symbol" {
		t.Errorf("diagnostic = %q", lines[0])
	}
	if lines[1] != "3;0;0;0;false" {
		t.Errorf("record = %q", lines[1])
	}
}
