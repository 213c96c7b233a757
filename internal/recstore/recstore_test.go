package recstore

import (
	"path/filepath"
	"testing"

	"runebench/internal/core"
)

func TestRecordRoundtrip(t *testing.T) {
	s, err := OpenMemory("lua", "sum")
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	recs := []core.BenchmarkRecord{
		{Iteration: 0, Timing: core.PhaseTiming{InitUS: 10, LoadUS: 20, ExecUS: 30}, Correct: true},
		{Iteration: 1, Correct: false, Err: core.Errorf(core.ParseError, "bad chunk")},
		{Iteration: 2, Correct: true, Mem: &core.MemoryStats{PeakBytes: 4096, AllocatedBytes: 128, HeapBytes: 65536}},
	}
	for _, rec := range recs {
		if err := s.Record(rec); err != nil {
			t.Fatalf("Record(%d): %v", rec.Iteration, err)
		}
	}

	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
}

func TestCountScopedToRunTag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.sqlite3")

	first, err := Open(path, "lua", "sum")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := first.Record(core.BenchmarkRecord{Correct: true}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	first.Close()

	// A different run tag over the same file sees none of them.
	second, err := Open(path, "wasm", "sum")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	n, err := second.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("Count = %d, want 0 for a different runtime", n)
	}
}

func TestOpenCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "new.sqlite3")
	s, err := Open(path, "native", "md5")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.Record(core.BenchmarkRecord{Iteration: 0, Correct: true}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}
