// Package recstore persists benchmark records to a local SQLite database
// so runs of the same workload across engines can be compared after the
// fact. It is an optional sink: the primary output stream never depends
// on it.
package recstore

import (
	"database/sql"
	"fmt"
	"time"

	// Pure-Go SQLite driver for database/sql.
	_ "github.com/glebarez/sqlite"

	"runebench/internal/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS benchmark_records (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	recorded_at  TEXT    NOT NULL,
	runtime      TEXT    NOT NULL,
	workload     TEXT    NOT NULL,
	iteration    INTEGER NOT NULL,
	init_us      INTEGER NOT NULL,
	load_us      INTEGER NOT NULL,
	exec_us      INTEGER NOT NULL,
	correct      INTEGER NOT NULL,
	error_kind   TEXT,
	peak_bytes   INTEGER,
	alloc_bytes  INTEGER,
	heap_bytes   INTEGER
);
CREATE INDEX IF NOT EXISTS idx_records_run ON benchmark_records (runtime, workload);
`

// Store writes one row per iteration, tagged with the runtime and
// workload the run was configured with.
type Store struct {
	db       *sql.DB
	runtime  string
	workload string
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path, runtime, workload string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening record store %q: %w", path, err)
	}
	_, _ = db.Exec("PRAGMA journal_mode=WAL")
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating record schema: %w", err)
	}
	return &Store{db: db, runtime: runtime, workload: workload}, nil
}

// OpenMemory creates an in-memory store for testing.
func OpenMemory(runtime, workload string) (*Store, error) {
	return Open(":memory:", runtime, workload)
}

// Record implements core.RecordSink.
func (s *Store) Record(rec core.BenchmarkRecord) error {
	var errKind interface{}
	if rec.Err != nil {
		errKind = rec.Err.Kind.String()
	}
	var peak, alloc, heap interface{}
	if rec.Mem != nil {
		peak, alloc, heap = rec.Mem.PeakBytes, rec.Mem.AllocatedBytes, rec.Mem.HeapBytes
	}
	_, err := s.db.Exec(`
		INSERT INTO benchmark_records
			(recorded_at, runtime, workload, iteration, init_us, load_us, exec_us, correct, error_kind, peak_bytes, alloc_bytes, heap_bytes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano),
		s.runtime, s.workload, rec.Iteration,
		rec.Timing.InitUS, rec.Timing.LoadUS, rec.Timing.ExecUS,
		boolToInt(rec.Correct), errKind, peak, alloc, heap,
	)
	if err != nil {
		return fmt.Errorf("inserting record %d: %w", rec.Iteration, err)
	}
	return nil
}

// Count returns the number of stored records for this store's run tag.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM benchmark_records WHERE runtime = ? AND workload = ?",
		s.runtime, s.workload,
	).Scan(&n)
	return n, err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
