package harness

import (
	"time"

	"runebench/internal/core"
)

// TimingRecorder samples a monotonic clock immediately before and after
// each lifecycle phase. Phases are strictly sequential within an iteration,
// so a single recorder per iteration suffices. The clock is injectable for
// tests; the zero value is not usable.
type TimingRecorder struct {
	now func() time.Time
}

// NewTimingRecorder returns a recorder on the wall clock's monotonic
// reading.
func NewTimingRecorder() *TimingRecorder {
	return &TimingRecorder{now: time.Now}
}

// NewTimingRecorderWithClock returns a recorder on an arbitrary clock.
func NewTimingRecorderWithClock(now func() time.Time) *TimingRecorder {
	return &TimingRecorder{now: now}
}

// Measure runs one phase and returns its duration in microseconds together
// with the phase's error. Durations are clamped at zero so a clock with
// coarser-than-microsecond resolution can never produce a negative field.
func (r *TimingRecorder) Measure(phase func() error) (int64, error) {
	start := r.now()
	err := phase()
	us := r.now().Sub(start).Microseconds()
	if us < 0 {
		us = 0
	}
	return us, err
}

// Verify interprets the value produced by Execute as a strict boolean
// correctness flag. Anything other than the adapter's normalized Go bool —
// wrong type, absent return — yields UnexpectedResultType, which is
// reported but does not raise: a malformed workload result is a
// workload-correctness failure, not a harness fault.
func Verify(v core.Value) (bool, *core.Error) {
	b, ok := v.(bool)
	if !ok {
		return false, core.Errorf(core.UnexpectedResultType,
			"workload returned %T, want bool", v)
	}
	return b, nil
}
