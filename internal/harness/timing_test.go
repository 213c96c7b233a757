package harness

import (
	"errors"
	"testing"
	"time"

	"runebench/internal/core"
)

// tickClock advances a fixed amount per reading.
type tickClock struct {
	t    time.Time
	step time.Duration
}

func (c *tickClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func TestMeasureReportsMicroseconds(t *testing.T) {
	clock := &tickClock{t: time.Unix(0, 0), step: 250 * time.Microsecond}
	r := NewTimingRecorderWithClock(clock.now)

	us, err := r.Measure(func() error { return nil })
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if us != 250 {
		t.Errorf("us = %d, want 250", us)
	}
}

func TestMeasurePropagatesPhaseError(t *testing.T) {
	r := NewTimingRecorder()
	sentinel := errors.New("phase failed")

	us, err := r.Measure(func() error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want %v", err, sentinel)
	}
	if us < 0 {
		t.Errorf("us = %d, want non-negative", us)
	}
}

func TestMeasureClampsNegativeDurations(t *testing.T) {
	// A clock running backwards must still produce a zero field, never a
	// negative one.
	clock := &tickClock{t: time.Unix(1000, 0), step: -time.Millisecond}
	r := NewTimingRecorderWithClock(clock.now)

	us, _ := r.Measure(func() error { return nil })
	if us != 0 {
		t.Errorf("us = %d, want 0", us)
	}
}

func TestVerifyStrictBool(t *testing.T) {
	tests := []struct {
		name     string
		value    core.Value
		correct  bool
		wantKind core.ErrorKind
		wantErr  bool
	}{
		{name: "true", value: true, correct: true},
		{name: "false", value: false, correct: false},
		{name: "int", value: 1, wantErr: true, wantKind: core.UnexpectedResultType},
		{name: "string", value: "true", wantErr: true, wantKind: core.UnexpectedResultType},
		{name: "nil", value: nil, wantErr: true, wantKind: core.UnexpectedResultType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			correct, verr := Verify(tt.value)
			if correct != tt.correct {
				t.Errorf("correct = %v, want %v", correct, tt.correct)
			}
			if tt.wantErr {
				if verr == nil {
					t.Fatal("want error, got nil")
				}
				if verr.Kind != tt.wantKind {
					t.Errorf("kind = %v, want %v", verr.Kind, tt.wantKind)
				}
			} else if verr != nil {
				t.Errorf("unexpected error: %v", verr)
			}
		})
	}
}
