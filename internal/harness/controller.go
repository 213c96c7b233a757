package harness

import (
	"log"
	"time"

	"runebench/internal/core"
)

// Controller drives N sequential iterations of the benchmark lifecycle.
// Each iteration runs against a freshly constructed adapter instance and
// sequences Timing → Execute → Verify → Emit → Teardown. A single
// iteration's failure never aborts the run; only AllocationFailure is
// fatal.
type Controller struct {
	factory  core.AdapterFactory
	workload *core.Workload
	emitter  *Emitter
	recorder *TimingRecorder
	sinks    []core.RecordSink
	memStats bool
}

// NewController creates a Controller for one workload and one adapter
// variant.
func NewController(factory core.AdapterFactory, w *core.Workload, em *Emitter) *Controller {
	return &Controller{
		factory:  factory,
		workload: w,
		emitter:  em,
		recorder: NewTimingRecorder(),
	}
}

// SetClock replaces the phase clock. Tests use this to pin durations.
func (c *Controller) SetClock(now func() time.Time) {
	c.recorder = NewTimingRecorderWithClock(now)
}

// AddSink registers an additional record consumer.
func (c *Controller) AddSink(s core.RecordSink) {
	c.sinks = append(c.sinks, s)
}

// EnableMemStats turns on the per-iteration memory block for adapters that
// expose a probe.
func (c *Controller) EnableMemStats() {
	c.memStats = true
}

// Run executes n iterations and returns the correctness flag of the final
// iteration, which determines the process exit status. The returned error
// is non-nil only for a fatal AllocationFailure, in which case remaining
// iterations were not attempted.
func (c *Controller) Run(n int) (bool, error) {
	c.emitter.Begin()

	lastCorrect := false
	for i := 0; i < n; i++ {
		rec, mem := c.runIteration(i)

		c.emitter.Record(rec)
		if mem != nil && c.memStats {
			c.emitter.MemStats(*mem)
		}
		c.dispatch(rec)

		lastCorrect = rec.Correct
		if rec.Err != nil && rec.Err.Kind == core.AllocationFailure {
			return false, rec.Err
		}
	}

	c.emitter.End()
	return lastCorrect, nil
}

// runIteration constructs a fresh adapter, samples the memory probe on
// either side of the lifecycle when the adapter has one, and produces the
// iteration's record. The memory sample is nil when the adapter has no
// probe or when Init itself failed.
func (c *Controller) runIteration(i int) (core.BenchmarkRecord, *core.MemoryStats) {
	a := c.factory()

	prober, hasProbe := a.(core.MemoryProber)
	var before core.MemoryStats
	if hasProbe {
		before = prober.MemorySample()
	}

	rec, tornDown := c.drive(a, i)

	// The probe contract samples immediately before Init and immediately
	// after Teardown, reporting the difference in peak usage.
	if !hasProbe || !tornDown {
		return rec, nil
	}
	after := prober.MemorySample()
	return rec, &core.MemoryStats{
		PeakBytes:      after.PeakBytes - before.PeakBytes,
		AllocatedBytes: after.AllocatedBytes,
		HeapBytes:      after.HeapBytes,
	}
}

// drive runs the per-iteration state machine:
//
//	Uninitialized → Initialized → Loaded → Executed → Verified → TornDown
//
// with the Failed absorbing state still reaching TornDown. It reports
// whether Teardown ran (false only when Init failed, in which case no
// handle exists).
func (c *Controller) drive(a core.Adapter, i int) (rec core.BenchmarkRecord, tornDown bool) {
	rec = core.BenchmarkRecord{Iteration: i}

	initNoop, loadNoop := false, false
	if np, ok := a.(core.NoopPhaser); ok {
		initNoop, loadNoop = np.NoopPhases()
	}

	var h core.Handle
	us, err := c.recorder.Measure(func() error {
		var initErr error
		h, initErr = a.Init()
		return initErr
	})
	if err != nil {
		cerr := classify(err, core.AllocationFailure)
		c.emitter.Diagnostic("%s: cannot initialize runtime: %v", a.Name(), cerr.Err)
		rec.Err = cerr
		return rec, false
	}
	if !initNoop {
		rec.Timing.InitUS = us
	}

	// Teardown is unconditional on every path once Init has succeeded.
	defer a.Teardown(h)
	tornDown = true

	var p core.Program
	us, err = c.recorder.Measure(func() error {
		var loadErr error
		p, loadErr = a.Load(h, c.workload)
		return loadErr
	})
	if err != nil {
		cerr := classify(err, core.ParseError)
		c.emitter.Diagnostic("%s: load failed: %v", a.Name(), cerr.Err)
		rec.Err = cerr
		return rec, tornDown
	}
	if !loadNoop {
		rec.Timing.LoadUS = us
	}

	var v core.Value
	us, err = c.recorder.Measure(func() error {
		var execErr error
		v, execErr = a.Execute(h, p)
		return execErr
	})
	rec.Timing.ExecUS = us
	if err != nil {
		cerr := classify(err, core.RuntimeError)
		c.emitter.Diagnostic("%s: execution failed: %v", a.Name(), cerr.Err)
		rec.Err = cerr
		return rec, tornDown
	}

	correct, verr := Verify(v)
	if verr != nil {
		c.emitter.Diagnostic("Warning: unexpected return value type from %s workload", a.Name())
		rec.Err = verr
	}
	rec.Correct = correct

	return rec, tornDown
}

// dispatch forwards the record to optional sinks. Sink failures are logged
// and otherwise ignored: telemetry must never change benchmark behavior.
func (c *Controller) dispatch(rec core.BenchmarkRecord) {
	for _, s := range c.sinks {
		if err := s.Record(rec); err != nil {
			log.Printf("harness: record sink failed: %v", err)
		}
	}
}

// classify ensures every phase error carries an ErrorKind. Adapters already
// classify their own errors; anything unclassified gets the phase's default
// kind.
func classify(err error, kind core.ErrorKind) *core.Error {
	if cerr, ok := err.(*core.Error); ok {
		return cerr
	}
	return core.NewError(kind, err)
}
