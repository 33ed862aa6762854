package ring

import (
	"math/rand"
	"testing"
)

func driverTestSystem(t *testing.T) *System {
	p := SystemParams{
		Ks: 1e-6, Kd: 1e-6, T: 300, Delta: 5.4e-9, Xc: 1e-6, EI: 6.9e-26, Lf: 1e-6,
		SitesPerFilament: 4, NumFilaments: 2, NumScaffolds: 2,
		MinHeight: 3, MaxHeight: 10,
		RadiusMoveFreq: 0.2, MaxBiasDiff: 1.0, Mult: 1.0,
	}
	s, err := NewSystemWithStartup(p, 2, 3)
	if err != nil {
		t.Fatalf("unexpected startup error: %v", err)
	}
	return s
}

func TestRun_LeavesEveryFilamentAtItsMoveBoundaryInvariant(t *testing.T) {
	s := driverTestSystem(t)
	rng := rand.New(rand.NewSource(7))
	sim := SimParams{Steps: 20, WriteInterval: 1000} // interval never fires

	if err := Run(s, nil, sim, rng, nil, nil, nil); err != nil {
		t.Fatalf("Run returned an error: %v", err)
	}

	for _, f := range s.Filaments {
		if !f.Equal() {
			t.Errorf("filament %d has diverged current/trial coordinates after the run", f.Index)
		}
	}
	if !s.Lattice.UsingCurrent() {
		t.Error("Run must leave the system on the current view")
	}
}

func TestRun_ZeroStepsStillWritesHeaderAndTopology(t *testing.T) {
	s := driverTestSystem(t)
	rng := rand.New(rand.NewSource(1))
	sim := SimParams{Steps: 0, WriteInterval: 1}

	headerCalls, topologyCalls := 0, 0
	ops := &countingOpsSink{onHeader: func() { headerCalls++ }}
	vtf := &countingVTFSink{onTopology: func() { topologyCalls++ }}

	if err := Run(s, nil, sim, rng, ops, vtf, nil); err != nil {
		t.Fatalf("Run returned an error: %v", err)
	}
	if headerCalls != 1 {
		t.Errorf("WriteHeader called %d times, want 1", headerCalls)
	}
	if topologyCalls != 1 {
		t.Errorf("WriteTopology called %d times, want 1", topologyCalls)
	}
	if ops.records != 0 {
		t.Errorf("zero steps must write zero ops records, got %d", ops.records)
	}
}

type countingOpsSink struct {
	onHeader func()
	records  int
}

func (c *countingOpsSink) WriteHeader() error {
	if c.onHeader != nil {
		c.onHeader()
	}
	return nil
}
func (c *countingOpsSink) WriteRecord(OpsRecord) error { c.records++; return nil }
func (c *countingOpsSink) Close() error                { return nil }

type countingVTFSink struct {
	onTopology func()
}

func (c *countingVTFSink) WriteTopology(*System) error {
	if c.onTopology != nil {
		c.onTopology()
	}
	return nil
}
func (c *countingVTFSink) WriteFrame(*System) error { return nil }
func (c *countingVTFSink) Close() error             { return nil }
