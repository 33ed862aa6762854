package ring

import (
	"math/rand"
	"testing"
)

type fakeMatrixSink struct {
	header []int
	rows   [][]float64
}

func (f *fakeMatrixSink) WriteHeader(heights []int) error {
	f.header = append([]int(nil), heights...)
	return nil
}
func (f *fakeMatrixSink) WriteRow(values []float64) error {
	f.rows = append(f.rows, append([]float64(nil), values...))
	return nil
}
func (f *fakeMatrixSink) Close() error { return nil }

type nopOpsSink struct{}

func (nopOpsSink) WriteHeader() error          { return nil }
func (nopOpsSink) WriteRecord(OpsRecord) error { return nil }
func (nopOpsSink) Close() error                { return nil }

type nopVTFSink struct{}

func (nopVTFSink) WriteTopology(*System) error { return nil }
func (nopVTFSink) WriteFrame(*System) error    { return nil }
func (nopVTFSink) Close() error                { return nil }

func usTestSystem(t *testing.T) *System {
	p := SystemParams{
		Ks: 1e-6, Kd: 1e-6, T: 300, Delta: 5.4e-9, Xc: 1e-6, EI: 6.9e-26, Lf: 1e-6,
		SitesPerFilament: 4, NumFilaments: 2, NumScaffolds: 2,
		MinHeight: 3, MaxHeight: 6, // 4 heights, binwidth 1 -> 4 bins
		RadiusMoveFreq: 0.2, MaxBiasDiff: 1.0, Mult: 1.0,
	}
	s, err := NewSystemWithStartup(p, 2, 3)
	if err != nil {
		t.Fatalf("unexpected startup error: %v", err)
	}
	return s
}

func TestRunUS_WritesHeightHeaderOnEveryMatrixSink(t *testing.T) {
	s := usTestSystem(t)
	rng := rand.New(rand.NewSource(3))
	sim := SimParams{Steps: 0, WriteInterval: 1, BinWidth: 1, StartIter: 1, EndIter: 1}

	counts, freqs, biasesOut := &fakeMatrixSink{}, &fakeMatrixSink{}, &fakeMatrixSink{}
	opsFactory := func(int) (OpsSink, error) { return nopOpsSink{}, nil }
	vtfFactory := func(int) (VTFSink, error) { return nopVTFSink{}, nil }

	if _, err := RunUS(s, sim, rng, nil, nil, counts, freqs, biasesOut, nil, opsFactory, vtfFactory, nil); err != nil {
		t.Fatalf("RunUS returned an error: %v", err)
	}

	want := []int{3, 4, 5, 6}
	for name, sink := range map[string]*fakeMatrixSink{"counts": counts, "freqs": freqs, "biases": biasesOut} {
		if len(sink.header) != len(want) {
			t.Fatalf("%s header = %v, want %v", name, sink.header, want)
		}
		for i := range want {
			if sink.header[i] != want[i] {
				t.Errorf("%s header[%d] = %d, want %d", name, i, sink.header[i], want[i])
			}
		}
	}
}

func TestRunUS_ZeroStepsProducesAllZeroCountsAndUniformNegativeClamp(t *testing.T) {
	s := usTestSystem(t)
	rng := rand.New(rand.NewSource(3))
	sim := SimParams{Steps: 0, WriteInterval: 1, BinWidth: 1, StartIter: 1, EndIter: 1}
	s.Params.MaxBiasDiff = 2.0

	counts, freqs, biasesOut := &fakeMatrixSink{}, &fakeMatrixSink{}, &fakeMatrixSink{}
	opsFactory := func(int) (OpsSink, error) { return nopOpsSink{}, nil }
	vtfFactory := func(int) (VTFSink, error) { return nopVTFSink{}, nil }

	if _, err := RunUS(s, sim, rng, nil, nil, counts, freqs, biasesOut, nil, opsFactory, vtfFactory, nil); err != nil {
		t.Fatalf("RunUS returned an error: %v", err)
	}

	if len(counts.rows) != 1 {
		t.Fatalf("expected exactly one counts row, got %d", len(counts.rows))
	}
	for i, c := range counts.rows[0] {
		if c != 0 {
			t.Errorf("counts row[%d] = %v, want 0 (no MC steps were run)", i, c)
		}
	}

	clamp := s.Params.MaxBiasDiff * KB * s.Params.T
	for i, e := range biasesOut.rows[0] {
		if e > -clamp*0.999999999 || e < -clamp*1.000000001 {
			t.Errorf("biases row[%d] = %v, want -%v (every bin is empty)", i, e, clamp)
		}
	}
	for i, f := range freqs.rows[0] {
		if f != 0 {
			t.Errorf("freqs row[%d] = %v, want 0 (sum of counts is zero)", i, f)
		}
	}
}

func TestRunUS_CapturesCountsBeforeIterativeUpdateZeroesThem(t *testing.T) {
	s := usTestSystem(t)
	rng := rand.New(rand.NewSource(3))
	// Run bumps the bias histogram once per MC step, so one step per
	// iteration gives exactly one bias increment.
	sim := SimParams{Steps: 1, WriteInterval: 1, BinWidth: 1, StartIter: 1, EndIter: 1}

	counts := &fakeMatrixSink{}
	opsFactory := func(int) (OpsSink, error) { return nopOpsSink{}, nil }
	vtfFactory := func(int) (VTFSink, error) { return nopVTFSink{}, nil }

	if _, err := RunUS(s, sim, rng, nil, nil, counts, nil, nil, nil, opsFactory, vtfFactory, nil); err != nil {
		t.Fatalf("RunUS returned an error: %v", err)
	}

	total := 0.0
	for _, c := range counts.rows[0] {
		total += c
	}
	if total != 1 {
		t.Errorf("counts row sums to %v, want 1 (one MC step, captured before the update zeroes it)", total)
	}
}

func TestRunUS_PublishReceivesEveryIterationsRecordTaggedWithIter(t *testing.T) {
	s := usTestSystem(t)
	rng := rand.New(rand.NewSource(3))
	sim := SimParams{Steps: 1, WriteInterval: 1, BinWidth: 1, StartIter: 1, EndIter: 2}

	opsFactory := func(int) (OpsSink, error) { return nopOpsSink{}, nil }
	vtfFactory := func(int) (VTFSink, error) { return nopVTFSink{}, nil }

	var gotIters []int
	publish := func(iter int, rec OpsRecord) { gotIters = append(gotIters, iter) }

	if _, err := RunUS(s, sim, rng, nil, nil, nil, nil, nil, nil, opsFactory, vtfFactory, publish); err != nil {
		t.Fatalf("RunUS returned an error: %v", err)
	}

	if len(gotIters) != 2 || gotIters[0] != 1 || gotIters[1] != 2 {
		t.Errorf("publish saw iterations %v, want [1 2]", gotIters)
	}
}
