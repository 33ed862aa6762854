package ring

import "math/rand"

// IterPublishFunc receives the OpsRecord written by iteration iter of
// the umbrella-sampling loop, the same way PublishFunc does for a plain
// Run, plus the iteration number a Frame needs to distinguish one
// iteration's trajectory from another's.
type IterPublishFunc func(iter int, rec OpsRecord)

// RunUS is the umbrella-sampling driver of spec.md §4.8: emit the run
// parameters once, build a fresh Biases table, seed it from a restart
// file, an analytical estimate, or zeros, then for each iteration in
// [sim.StartIter, sim.EndIter] run an inner MC block through its own
// per-iteration ops/vtf sinks, snapshot that iteration's counts, refine
// the biases, and write freqs/biases. It returns the final Biases table.
//
// Any sink argument may be nil except the two factories, which must
// produce a usable sink for every iteration. publish may be nil.
func RunUS(
	s *System,
	sim SimParams,
	rng *rand.Rand,
	logger Logger,
	parms ParmsSink,
	counts, freqs, biasesOut USMatrixSink,
	biasReader BiasReader,
	opsFactory OpsSinkFactory,
	vtfFactory VTFSinkFactory,
	publish IterPublishFunc,
) (*Biases, error) {
	if logger == nil {
		logger = NewNoOpLogger()
	}

	if parms != nil {
		if err := parms.WriteParms(s.Params, sim); err != nil {
			return nil, err
		}
	}

	b := NewBiases(s.Params.MinHeight, s.Params.MaxHeight, sim.BinWidth)

	heights := make([]int, s.Params.MaxHeight-s.Params.MinHeight+1)
	for i := range heights {
		heights[i] = s.Params.MinHeight + i
	}
	for _, sink := range []USMatrixSink{counts, freqs, biasesOut} {
		if sink == nil {
			continue
		}
		if err := sink.WriteHeader(heights); err != nil {
			return nil, err
		}
	}

	switch {
	case biasReader != nil:
		enes, err := biasReader.ReadEnes(sim.RestartIter)
		if err != nil {
			return nil, err
		}
		b.SetEnes(enes)
	case sim.AnalyticalBiases:
		b.SeedAnalytical(s.Params)
	}

	for iter := sim.StartIter; iter <= sim.EndIter; iter++ {
		ops, err := opsFactory(iter)
		if err != nil {
			return nil, err
		}
		vtf, err := vtfFactory(iter)
		if err != nil {
			return nil, err
		}

		iterSim := sim
		if publish != nil {
			it := iter
			iterSim.Publish = func(rec OpsRecord) { publish(it, rec) }
		}

		if err := Run(s, b, iterSim, rng, ops, vtf, logger); err != nil {
			return nil, err
		}
		if err := ops.Close(); err != nil {
			return nil, err
		}
		if err := vtf.Close(); err != nil {
			return nil, err
		}

		if counts != nil {
			if err := counts.WriteRow(append([]float64(nil), b.Counts...)); err != nil {
				return nil, err
			}
		}

		b.IterativeUpdate(s.Params.T, s.Params.MaxBiasDiff)

		if freqs != nil {
			if err := freqs.WriteRow(append([]float64(nil), b.Freqs...)); err != nil {
				return nil, err
			}
		}
		if biasesOut != nil {
			if err := biasesOut.WriteRow(append([]float64(nil), b.Enes...)); err != nil {
				return nil, err
			}
		}

		logger.Infof("us iteration %d/%d complete", iter, sim.EndIter)
	}

	return b, nil
}
