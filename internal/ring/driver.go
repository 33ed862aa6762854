package ring

import "math/rand"

// MoveCounters tallies attempts and acceptances per move kind over a run.
type MoveCounters struct {
	Attempts [2]int64
	Accepts  [2]int64
}

// Run is the MC step loop of spec.md §4.7: recenter once, then for
// `sim.Steps` iterations select and apply a move, tally it, and bump the
// bias histogram. Every WriteInterval steps it re-verifies connectivity
// in consistency mode, recomputes the unbiased total energy, and emits
// one row to ops and one frame to vtf. Either sink may be nil.
func Run(s *System, b *Biases, sim SimParams, rng *rand.Rand, ops OpsSink, vtf VTFSink, logger Logger) error {
	if logger == nil {
		logger = NewNoOpLogger()
	}

	s.Recenter()

	if ops != nil {
		if err := ops.WriteHeader(); err != nil {
			return err
		}
	}
	if vtf != nil {
		if err := vtf.WriteTopology(s); err != nil {
			return err
		}
	}

	var counters MoveCounters

	for step := 1; step <= sim.Steps; step++ {
		kind, accepted := SelectAndApplyMove(s, b, rng)
		counters.Attempts[kind]++
		if accepted {
			counters.Accepts[kind]++
		}
		if b != nil {
			b.IncrementCount(s.Lattice.Height())
		}

		if sim.WriteInterval <= 0 || step%sim.WriteInterval != 0 {
			continue
		}

		if !RingAndSystemConnected(s, true) {
			logger.Warnf("connectivity check failed at step %d", step)
		}
		s.Energy = TotalEnergy(s, nil)

		rec := OpsRecord{
			Step:   step,
			Energy: s.Energy,
			Height: s.Lattice.Height(),
			Radius: s.Lattice.Radius(),
		}
		if ops != nil {
			if err := ops.WriteRecord(rec); err != nil {
				return err
			}
		}
		if sim.Publish != nil {
			sim.Publish(rec)
		}
		if vtf != nil {
			if err := vtf.WriteFrame(s); err != nil {
				return err
			}
		}
	}

	logger.Infof(
		"mc run complete: steps=%d translation=%d/%d radius=%d/%d",
		sim.Steps,
		counters.Accepts[MoveTranslation], counters.Attempts[MoveTranslation],
		counters.Accepts[MoveRadius], counters.Attempts[MoveRadius],
	)
	return nil
}
