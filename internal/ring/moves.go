package ring

import (
	"math"
	"math/rand"
)

// metropolisAccept implements p = min(1, mult*exp(-delta/(kB*T))),
// accepting if p == 1 or p > U(0,1).
func metropolisAccept(rng *rand.Rand, deltaEnergy, mult, t float64) bool {
	p := mult * math.Exp(-deltaEnergy/(KB*t))
	if p >= 1 {
		return true
	}
	return p > rng.Float64()
}

// splitPoint returns the largest site index i < lf at which sites[i-1].Y
// equals height, or 0 if the filament never reaches that height.
func splitPoint(sites []Coord, height int) int {
	sp := 0
	for i := 1; i < len(sites); i++ {
		if sites[i-1].Y == height {
			sp = i
		}
	}
	return sp
}

// TranslationMove attempts to shift a random non-reference filament by
// (0, +-1). It handles its own collision and connectivity rejection
// internally and never returns an error (spec.md §7): a rejected move is
// simply `false`.
func TranslationMove(s *System, b *Biases, rng *rand.Rand) bool {
	idx := 2 + rng.Intn(s.Params.NumFilaments-1)
	dy := 1
	if rng.Float64() < 0.5 {
		dy = -1
	}

	s.UseTrial()
	f := s.Filament(idx)
	height := s.Lattice.Height()
	oldSites := append([]Coord(nil), f.Sites()...)

	for _, c := range oldSites {
		s.Lattice.Delete(c)
	}

	ok := true
	for i, c := range oldSites {
		nc := Coord{X: c.X, Y: WrapAt(c.Y+dy, height)}
		if !s.Lattice.Insert(nc, Occupant{FilamentIndex: idx, SiteIndex: i + 1}) {
			ok = false
			break
		}
		f.SetSite(i, nc)
	}

	if ok && !RingAndSystemConnected(s, false) {
		ok = false
	}

	if !ok {
		for i, c := range oldSites {
			f.SetSite(i, c)
		}
		s.Lattice.AcceptCurrentOccupancy()
		s.UseCurrent()
		return false
	}

	delta := DeltaEnergyTranslation(s, idx)
	accepted := metropolisAccept(rng, delta, s.Params.Mult, s.Params.T)
	if accepted {
		f.AcceptTrial()
		s.Lattice.AcceptTrialOccupancy()
	} else {
		f.AcceptCurrent()
		s.Lattice.AcceptCurrentOccupancy()
	}
	s.UseCurrent()
	return accepted
}

// RadiusMove attempts to grow or shrink the ring by one lattice unit,
// shifting each filament's pre-seam prefix per spec.md §4.5. Like
// TranslationMove, rejection is a plain `false`, never an error.
func RadiusMove(s *System, b *Biases, rng *rand.Rand) bool {
	dir := 1
	if rng.Float64() < 0.5 {
		dir = -1
	}

	newHeight := s.Lattice.Height() + dir
	if !s.Lattice.HeightWithinBounds(newHeight) {
		return false
	}

	s.UseTrial()
	height := s.Lattice.Height()

	ok := true
	for _, f := range s.Filaments {
		sites := f.Sites()
		sp := splitPoint(sites, height)
		if sp == 0 {
			continue
		}
		old := append([]Coord(nil), sites[:sp]...)
		for _, c := range old {
			s.Lattice.Delete(c)
		}
		for i, c := range old {
			nc := Coord{X: c.X, Y: WrapAt(c.Y+dir, newHeight)}
			if !s.Lattice.Insert(nc, Occupant{FilamentIndex: f.Index, SiteIndex: i + 1}) {
				ok = false
				break
			}
			f.SetSite(i, nc)
		}
		if !ok {
			break
		}
	}

	if !ok {
		s.AcceptCurrentSystem()
		s.UseCurrent()
		return false
	}

	s.Lattice.SetTrialHeight(newHeight)

	if !FilamentsContiguous(s) {
		s.AcceptCurrentSystem()
		s.UseCurrent()
		return false
	}

	if dir == 1 && !RingAndSystemConnected(s, false) {
		s.AcceptCurrentSystem()
		s.UseCurrent()
		return false
	}

	delta := DeltaEnergyRadius(s, b)
	accepted := metropolisAccept(rng, delta, s.Params.Mult, s.Params.T)
	if accepted {
		s.AcceptTrialSystem()
	} else {
		s.AcceptCurrentSystem()
	}
	s.UseCurrent()
	return accepted
}

// MoveKind identifies which move a step attempted.
type MoveKind int

const (
	MoveTranslation MoveKind = iota
	MoveRadius
)

func (k MoveKind) String() string {
	if k == MoveRadius {
		return "radius"
	}
	return "translation"
}

// SelectAndApplyMove picks translation or radius per
// Params.RadiusMoveFreq, applies it, and reports which kind was
// attempted and whether it was accepted.
func SelectAndApplyMove(s *System, b *Biases, rng *rand.Rand) (MoveKind, bool) {
	if rng.Float64() < s.Params.RadiusMoveFreq {
		return MoveRadius, RadiusMove(s, b, rng)
	}
	return MoveTranslation, TranslationMove(s, b, rng)
}
