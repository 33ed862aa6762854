package ring

import "math"

// FilamentBendingEnergy is EI*Lf/(2*r^2), identical for every filament
// since all share the ring's one radius.
func FilamentBendingEnergy(p SystemParams, radius float64) float64 {
	return p.EI * p.Lf / (2 * radius * radius)
}

// SystemBendingEnergy sums the per-filament bending energy over every
// filament in the system.
func SystemBendingEnergy(s *System) float64 {
	return float64(s.Params.NumFilaments) * FilamentBendingEnergy(s.Params, s.Lattice.Radius())
}

// OverlapLength counts, over every site of filament index, the occupied
// x-1 and x+1 neighbors belonging to some other filament, without
// de-duplication, and scales by the lattice spacing.
func OverlapLength(s *System, index int) float64 {
	f := s.Filament(index)
	count := 0
	occ := s.Lattice.Occupancy()
	for _, c := range f.Sites() {
		for _, nc := range [2]Coord{{c.X - 1, c.Y}, {c.X + 1, c.Y}} {
			if o, ok := occ[nc]; ok && o.FilamentIndex != index {
				count++
			}
		}
	}
	return s.Params.Delta * float64(count)
}

// FilamentOverlapEnergy is E_ov(L) = -(L*kB*T/delta)*ln(1 + ks^2*Xc /
// (kd*(ks+Xc)^2)) for the overlap length currently carried by filament
// index.
func FilamentOverlapEnergy(s *System, index int) float64 {
	p := s.Params
	l := OverlapLength(s, index)
	inner := 1 + (p.Ks*p.Ks*p.Xc)/(p.Kd*(p.Ks+p.Xc)*(p.Ks+p.Xc))
	return -(l * KB * p.T / p.Delta) * math.Log(inner)
}

// SystemOverlapEnergy sums the per-filament overlap energy over every
// filament and halves it, since each crosslinked pair is counted from
// both sides.
func SystemOverlapEnergy(s *System) float64 {
	total := 0.0
	for _, f := range s.Filaments {
		total += FilamentOverlapEnergy(s, f.Index)
	}
	return total / 2
}

// TotalEnergy is the full system energy: overlap (halved) plus bending
// per filament plus the bias term for the active height.
func TotalEnergy(s *System, b *Biases) float64 {
	e := SystemOverlapEnergy(s) + SystemBendingEnergy(s)
	if b != nil {
		e += b.EneAt(s.Lattice.Height())
	}
	return e
}

// withView runs fn with the system flipped to the requested view, then
// restores whichever view was active on entry.
func withView(s *System, useCurrent bool, fn func() float64) float64 {
	wasCurrent := s.Lattice.UsingCurrent()
	if useCurrent {
		s.UseCurrent()
	} else {
		s.UseTrial()
	}
	v := fn()
	if wasCurrent {
		s.UseCurrent()
	} else {
		s.UseTrial()
	}
	return v
}

// DeltaEnergyTranslation evaluates only the moved filament's overlap and
// bending energy, under the current then the trial view, and returns
// trial minus current. The system's active view is restored afterward.
func DeltaEnergyTranslation(s *System, index int) float64 {
	perFilament := func() float64 {
		return FilamentOverlapEnergy(s, index) + FilamentBendingEnergy(s.Params, s.Lattice.Radius())
	}
	before := withView(s, true, perFilament)
	after := withView(s, false, perFilament)
	return after - before
}

// DeltaEnergyRadius evaluates the total energy (with bias) under the
// current then trial view and returns trial minus current. The system's
// active view is restored afterward.
func DeltaEnergyRadius(s *System, b *Biases) float64 {
	total := func() float64 { return TotalEnergy(s, b) }
	before := withView(s, true, total)
	after := withView(s, false, total)
	return after - before
}
