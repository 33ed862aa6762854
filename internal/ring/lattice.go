package ring

import "math"

// Lattice is a 2D integer grid with an x axis of unbounded extent and a y
// axis periodic with period Height()+1. It carries two full shadow
// occupancy maps, current and trial, plus the flag selecting which one is
// presently observable. Moves mutate the trial occupancy; accepting a
// move promotes trial into current, rejecting it copies current back over
// trial.
type Lattice struct {
	Delta     float64 // lattice spacing, meters
	MinHeight int
	MaxHeight int

	heightCurrent int
	heightTrial   int
	usingCurrent  bool

	occCurrent map[Coord]Occupant
	occTrial   map[Coord]Occupant
}

// NewLattice builds a lattice at the given starting height, with empty
// occupancy maps. Startup config fills the maps afterward.
func NewLattice(delta float64, minHeight, maxHeight, startHeight int) *Lattice {
	return &Lattice{
		Delta:         delta,
		MinHeight:     minHeight,
		MaxHeight:     maxHeight,
		heightCurrent: startHeight,
		heightTrial:   startHeight,
		usingCurrent:  true,
		occCurrent:    make(map[Coord]Occupant),
		occTrial:      make(map[Coord]Occupant),
	}
}

// Height returns the observable height: the current one if UseCurrent is
// active, the trial one otherwise.
func (l *Lattice) Height() int {
	if l.usingCurrent {
		return l.heightCurrent
	}
	return l.heightTrial
}

// Radius is derived, never cached, so the invariant radius ==
// delta*(H+1)/(2*pi) holds by construction at every observation point.
func (l *Lattice) Radius() float64 {
	return l.Delta * float64(l.Height()+1) / (2 * math.Pi)
}

// UsingCurrent reports which view is active.
func (l *Lattice) UsingCurrent() bool { return l.usingCurrent }

// UseCurrent makes the current view observable.
func (l *Lattice) UseCurrent() { l.usingCurrent = true }

// UseTrial makes the trial view observable.
func (l *Lattice) UseTrial() { l.usingCurrent = false }

// Occupancy returns the active occupancy map (current or trial,
// whichever is observable). Callers must not retain it across a view
// flip.
func (l *Lattice) Occupancy() map[Coord]Occupant {
	if l.usingCurrent {
		return l.occCurrent
	}
	return l.occTrial
}

// SetTrialHeight implements update_radius for the trial view: it mutates
// H_t. Radius is derived, so no separate recompute step is needed.
func (l *Lattice) SetTrialHeight(h int) {
	l.heightTrial = h
}

// SetCurrentHeight mirrors SetTrialHeight for the current view, used when
// a radius move is accepted and promoted.
func (l *Lattice) SetCurrentHeight(h int) {
	l.heightCurrent = h
}

// HeightWithinBounds reports whether h is a legal height.
func (l *Lattice) HeightWithinBounds(h int) bool {
	return h >= l.MinHeight && h <= l.MaxHeight
}

// Wrap normalizes y into [0, Height()] against the active view's height,
// assuming callers only ever displace by at most Height()+1 so a single
// correction suffices.
func (l *Lattice) Wrap(y int) int {
	period := l.Height() + 1
	if y > l.Height() {
		return y - period
	}
	if y < 0 {
		return y + period
	}
	return y
}

// WrapAt is Wrap against an explicit height, used by the connectivity
// oracle and radius move where the relevant height isn't necessarily the
// lattice's own active view.
func WrapAt(y, height int) int {
	period := height + 1
	if y > height {
		return y - period
	}
	if y < 0 {
		return y + period
	}
	return y
}

// Get looks up the occupant of a site in the active view.
func (l *Lattice) Get(c Coord) (Occupant, bool) {
	o, ok := l.Occupancy()[c]
	return o, ok
}

// Insert places an occupant at c in the active view. It reports false
// without mutating anything if the site is already occupied, matching the
// "delete-before-insert" collision discipline the move set relies on.
func (l *Lattice) Insert(c Coord, o Occupant) bool {
	occ := l.Occupancy()
	if _, exists := occ[c]; exists {
		return false
	}
	occ[c] = o
	return true
}

// Delete removes whatever occupies c in the active view, if anything.
func (l *Lattice) Delete(c Coord) {
	delete(l.Occupancy(), c)
}

// RebuildOccupancy replaces both shadow maps wholesale from a full
// filament list. Used at startup and by Recenter.
func (l *Lattice) RebuildOccupancy(filaments []*Filament) {
	occ := make(map[Coord]Occupant, len(filaments))
	for _, f := range filaments {
		for i, c := range f.CurrentCoors {
			occ[c] = Occupant{FilamentIndex: f.Index, SiteIndex: i + 1}
		}
	}
	l.occCurrent = occ
	l.occTrial = copyOccupancy(occ)
}

func copyOccupancy(src map[Coord]Occupant) map[Coord]Occupant {
	dst := make(map[Coord]Occupant, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// AcceptCurrentOccupancy overwrites the trial occupancy map with the
// current one (revert after a rejected move).
func (l *Lattice) AcceptCurrentOccupancy() {
	l.occTrial = copyOccupancy(l.occCurrent)
	l.heightTrial = l.heightCurrent
}

// AcceptTrialOccupancy overwrites the current occupancy map with the
// trial one (promote after an accepted move).
func (l *Lattice) AcceptTrialOccupancy() {
	l.occCurrent = copyOccupancy(l.occTrial)
	l.heightCurrent = l.heightTrial
}
