package ring

import "fmt"

// SystemParams is the immutable bundle of physical and lattice
// parameters for a run, analogous in shape to a schema config: build it
// once, validate it once, then hand it to every piece of the core.
type SystemParams struct {
	Ks    float64 // dissociation constant, scaffold-scaffold
	Kd    float64 // dissociation constant
	T     float64 // temperature, kelvin
	Delta float64 // lattice spacing, meters
	Xc    float64 // crosslinker concentration
	EI    float64 // bending rigidity
	Lf    float64 // filament length, meters

	SitesPerFilament int // lf in spec.md notation
	NumFilaments     int // Nfil
	NumScaffolds     int // Nsca

	MinHeight int
	MaxHeight int

	RadiusMoveFreq float64 // probability of attempting a radius move
	MaxBiasDiff    float64 // clamp, in units of kB*T, on US bias updates
	Mult           float64 // Metropolis prefactor; spec keeps this at 1
}

// Validate checks the startup preconditions from spec §4.9/§7: Nsca and
// lf must both be even, and the height bounds must be sane. It does not
// validate move-time conditions (those are never errors, only rejected
// moves).
func (p SystemParams) Validate() error {
	err := &ConfigError{}

	if p.NumScaffolds%2 != 0 {
		err.Add(fmt.Sprintf("Nsca must be even, got %d", p.NumScaffolds))
	}
	if p.SitesPerFilament%2 != 0 {
		err.Add(fmt.Sprintf("lf must be even, got %d", p.SitesPerFilament))
	}
	if p.NumScaffolds > p.NumFilaments {
		err.Add(fmt.Sprintf("Nsca (%d) cannot exceed Nfil (%d)", p.NumScaffolds, p.NumFilaments))
	}
	if p.MinHeight > p.MaxHeight {
		err.Add(fmt.Sprintf("min_height (%d) must not exceed max_height (%d)", p.MinHeight, p.MaxHeight))
	}
	if p.RadiusMoveFreq < 0 || p.RadiusMoveFreq > 1 {
		err.Add(fmt.Sprintf("radius_move_freq must be in [0,1], got %g", p.RadiusMoveFreq))
	}
	if p.Mult == 0 {
		err.Add("mult must not be zero")
	}

	if err.HasIssues() {
		return err
	}
	return nil
}

// System owns every filament, the lattice, and the last observable total
// energy (read-only bookkeeping; nothing consults it to decide a move).
type System struct {
	Params    SystemParams
	Lattice   *Lattice
	Filaments []*Filament // Filaments[i] has Index == i+1
	Energy    float64
}

// NewSystem builds an (uninitialized) System: filaments must still be
// placed by the startup config before it is usable.
func NewSystem(params SystemParams, startHeight int) (*System, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	lat := NewLattice(params.Delta, params.MinHeight, params.MaxHeight, startHeight)
	return &System{
		Params:  params,
		Lattice: lat,
	}, nil
}

// Filament looks up a filament by its 1-based index.
func (s *System) Filament(index int) *Filament {
	return s.Filaments[index-1]
}

// UseCurrent flips the whole system (lattice + every filament) to the
// current view.
func (s *System) UseCurrent() {
	s.Lattice.UseCurrent()
	for _, f := range s.Filaments {
		f.UseCurrent()
	}
}

// UseTrial flips the whole system to the trial view.
func (s *System) UseTrial() {
	s.Lattice.UseTrial()
	for _, f := range s.Filaments {
		f.UseTrial()
	}
}

// AcceptTrialSystem promotes every filament's trial coordinates into
// current and copies the trial occupancy map and height into current. Used when a radius move (which touches every filament) is
// accepted.
func (s *System) AcceptTrialSystem() {
	for _, f := range s.Filaments {
		f.AcceptTrial()
	}
	s.Lattice.AcceptTrialOccupancy()
}

// AcceptCurrentSystem reverts every filament's trial coordinates back to
// current and restores the trial occupancy from current. Used when a
// radius move is rejected.
func (s *System) AcceptCurrentSystem() {
	for _, f := range s.Filaments {
		f.AcceptCurrent()
	}
	s.Lattice.AcceptCurrentOccupancy()
}

// Recenter translates every filament uniformly in y so that filament 1's
// first site lies at y == 0, then rebuilds occupancy from scratch. Run
// once before a driver loop starts.
func (s *System) Recenter() {
	if len(s.Filaments) == 0 {
		return
	}
	ref := s.Filaments[0]
	shift := -ref.CurrentCoors[0].Y
	if shift == 0 {
		return
	}
	height := s.Lattice.Height()
	for _, f := range s.Filaments {
		for i, c := range f.CurrentCoors {
			c.Y = WrapAt(c.Y+shift, height)
			f.CurrentCoors[i] = c
			f.TrialCoors[i] = c
		}
	}
	s.Lattice.RebuildOccupancy(s.Filaments)
}
