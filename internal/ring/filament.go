package ring

// Filament is an ordered sequence of lf lattice sites with a stable
// index in [1..Nfil]. Sites are contiguous along y modulo Height()+1.
// CurrentCoors/TrialCoors are the two shadow copies moves read and write;
// UsingCurrent selects which one Sites() returns.
type Filament struct {
	Index        int
	CurrentCoors []Coord
	TrialCoors   []Coord
	UsingCurrent bool
}

// NewFilament creates a filament at the given sites. Both shadow copies
// start out equal, as required at every move boundary.
func NewFilament(index int, sites []Coord) *Filament {
	cur := make([]Coord, len(sites))
	copy(cur, sites)
	trial := make([]Coord, len(sites))
	copy(trial, sites)
	return &Filament{
		Index:        index,
		CurrentCoors: cur,
		TrialCoors:   trial,
		UsingCurrent: true,
	}
}

// Len returns lf, the fixed number of sites.
func (f *Filament) Len() int { return len(f.CurrentCoors) }

// Sites returns the active coordinate slice (current or trial).
func (f *Filament) Sites() []Coord {
	if f.UsingCurrent {
		return f.CurrentCoors
	}
	return f.TrialCoors
}

// SetSite overwrites the active coordinate slice in place at index i
// (0-based).
func (f *Filament) SetSite(i int, c Coord) {
	if f.UsingCurrent {
		f.CurrentCoors[i] = c
	} else {
		f.TrialCoors[i] = c
	}
}

// UseCurrent makes the current shadow copy observable.
func (f *Filament) UseCurrent() { f.UsingCurrent = true }

// UseTrial makes the trial shadow copy observable.
func (f *Filament) UseTrial() { f.UsingCurrent = false }

// AcceptTrial copies the trial coordinates into current (promote on
// accept).
func (f *Filament) AcceptTrial() {
	copy(f.CurrentCoors, f.TrialCoors)
}

// AcceptCurrent copies the current coordinates back over trial (revert on
// reject).
func (f *Filament) AcceptCurrent() {
	copy(f.TrialCoors, f.CurrentCoors)
}

// Equal reports whether the two shadow copies hold identical coordinates,
// the invariant that must hold at every move boundary.
func (f *Filament) Equal() bool {
	if len(f.CurrentCoors) != len(f.TrialCoors) {
		return false
	}
	for i := range f.CurrentCoors {
		if f.CurrentCoors[i] != f.TrialCoors[i] {
			return false
		}
	}
	return true
}
