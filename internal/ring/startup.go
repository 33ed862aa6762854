package ring

// BuildStartupConfiguration implements the deterministic uniform-overlap
// initial placement of spec.md §4.9: filaments are laid out in vertical
// stripes along x, Nsca/2 per column, even columns starting at y=0, odd
// columns offset by lf-overlap, stepping y by lf-2*overlap between
// filaments within a column (wrapping), until Nfil filaments have been
// placed. Indices are assigned 1..Nfil in placement order.
//
// Precondition (spec.md §7): Nsca and lf must both be even.
func BuildStartupConfiguration(p SystemParams, overlap, startHeight int) ([]*Filament, error) {
	if p.NumScaffolds%2 != 0 || p.SitesPerFilament%2 != 0 {
		err := &ConfigError{}
		err.Add("uniform-overlap startup requires Nsca and lf to both be even")
		return nil, err
	}

	halfNsca := p.NumScaffolds / 2
	filaments := make([]*Filament, 0, p.NumFilaments)

	index := 1
	for x := 0; index <= p.NumFilaments; x++ {
		y0 := 0
		if x%2 != 0 {
			y0 = p.SitesPerFilament - overlap
		}
		for k := 0; k < halfNsca && index <= p.NumFilaments; k++ {
			y := WrapAt(y0+k*(p.SitesPerFilament-2*overlap), startHeight)
			sites := make([]Coord, p.SitesPerFilament)
			for i := 0; i < p.SitesPerFilament; i++ {
				sites[i] = Coord{X: x, Y: WrapAt(y+i, startHeight)}
			}
			filaments = append(filaments, NewFilament(index, sites))
			index++
		}
	}

	return filaments, nil
}

// NewSystemWithStartup builds a System and places its filaments with
// BuildStartupConfiguration, then recenters and rebuilds occupancy so
// the invariants of spec.md §3 hold before the first move.
func NewSystemWithStartup(p SystemParams, overlap, startHeight int) (*System, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	filaments, err := BuildStartupConfiguration(p, overlap, startHeight)
	if err != nil {
		return nil, err
	}

	s := &System{
		Params:    p,
		Lattice:   NewLattice(p.Delta, p.MinHeight, p.MaxHeight, startHeight),
		Filaments: filaments,
	}
	s.Lattice.RebuildOccupancy(filaments)
	s.Recenter()
	return s, nil
}
