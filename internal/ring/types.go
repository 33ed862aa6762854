// Package ring implements the Monte Carlo core for a ring assembly of
// semi-flexible filaments on a periodic cylindrical lattice: the lattice
// and filament data model, the energy function, the move set, the
// connectivity oracle, and the umbrella-sampling bias loop.
package ring

// KB is the Boltzmann constant in joules per kelvin.
const KB = 1.380649e-23

// Coord is a point on the 2D lattice. X is unbounded; Y is periodic with
// period Height+1 once wrapped through a Lattice.
type Coord struct {
	X, Y int
}

// Occupant identifies which filament site sits at a lattice Coord.
type Occupant struct {
	FilamentIndex int
	SiteIndex     int // 1-based
}
