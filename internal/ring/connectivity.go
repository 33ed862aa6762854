package ring

import "fmt"

// normalizedStep returns the signed y-displacement from `from` to `to`
// once the periodic wrap is undone, assuming the two sites are at most
// one lattice spacing apart in y. For two lattice-adjacent sites this is
// always +1 or -1.
func normalizedStep(from, to Coord, period int) int {
	raw := to.Y - from.Y
	if raw > period/2 {
		raw -= period
	} else if raw < -period/2 {
		raw += period
	}
	return raw
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// FilamentsContiguous checks invariant 3: every filament's consecutive
// sites are exactly one lattice spacing apart in y (mod Height()+1), at
// the same x.
func FilamentsContiguous(s *System) bool {
	period := s.Lattice.Height() + 1
	for _, f := range s.Filaments {
		sites := f.Sites()
		for i := 1; i < len(sites); i++ {
			if sites[i].X != sites[0].X {
				return false
			}
			if normalizedStep(sites[i-1], sites[i], period) != 1 {
				return false
			}
		}
	}
	return true
}

// pathFrame is one stack frame of the connectivity DFS: the filament
// being explored and the lifted (unwrapped) y coordinate of each of its
// sites relative to the search's starting point.
type pathFrame struct {
	filIdx    int
	liftedArr []int // 1-indexed by site number
}

type connectivitySearch struct {
	path          []pathFrame
	connected     map[int]bool
	searched      map[int]bool
	nscaCandidate int
	ringContig    bool
	nfilTarget    int
	nscaTarget    int
	period        int
}

func (st *connectivitySearch) done() bool {
	return st.ringContig && len(st.connected) == st.nfilTarget && st.nscaCandidate == st.nscaTarget
}

func (st *connectivitySearch) pathIndex(filIdx int) (int, bool) {
	for idx, fr := range st.path {
		if fr.filIdx == filIdx {
			return idx, true
		}
	}
	return 0, false
}

// explore is the recursive step of the path-stack DFS described in
// spec.md §4.4: it scans every site of filIdx (starting at entrySite,
// direction -1 to site 1, then direction +1 to site lf), recursing into
// any unsearched neighbor filament and checking every neighbor that is
// already an ancestor on the path for a ring closure.
func (st *connectivitySearch) explore(s *System, filIdx, entrySite, liftedEntry int) {
	if st.done() {
		return
	}
	st.connected[filIdx] = true

	sites := s.Filament(filIdx).Sites()
	lf := len(sites)

	liftedArr := make([]int, lf+1)
	liftedArr[entrySite] = liftedEntry
	for i := entrySite - 1; i >= 1; i-- {
		liftedArr[i] = liftedArr[i+1] + normalizedStep(sites[i], sites[i-1], st.period)
	}
	for i := entrySite + 1; i <= lf; i++ {
		liftedArr[i] = liftedArr[i-1] + normalizedStep(sites[i-2], sites[i-1], st.period)
	}

	st.path = append(st.path, pathFrame{filIdx: filIdx, liftedArr: liftedArr})

	order := make([]int, 0, lf)
	for i := entrySite; i >= 1; i-- {
		order = append(order, i)
	}
	for i := entrySite + 1; i <= lf; i++ {
		order = append(order, i)
	}

	occ := s.Lattice.Occupancy()
	for _, i := range order {
		if st.done() {
			break
		}
		c := sites[i-1]
		for _, nc := range [2]Coord{{c.X - 1, c.Y}, {c.X + 1, c.Y}} {
			o, ok := occ[nc]
			if !ok || o.FilamentIndex == filIdx {
				continue
			}
			if idx, onPath := st.pathIndex(o.FilamentIndex); onPath {
				ancestorLifted := st.path[idx].liftedArr[o.SiteIndex]
				diff := liftedArr[i] - ancestorLifted
				if absInt(diff) == st.period {
					st.ringContig = true
					depth := len(st.path) - 1 - idx
					if depth+1 < st.nscaCandidate {
						st.nscaCandidate = depth + 1
					}
				}
				continue
			}
			if st.searched[o.FilamentIndex] {
				continue
			}
			st.explore(s, o.FilamentIndex, o.SiteIndex, liftedArr[i])
			if st.done() {
				break
			}
		}
	}

	st.path = st.path[:len(st.path)-1]
	st.searched[filIdx] = true
}

func runConnectivitySearch(s *System, startFilament int) connectivitySearch {
	st := connectivitySearch{
		connected: make(map[int]bool),
		searched:  make(map[int]bool),
		// Seeded to Nfil, an upper bound, per spec.md §4.4's edge case and
		// §9's note that this is deliberately Nfil, not Nsca.
		nscaCandidate: s.Params.NumFilaments,
		nfilTarget:    s.Params.NumFilaments,
		nscaTarget:    s.Params.NumScaffolds,
		period:        s.Lattice.Height() + 1,
	}
	st.explore(s, startFilament, 1, 0)
	return st
}

// RingAndSystemConnected is the top-level connectivity oracle: true only
// if the filaments are all mutually connected via shared sites, a cycle
// closes around the periodic axis, and that cycle passes through exactly
// NumScaffolds filaments. In consistency mode it repeats the search from
// every filament as a starting point and panics if they disagree, per
// spec.md §7's "invariant violation" handling.
func RingAndSystemConnected(s *System, consistency bool) bool {
	answer := func(st connectivitySearch) bool {
		return st.ringContig && len(st.connected) == st.nfilTarget && st.nscaCandidate == st.nscaTarget
	}

	result := answer(runConnectivitySearch(s, 1))
	if !consistency {
		return result
	}

	for start := 2; start <= s.Params.NumFilaments; start++ {
		if answer(runConnectivitySearch(s, start)) != result {
			panic(fmt.Sprintf("ring: connectivity consistency check disagreed starting from filament %d", start))
		}
	}
	return result
}
