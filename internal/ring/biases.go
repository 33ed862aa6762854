package ring

import "math"

// Biases holds the height->bin mapping and the four parallel per-bin
// arrays (counts, freqs, probs, enes) umbrella sampling refines over
// successive iterations.
type Biases struct {
	NumBins   int
	BinWidth  int
	MinHeight int
	MaxHeight int
	Barriers  []int // numbins-1 entries, strictly ascending

	Counts []float64
	Freqs  []float64
	Probs  []float64
	Enes   []float64

	binSize int
}

// NewBiases builds an all-zero bias table. numbins = (maxHeight-minHeight+1)
// / binwidth; barriers sit at evenly spaced offsets of binsize from
// minHeight, where binsize = (maxHeight-minHeight+1) / numbins.
func NewBiases(minHeight, maxHeight, binwidth int) *Biases {
	span := maxHeight - minHeight + 1
	numbins := span / binwidth
	if numbins < 1 {
		numbins = 1
	}
	binsize := span / numbins

	barriers := make([]int, 0, numbins-1)
	for i := 1; i < numbins; i++ {
		barriers = append(barriers, minHeight+binsize*i)
	}

	return &Biases{
		NumBins:   numbins,
		BinWidth:  binwidth,
		MinHeight: minHeight,
		MaxHeight: maxHeight,
		Barriers:  barriers,
		binSize:   binsize,
		Counts:    make([]float64, numbins),
		Freqs:     make([]float64, numbins),
		Probs:     make([]float64, numbins),
		Enes:      make([]float64, numbins),
	}
}

// Bin returns the 1-based bin index of height h: the smallest i with
// h < Barriers[i-1], or NumBins if h is at or past every barrier.
func (b *Biases) Bin(h int) int {
	for i, barrier := range b.Barriers {
		if h < barrier {
			return i + 1
		}
	}
	return b.NumBins
}

// BinEdges returns the inclusive [lower, upper] height range covered by
// the given 1-based bin.
func (b *Biases) BinEdges(bin int) (lower, upper int) {
	lower = b.MinHeight + (bin-1)*b.binSize
	upper = lower + b.binSize - 1
	if bin == b.NumBins {
		upper = b.MaxHeight
	}
	return lower, upper
}

// EneAt returns the bias energy for the bin containing height h.
func (b *Biases) EneAt(h int) float64 {
	return b.Enes[b.Bin(h)-1]
}

// IncrementCount bumps the counter for the bin containing height h.
func (b *Biases) IncrementCount(h int) {
	b.Counts[b.Bin(h)-1]++
}

// SetEnes replaces the bias energies wholesale, e.g. from a restart file.
// It panics if the length doesn't match NumBins, since that would be a
// malformed bias file (an invariant violation, not a move-time error).
func (b *Biases) SetEnes(enes []float64) {
	if len(enes) != b.NumBins {
		panic("ring: bias restart row length does not match numbins")
	}
	copy(b.Enes, enes)
}

// AnalyticalFreeEnergy is the idealized free energy of a ring at height
// h, treating it as Nsca scaffolds plus (Nfil-Nsca) non-scaffold
// filaments: Nsca scaffold-scaffold overlaps closing the ring plus two
// scaffold overlaps per non-scaffold filament, with overlap length
// L(h) = 2*pi*(r_max - r(h)) / Nsca.
func AnalyticalFreeEnergy(p SystemParams, h int) float64 {
	radius := p.Delta * float64(h+1) / (2 * math.Pi)
	rMax := p.Delta * float64(p.MaxHeight+1) / (2 * math.Pi)
	overlapLength := 2 * math.Pi * (rMax - radius) / float64(p.NumScaffolds)

	inner := 1 + (p.Ks*p.Ks*p.Xc)/(p.Kd*(p.Ks+p.Xc)*(p.Ks+p.Xc))
	overlapEnergyPerOverlap := -(overlapLength * KB * p.T / p.Delta) * math.Log(inner)
	overlapCount := float64(p.NumScaffolds + 2*(p.NumFilaments-p.NumScaffolds))

	bending := float64(p.NumFilaments) * FilamentBendingEnergy(p, radius)

	return overlapCount*overlapEnergyPerOverlap + bending
}

// SeedAnalytical fills every bias energy with the negative of the
// average of the analytical free energy evaluated at the bin's lower and
// upper height edges.
func (b *Biases) SeedAnalytical(p SystemParams) {
	for bin := 1; bin <= b.NumBins; bin++ {
		lower, upper := b.BinEdges(bin)
		fLower := AnalyticalFreeEnergy(p, lower)
		fUpper := AnalyticalFreeEnergy(p, upper)
		b.Enes[bin-1] = -(fLower + fUpper) / 2
	}
}

// IterativeUpdate refines every bias energy from this iteration's counts
// (the WHAM-free flat-histogram scheme of spec §4.6), clamps each update
// to +-maxBiasDiff*kB*T, writes freqs/probs as a side effect, and resets
// counts to zero for the next iteration.
func (b *Biases) IterativeUpdate(t, maxBiasDiff float64) {
	kT := KB * t
	clamp := maxBiasDiff * kT

	s := 0.0
	for _, c := range b.Counts {
		s += c
	}

	z := 0.0
	for i, c := range b.Counts {
		if c > 0 {
			z += c * math.Exp(b.Enes[i]/kT)
		}
	}

	for i, c := range b.Counts {
		var freq, prob, delta float64
		if c == 0 {
			delta = -clamp
		} else {
			if s > 0 {
				freq = c / s
			}
			if z > 0 {
				prob = c * math.Exp(b.Enes[i]/kT) / z
			}
			delta = kT*math.Log(prob) - b.Enes[i]
			if delta > clamp {
				delta = clamp
			} else if delta < -clamp {
				delta = -clamp
			}
		}
		b.Freqs[i] = freq
		b.Probs[i] = prob
		b.Enes[i] += delta
		b.Counts[i] = 0
	}
}
