package ring

import (
	"math"
	"testing"
)

func TestBiases_BarriersStrictlyAscending(t *testing.T) {
	b := NewBiases(0, 19, 2)
	for i := 1; i < len(b.Barriers); i++ {
		if b.Barriers[i] <= b.Barriers[i-1] {
			t.Fatalf("barriers not strictly ascending at %d: %v", i, b.Barriers)
		}
	}
}

func TestBiases_Bin_StaysInRange(t *testing.T) {
	b := NewBiases(0, 19, 2)
	for h := -5; h <= 25; h++ {
		bin := b.Bin(h)
		if bin < 1 || bin > b.NumBins {
			t.Errorf("Bin(%d) = %d, out of [1, %d]", h, bin, b.NumBins)
		}
	}
}

func TestBiases_BinEdges_CoverWithoutGaps(t *testing.T) {
	b := NewBiases(0, 19, 2)
	for h := b.MinHeight; h <= b.MaxHeight; h++ {
		bin := b.Bin(h)
		lower, upper := b.BinEdges(bin)
		if h < lower || h > upper {
			t.Errorf("h=%d assigned to bin %d with edges [%d,%d]", h, bin, lower, upper)
		}
	}
}

func TestBiases_IterativeUpdate_UniformCounts(t *testing.T) {
	b := NewBiases(0, 3, 1) // numbins = 4, one height per bin
	for h := 0; h <= 3; h++ {
		b.IncrementCount(h)
	}

	const temp = 300.0
	b.IterativeUpdate(temp, 1e10) // clamp effectively disabled

	for i, f := range b.Freqs {
		if math.Abs(f-0.25) > 1e-12 {
			t.Errorf("Freqs[%d] = %v, want 0.25", i, f)
		}
	}

	kT := KB * temp
	want := kT * math.Log(0.25)
	for i, e := range b.Enes {
		if math.Abs(e-want) > math.Abs(want)*1e-9 {
			t.Errorf("Enes[%d] = %v, want %v", i, e, want)
		}
	}

	for i, c := range b.Counts {
		if c != 0 {
			t.Errorf("Counts[%d] = %v, want 0 after update", i, c)
		}
	}
}

func TestBiases_IterativeUpdate_ClampsLargeDelta(t *testing.T) {
	b := NewBiases(0, 3, 1)
	for h := 0; h <= 3; h++ {
		b.IncrementCount(h)
	}

	const temp = 300.0
	const maxBiasDiff = 1e-10
	kT := KB * temp
	clamp := maxBiasDiff * kT

	b.IterativeUpdate(temp, maxBiasDiff)

	for i, e := range b.Enes {
		if math.Abs(e-(-clamp)) > clamp*1e-9 {
			t.Errorf("Enes[%d] = %v, want clamped delta -%v", i, e, clamp)
		}
	}
}

func TestBiases_IterativeUpdate_ZeroCountBinGetsNegativeClamp(t *testing.T) {
	b := NewBiases(0, 3, 1)
	// Only bins for h=0,1,2 get counted; bin for h=3 stays at zero.
	b.IncrementCount(0)
	b.IncrementCount(1)
	b.IncrementCount(2)

	const temp = 300.0
	const maxBiasDiff = 2.0
	clamp := maxBiasDiff * KB * temp

	b.IterativeUpdate(temp, maxBiasDiff)

	zeroBin := b.Bin(3) - 1
	if math.Abs(b.Enes[zeroBin]-(-clamp)) > clamp*1e-9 {
		t.Errorf("Enes for the zero-count bin = %v, want -%v", b.Enes[zeroBin], clamp)
	}
}
