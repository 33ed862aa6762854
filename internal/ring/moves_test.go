package ring

import (
	"math/rand"
	"testing"
)

func TestMetropolisAccept_AlwaysAcceptsOnEnergyDecrease(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	// A large negative delta drives exp(-delta/kT) to +Inf, so p >= 1
	// regardless of the random draw.
	if !metropolisAccept(rng, -1e10, 1.0, 300) {
		t.Error("a large energy decrease must always be accepted")
	}
}

func TestMetropolisAccept_AlwaysRejectsOnHugeEnergyIncrease(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	// exp(-delta/kT) underflows to exactly 0, so p == 0 and p > U(0,1)
	// is false for every possible draw in [0,1).
	if metropolisAccept(rng, 1e10, 1.0, 300) {
		t.Error("an enormous energy increase must never be accepted")
	}
}

func TestMetropolisAccept_ZeroDeltaAlwaysAccepted(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if !metropolisAccept(rng, 0, 1.0, 300) {
		t.Error("delta==0 gives p==1, must always accept")
	}
}

func TestSplitPoint_FindsLastMatchingIndex(t *testing.T) {
	sites := []Coord{{X: 0, Y: 5}, {X: 0, Y: 6}, {X: 0, Y: 7}, {X: 0, Y: 8}}
	if sp := splitPoint(sites, 7); sp != 3 {
		t.Errorf("splitPoint = %d, want 3", sp)
	}
}

func TestSplitPoint_ZeroWhenHeightNeverReached(t *testing.T) {
	sites := []Coord{{X: 0, Y: 5}, {X: 0, Y: 6}, {X: 0, Y: 7}}
	if sp := splitPoint(sites, 99); sp != 0 {
		t.Errorf("splitPoint = %d, want 0 when the filament never touches height", sp)
	}
}

func TestMoveKind_String(t *testing.T) {
	if MoveTranslation.String() != "translation" {
		t.Errorf("MoveTranslation.String() = %q", MoveTranslation.String())
	}
	if MoveRadius.String() != "radius" {
		t.Errorf("MoveRadius.String() = %q", MoveRadius.String())
	}
}
