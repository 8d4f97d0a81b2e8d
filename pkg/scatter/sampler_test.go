package scatter

import (
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/roomscatter/pkg/geom"
)

func TestSampleWindow(t *testing.T) {
	region := testRegion(10, 8)
	footprint := geom.NewBox(geom.Vec3{}, 2, 1, 2)

	x, z, ok := sampleWindow(region, footprint, TierStrict, 0.5)
	if !ok {
		t.Fatal("window should exist")
	}
	// Inset by half-extent (1) plus clearance (0.5) on each side.
	if x.lo != 1.5 || x.hi != 8.5 {
		t.Errorf("x window = [%v, %v]", x.lo, x.hi)
	}
	if z.lo != 1.5 || z.hi != 6.5 {
		t.Errorf("z window = [%v, %v]", z.lo, z.hi)
	}
}

func TestSampleWindowInfeasible(t *testing.T) {
	// Footprint plus strict clearance exceeds the region; the relaxed and
	// forced tiers progressively recover feasibility.
	region := testRegion(3, 3)
	footprint := geom.NewBox(geom.Vec3{}, 2.5, 1, 2.5)

	if _, _, ok := sampleWindow(region, footprint, TierStrict, 0.5); ok {
		t.Error("strict window should not exist")
	}
	if _, _, ok := sampleWindow(region, footprint, TierRelaxed, 0.5); ok {
		t.Error("relaxed window should not exist")
	}
	if _, _, ok := sampleWindow(region, footprint, TierForced, 0.5); !ok {
		t.Error("forced window should exist")
	}
}

func TestSampleWindowFootprintLargerThanRegion(t *testing.T) {
	region := testRegion(2, 2)
	footprint := geom.NewBox(geom.Vec3{}, 3, 1, 3)

	if tierFeasible(region, footprint, TierForced, 0) {
		t.Error("oversized footprint should be infeasible even forced")
	}
}

func TestSampleCandidateStaysInWindow(t *testing.T) {
	region := testRegion(10, 8)
	region.FloorY = 0.25
	footprint := geom.NewBox(geom.Vec3{}, 2, 1, 2)

	x, z, ok := sampleWindow(region, footprint, TierStrict, 0.5)
	if !ok {
		t.Fatal("window should exist")
	}

	rng := rand.New(rand.NewPCG(3, 3))
	for i := 0; i < 200; i++ {
		pos := sampleCandidate(rng, region, x, z)
		if pos.X < x.lo || pos.X > x.hi || pos.Z < z.lo || pos.Z > z.hi {
			t.Fatalf("sample %d at %+v escaped the window", i, pos)
		}
		if pos.Y != region.FloorY {
			t.Fatalf("sample %d Y = %v, want floor height", i, pos.Y)
		}
	}
}
