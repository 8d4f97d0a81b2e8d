package scatter

import (
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/roomscatter/pkg/geom"
	"github.com/matzehuels/roomscatter/pkg/scene"
)

func testRegion(w, d float64) scene.Region {
	return scene.Region{Min: geom.Vec3{}, Max: geom.Vec3{X: w, Z: d}}
}

func plannerOpts(t *testing.T) *Options {
	t.Helper()
	opts := &Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("options: %v", err)
	}
	return opts
}

func TestTargetCountWithinConfiguredRange(t *testing.T) {
	// A 10x10 region with the default 0.5 radius holds 100 unit squares,
	// far above the configured max, so the range [min, max] applies as-is.
	region := testRegion(10, 10)
	cat := Category{ID: "props", MinCount: 2, MaxCount: 6}
	opts := plannerOpts(t)

	for seed := uint64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed))
		got := TargetCount(region, cat, opts, rng)
		if got < 2 || got > 6 {
			t.Fatalf("seed %d: target %d outside [2, 6]", seed, got)
		}
	}
}

func TestTargetCountCapacityClamp(t *testing.T) {
	// A 2x2 region holds 4 unit squares; capacity beats the configured
	// maximum of 50.
	region := testRegion(2, 2)
	cat := Category{ID: "props", MinCount: 1, MaxCount: 50}
	opts := plannerOpts(t)

	for seed := uint64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed))
		got := TargetCount(region, cat, opts, rng)
		if got < 1 || got > 4 {
			t.Fatalf("seed %d: target %d outside [1, 4]", seed, got)
		}
	}
}

func TestTargetCountClearanceShrinksCapacity(t *testing.T) {
	// A 4x4 region with 1x1 footprints and 0.2 clearance: each object
	// claims a 1.2-sided square, so capacity is floor(16/1.44) = 11 and
	// the draw stays in [0, 11] even with a configured max of 20.
	region := testRegion(4, 4)
	cat := Category{ID: "props", MinCount: 0, MaxCount: 20, Clearance: 0.2}
	opts := plannerOpts(t)

	for seed := uint64(1); seed <= 100; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed))
		got := TargetCount(region, cat, opts, rng)
		if got < 0 || got > 11 {
			t.Fatalf("seed %d: target %d outside [0, 11]", seed, got)
		}
	}

	// Without clearance the same region holds 16.
	bare := Category{ID: "props", MinCount: 16, MaxCount: 20}
	rng := rand.New(rand.NewPCG(1, 1))
	if got := TargetCount(region, bare, opts, rng); got != 16 {
		t.Errorf("zero-clearance target = %d, want 16", got)
	}
}

func TestTargetCountCapacityBelowMinimum(t *testing.T) {
	// Capacity 1 and a minimum of 3: the physical limit wins.
	region := testRegion(1, 1.5)
	cat := Category{ID: "props", MinCount: 3, MaxCount: 10}
	opts := plannerOpts(t)

	rng := rand.New(rand.NewPCG(1, 1))
	if got := TargetCount(region, cat, opts, rng); got != 1 {
		t.Errorf("target = %d, want 1", got)
	}
}

func TestTargetCountZero(t *testing.T) {
	opts := plannerOpts(t)
	rng := rand.New(rand.NewPCG(1, 1))

	// Region smaller than one footprint square.
	if got := TargetCount(testRegion(0.5, 0.5), Category{ID: "p", MaxCount: 5}, opts, rng); got != 0 {
		t.Errorf("tiny region target = %d, want 0", got)
	}

	// MaxCount of zero disables the category.
	if got := TargetCount(testRegion(10, 10), Category{ID: "p"}, opts, rng); got != 0 {
		t.Errorf("zero max target = %d, want 0", got)
	}
}

func TestTargetCountAbsoluteCap(t *testing.T) {
	// Huge region, huge configured max: the absolute cap bounds the draw.
	region := testRegion(1000, 1000)
	cat := Category{ID: "props", MinCount: 1, MaxCount: 100000}
	opts := plannerOpts(t)

	for seed := uint64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed))
		if got := TargetCount(region, cat, opts, rng); got > DefaultAbsoluteCap {
			t.Fatalf("seed %d: target %d exceeds absolute cap", seed, got)
		}
	}
}

func TestTargetCountDeterministic(t *testing.T) {
	region := testRegion(10, 10)
	cat := Category{ID: "props", MinCount: 2, MaxCount: 8}
	opts := plannerOpts(t)

	a := TargetCount(region, cat, opts, rand.New(rand.NewPCG(42, 42)))
	b := TargetCount(region, cat, opts, rand.New(rand.NewPCG(42, 42)))
	if a != b {
		t.Errorf("same seed produced different targets: %d vs %d", a, b)
	}
}
