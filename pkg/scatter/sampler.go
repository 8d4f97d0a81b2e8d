package scatter

import (
	"math/rand/v2"

	"github.com/matzehuels/roomscatter/pkg/geom"
	"github.com/matzehuels/roomscatter/pkg/scene"
)

// sampleInterval is one axis of the candidate sampling window: the region
// interior inset by the footprint half-extent plus the tier's margin.
type sampleInterval struct {
	lo, hi float64
}

func (i sampleInterval) empty() bool { return i.lo >= i.hi }

// sampleWindow computes the XZ window candidates may be drawn from. ok is
// false when the region is too small for this footprint at this tier - the
// caller must escalate the tier or abandon the category rather than sample
// an invalid position.
func sampleWindow(region scene.Region, footprint geom.Box, tier Tier, clearance float64) (x, z sampleInterval, ok bool) {
	m := tier.insetMargin(clearance)
	x = sampleInterval{region.Min.X + footprint.Extents.X + m, region.Max.X - footprint.Extents.X - m}
	z = sampleInterval{region.Min.Z + footprint.Extents.Z + m, region.Max.Z - footprint.Extents.Z - m}
	if x.empty() || z.empty() {
		return x, z, false
	}
	return x, z, true
}

// sampleCandidate draws one uniform candidate position from the window.
// The Y coordinate is provisional floor height; exact alignment happens
// after instantiation.
func sampleCandidate(rng *rand.Rand, region scene.Region, x, z sampleInterval) geom.Vec3 {
	return geom.Vec3{
		X: x.lo + rng.Float64()*(x.hi-x.lo),
		Y: region.FloorY,
		Z: z.lo + rng.Float64()*(z.hi-z.lo),
	}
}

// tierFeasible reports whether any candidate window exists for the
// footprint at the given tier.
func tierFeasible(region scene.Region, footprint geom.Box, tier Tier, clearance float64) bool {
	_, _, ok := sampleWindow(region, footprint, tier, clearance)
	return ok
}
