package scatter

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/roomscatter/pkg/scene"
)

// TargetCount derives how many objects a category should attempt to place
// in the given region.
//
// Capacity is estimated from floor area and the configured average item
// radius: each object is assumed to occupy a (2r + clearance)² square, so
// the clearance a category demands between neighbors shrinks how many of
// its objects fit. The category's configured maximum is clamped to that
// capacity and to the absolute cap, then the target is drawn uniformly
// from [min(MinCount, adjustedMax), adjustedMax]. When capacity is below
// the configured minimum the target collapses to capacity - the region's
// physical limit always wins over the category's preference.
func TargetCount(region scene.Region, cat Category, opts *Options, rng *rand.Rand) int {
	side := 2*opts.AvgItemRadius + cat.Clearance
	footprintArea := side * side
	if footprintArea <= 0 {
		return 0
	}

	capacity := int(math.Floor(region.Area() / footprintArea))
	adjustedMax := min(cat.MaxCount, capacity, opts.AbsoluteCap)
	if adjustedMax <= 0 {
		return 0
	}

	lo := min(cat.MinCount, adjustedMax)
	return lo + rng.IntN(adjustedMax-lo+1)
}
