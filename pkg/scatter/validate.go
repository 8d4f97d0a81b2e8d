package scatter

import (
	"github.com/matzehuels/roomscatter/pkg/geom"
	"github.com/matzehuels/roomscatter/pkg/scene"
)

// checkBounds verifies the footprint lies entirely within the region on X
// and Z, inset by the tier's effective clearance. Height is unconstrained
// here; floor alignment handles Y separately.
func checkBounds(region scene.Region, footprint geom.Box, tier Tier, clearance float64) bool {
	return footprint.InsideXZ(region.Min, region.Max, tier.Clearance(clearance))
}

// checkSeparation verifies the candidate keeps the minimum center-to-center
// distance from every placed item. The required distance is the sum of both
// circumscribing XZ radii plus the tier's effective clearance.
//
// Using a radius approximation instead of box intersection rejects some
// valid tighter packings; it is the cheap pre-instantiation filter. The
// authoritative box test runs in checkSeparationExact once real geometry
// is known.
func checkSeparation(footprint geom.Box, tier Tier, clearance float64, ledger *Ledger) bool {
	need := footprint.RadiusXZ() + tier.Clearance(clearance)
	for _, placed := range ledger.items {
		if footprint.Center.DistXZ(placed.Footprint.Center) < need+placed.Footprint.RadiusXZ() {
			return false
		}
	}
	return true
}

// checkSeparationExact inflates each placed footprint by the effective
// clearance and tests for XZ overlap against the measured footprint. This
// is the stricter authoritative check; a commit is final only when it and
// the radius heuristic both pass.
func checkSeparationExact(footprint geom.Box, tier Tier, clearance float64, ledger *Ledger) bool {
	if !checkSeparation(footprint, tier, clearance, ledger) {
		return false
	}
	c := tier.Clearance(clearance)
	for _, placed := range ledger.items {
		if footprint.IntersectsXZ(placed.Footprint.InflatedXZ(c)) {
			return false
		}
	}
	return true
}

// validateEstimate is the cheap pre-instantiation gate for a candidate.
func validateEstimate(region scene.Region, footprint geom.Box, tier Tier, clearance float64, ledger *Ledger) bool {
	return checkBounds(region, footprint, tier, clearance) &&
		checkSeparation(footprint, tier, clearance, ledger)
}

// validateExact is the mandatory post-instantiation gate, run against
// measured geometry after floor alignment.
func validateExact(region scene.Region, footprint geom.Box, tier Tier, clearance float64, ledger *Ledger) bool {
	return checkBounds(region, footprint, tier, clearance) &&
		checkSeparationExact(footprint, tier, clearance, ledger)
}
