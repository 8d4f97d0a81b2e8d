package scatter

import (
	"testing"

	"github.com/matzehuels/roomscatter/pkg/geom"
)

func ledgerWith(footprints ...geom.Box) *Ledger {
	l := NewLedger()
	for i, fp := range footprints {
		l.Append(&PlacedItem{ID: string(rune('a' + i)), Footprint: fp})
	}
	return l
}

func TestCheckBounds(t *testing.T) {
	region := testRegion(10, 10)

	tests := []struct {
		name      string
		footprint geom.Box
		tier      Tier
		clearance float64
		want      bool
	}{
		{"centered strict", geom.NewBox(geom.Vec3{X: 5, Z: 5}, 2, 1, 2), TierStrict, 0.5, true},
		{"near wall strict fails", geom.NewBox(geom.Vec3{X: 1.2, Z: 5}, 2, 1, 2), TierStrict, 0.5, false},
		{"near wall relaxed passes", geom.NewBox(geom.Vec3{X: 1.3, Z: 5}, 2, 1, 2), TierRelaxed, 0.5, true},
		{"flush forced passes", geom.NewBox(geom.Vec3{X: 1, Z: 5}, 2, 1, 2), TierForced, 0.5, true},
		{"outside forced fails", geom.NewBox(geom.Vec3{X: 0.5, Z: 5}, 2, 1, 2), TierForced, 0.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkBounds(region, tt.footprint, tt.tier, tt.clearance); got != tt.want {
				t.Errorf("checkBounds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckSeparation(t *testing.T) {
	placed := geom.NewBox(geom.Vec3{X: 5, Z: 5}, 2, 1, 2)
	ledger := ledgerWith(placed)

	// Radii are 1 each; with 0.5 clearance the centers must stay 2.5 apart.
	near := geom.NewBox(geom.Vec3{X: 7.0, Z: 5}, 2, 1, 2)
	if checkSeparation(near, TierStrict, 0.5, ledger) {
		t.Error("2.0 apart should fail at strict")
	}
	if !checkSeparation(near, TierForced, 0.5, ledger) {
		t.Error("touching radii should pass at forced (zero clearance)")
	}

	far := geom.NewBox(geom.Vec3{X: 8, Z: 5}, 2, 1, 2)
	if !checkSeparation(far, TierStrict, 0.5, ledger) {
		t.Error("3.0 apart should pass at strict")
	}

	if !checkSeparation(near, TierStrict, 0.5, NewLedger()) {
		t.Error("empty ledger should always pass")
	}
}

func TestCheckSeparationExact(t *testing.T) {
	// Two long thin boxes whose circumscribing radii overlap but whose
	// actual bounds do not: the radius heuristic rejects what the exact
	// box test would allow, so the combined check still rejects.
	placed := geom.NewBox(geom.Vec3{X: 5, Z: 5}, 6, 1, 0.5)
	ledger := ledgerWith(placed)
	candidate := geom.NewBox(geom.Vec3{X: 5, Z: 7}, 6, 1, 0.5)

	if checkSeparationExact(candidate, TierForced, 0, ledger) != checkSeparation(candidate, TierForced, 0, ledger) {
		t.Error("exact check must not be looser than the radius heuristic")
	}

	// Overlapping boxes fail regardless of tier.
	overlap := geom.NewBox(geom.Vec3{X: 5.5, Z: 5}, 6, 1, 0.5)
	if checkSeparationExact(overlap, TierForced, 0, ledger) {
		t.Error("overlapping footprints should fail")
	}
}

func TestValidateEstimateAndExact(t *testing.T) {
	region := testRegion(10, 10)
	ledger := ledgerWith(geom.NewBox(geom.Vec3{X: 3, Z: 3}, 2, 1, 2))

	good := geom.NewBox(geom.Vec3{X: 7, Z: 7}, 2, 1, 2)
	if !validateEstimate(region, good, TierStrict, 0.5, ledger) {
		t.Error("well separated interior candidate should pass estimate")
	}
	if !validateExact(region, good, TierStrict, 0.5, ledger) {
		t.Error("well separated interior candidate should pass exact")
	}

	crowded := geom.NewBox(geom.Vec3{X: 4, Z: 3}, 2, 1, 2)
	if validateEstimate(region, crowded, TierStrict, 0.5, ledger) {
		t.Error("crowded candidate should fail estimate")
	}

	outside := geom.NewBox(geom.Vec3{X: 9.8, Z: 5}, 2, 1, 2)
	if validateExact(region, outside, TierForced, 0, ledger) {
		t.Error("out-of-bounds candidate should fail exact even forced")
	}
}
