package scatter

// Tier is one step of the clearance relaxation ladder. When placement at a
// tier repeatedly fails, the engine escalates to the next looser tier for
// the stalled item attempt. Forced drops the clearance entirely but never
// relaxes hard region containment.
type Tier int

const (
	TierStrict Tier = iota
	TierRelaxed
	TierForced

	tierCount = 3
)

// String returns the tier name used in logs, results, and hooks.
func (t Tier) String() string {
	switch t {
	case TierStrict:
		return "strict"
	case TierRelaxed:
		return "relaxed"
	case TierForced:
		return "forced"
	default:
		return "unknown"
	}
}

// Clearance returns the effective safety margin at this tier for a
// category's configured base clearance: full at strict, halved at relaxed,
// none at forced.
func (t Tier) Clearance(base float64) float64 {
	switch t {
	case TierStrict:
		return base
	case TierRelaxed:
		return base / 2
	default:
		return 0
	}
}

// insetMargin returns the boundary inset used when sampling candidates.
// The forced tier keeps an epsilon so samples never land exactly on the
// region boundary.
func (t Tier) insetMargin(base float64) float64 {
	if t == TierForced {
		return forcedInsetEpsilon
	}
	return t.Clearance(base)
}

// next returns the following tier and whether one exists.
func (t Tier) next() (Tier, bool) {
	if t+1 < tierCount {
		return t + 1, true
	}
	return t, false
}
