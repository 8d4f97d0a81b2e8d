package cache

// Keyer builds cache keys for the placement artifact kinds. Keys embed
// every input that changes the artifact, so a stale entry can never be
// mistaken for a current one.
type Keyer interface {
	// EstimateKey identifies a category's memoized footprint estimate.
	// templatesHash is a hash over the category's template set (IDs and
	// declared sizes), so editing any template invalidates the entry.
	EstimateKey(categoryID, templatesHash string) string

	// PlanKey identifies a computed placement plan.
	PlanKey(opts PlanKeyOpts) string
}

// PlanKeyOpts are the inputs that determine a plan's identity.
type PlanKeyOpts struct {
	RegionHash string // hash of region bounds and floor height
	ConfigHash string // hash of the category configuration
	Seed       uint64
}

// DefaultKeyer is the standard key builder.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// EstimateKey implements Keyer.
func (DefaultKeyer) EstimateKey(categoryID, templatesHash string) string {
	return hashKey("estimate", categoryID, templatesHash)
}

// PlanKey implements Keyer.
func (DefaultKeyer) PlanKey(opts PlanKeyOpts) string {
	return hashKey("plan", opts.RegionHash, opts.ConfigHash, opts.Seed)
}
