package scatter

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/roomscatter/pkg/cache"
	"github.com/matzehuels/roomscatter/pkg/errors"
	"github.com/matzehuels/roomscatter/pkg/geom"
	"github.com/matzehuels/roomscatter/pkg/observability"
	"github.com/matzehuels/roomscatter/pkg/scene"
)

// Runner executes placement runs against a scene backend.
//
// The Runner is stateless except for the cache and logger - it doesn't keep
// the ledger between runs. A [Director] owns the ledger lifecycle; the
// Runner only builds a fresh one per Execute call.
type Runner struct {
	Geometry     scene.Geometry
	Instantiator scene.Instantiator
	Cache        cache.Cache
	Keyer        cache.Keyer
	Logger       *log.Logger
}

// NewRunner creates a runner for the given scene backend.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (estimate memoization lives only for
// the duration of one run).
func NewRunner(geo scene.Geometry, inst scene.Instantiator, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Geometry:     geo,
		Instantiator: inst,
		Cache:        c,
		Keyer:        keyer,
		Logger:       logger,
	}
}

// Execute runs one complete placement pass over every configured category.
//
// The returned Result is always usable, including when categories fall
// short of their targets; only invalid options or an invalid region produce
// an error. The caller owns the result's ledger and must drain it (via
// [Ledger.Reset]) before discarding it, or the spawned instances leak.
func (r *Runner) Execute(ctx context.Context, region scene.Region, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := region.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRegion, err, "invalid region")
	}
	logger := opts.Logger

	start := time.Now()
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	ledger := NewLedger()
	result := &Result{Ledger: ledger}

	observability.Placement().OnRunStart(ctx, len(opts.Categories))

	for i := range opts.Categories {
		catStart := time.Now()
		cr := r.placeCategory(ctx, rng, region, opts.Categories[i], &opts, ledger)
		result.Categories = append(result.Categories, cr)
		result.Stats.TotalPlaced += cr.Placed
		result.Stats.TotalAttempts += cr.Attempts

		logger.Info("placed category",
			"category", cr.CategoryID,
			"placed", cr.Placed,
			"target", cr.Target,
			"attempts", cr.Attempts,
			"duration", time.Since(catStart).Round(time.Millisecond))
	}

	result.Items = ledger.Items()
	result.Stats.Duration = time.Since(start)
	observability.Placement().OnRunComplete(ctx, result.Stats.TotalPlaced, result.Stats.Duration)

	logger.Info("placement run complete",
		"placed", result.Stats.TotalPlaced,
		"attempts", result.Stats.TotalAttempts,
		"duration", result.Stats.Duration.Round(time.Millisecond))

	return result, nil
}

// placeCategory runs the attempt loop for one category. Every outcome is a
// partial success recorded on the CategoryResult; nothing here aborts the
// run.
func (r *Runner) placeCategory(ctx context.Context, rng *rand.Rand, region scene.Region, cat Category, opts *Options, ledger *Ledger) CategoryResult {
	cr := CategoryResult{CategoryID: cat.ID, TierCommits: make(map[string]int)}

	if len(cat.Items) == 0 {
		opts.Logger.Warn("category has no items configured, skipping", "category", cat.ID)
		cr.Skipped = true
		return cr
	}

	estimates, err := r.estimates(ctx, cat)
	if err != nil {
		opts.Logger.Warn("footprint estimation failed, skipping category",
			"category", cat.ID, "err", err)
		cr.Skipped = true
		return cr
	}

	cr.Target = TargetCount(region, cat, opts, rng)
	if cr.Target == 0 {
		opts.Logger.Debug("category target is zero", "category", cat.ID)
		return cr
	}

	// A category whose smallest footprint has no candidate window even at
	// the forced tier can never place anything; abandon it early.
	if !anyTierFeasible(region, estimates, cat.Clearance) {
		opts.Logger.Warn("region too small for category at every tier, abandoning",
			"category", cat.ID)
		cr.Infeasible = true
		return cr
	}

	cr.Budget = opts.AttemptBudget(cr.Target)
	stop := opts.AttemptStop(cr.Target)
	start := time.Now()
	observability.Placement().OnCategoryStart(ctx, cat.ID, cr.Target)

	for cr.Placed < cr.Target && cr.Attempts < stop {
		cr.Attempts++
		item, tier, ok := r.attemptItem(ctx, rng, region, cat, estimates, opts, ledger)
		if !ok {
			continue
		}
		ledger.Append(item)
		cr.Placed++
		cr.TierCommits[tier.String()]++
		observability.Placement().OnCommit(ctx, cat.ID, item.ID, tier.String())
	}

	observability.Placement().OnCategoryComplete(ctx, cat.ID, cr.Placed, cr.Target, time.Since(start))
	return cr
}

// attemptItem runs one pass of the placement state machine: pick a
// template, then walk the relaxation ladder sampling and validating
// candidates until one commits or the tier budget runs out.
//
// Tier escalation is scoped to this single item attempt, so different items
// of the same category may succeed at different tiers.
func (r *Runner) attemptItem(ctx context.Context, rng *rand.Rand, region scene.Region, cat Category, estimates estimateSet, opts *Options, ledger *Ledger) (*PlacedItem, Tier, bool) {
	tmpl := cat.Items[rng.IntN(len(cat.Items))]
	quarter := rng.IntN(4)
	estimate := estimates[tmpl.ID].RotatedXZ(quarter)

	tier := TierStrict
	for {
		if x, z, ok := sampleWindow(region, estimate, tier, cat.Clearance); ok {
			// Randomized samples first, the region center as the tier's
			// last candidate.
			for s := 0; s <= opts.SamplesPerTier; s++ {
				pos := region.CenterXZ()
				if s < opts.SamplesPerTier {
					pos = sampleCandidate(rng, region, x, z)
				}

				candidate := estimate.At(geom.Vec3{X: pos.X, Y: region.FloorY + estimate.Extents.Y, Z: pos.Z})
				if !validateEstimate(region, candidate, tier, cat.Clearance, ledger) {
					continue
				}

				item, ok := r.commitAt(ctx, region, cat, tmpl, pos, quarter, tier, ledger)
				// An exact-geometry or instantiation failure burns the
				// whole item attempt, not just this candidate.
				return item, tier, ok
			}
		}

		next, more := tier.next()
		if !more {
			return nil, tier, false
		}
		tier = next
	}
}

// commitAt drives the instantiate → align → re-validate → commit tail of
// the state machine. On any failure the instance is destroyed and the
// ledger is left untouched.
func (r *Runner) commitAt(ctx context.Context, region scene.Region, cat Category, tmpl scene.ItemTemplate, pos geom.Vec3, quarter int, tier Tier, ledger *Ledger) (*PlacedItem, bool) {
	handle, err := r.Instantiator.Create(tmpl, pos, quarter)
	if err != nil {
		r.Logger.Debug("instantiation failed", "template", tmpl.ID, "err", err)
		observability.Placement().OnRollback(ctx, cat.ID, "instantiate")
		return nil, false
	}

	rollback := func(reason string) {
		if derr := r.Instantiator.Destroy(handle); derr != nil {
			r.Logger.Warn("rollback destroy failed", "template", tmpl.ID, "err", derr)
		}
		observability.Placement().OnRollback(ctx, cat.ID, reason)
	}

	measured, err := r.Geometry.MeasureFootprint(handle)
	if err != nil {
		r.Logger.Debug("footprint measurement failed", "template", tmpl.ID, "err", err)
		rollback("measure")
		return nil, false
	}

	// Floor alignment: shift the pivot so the lowest geometric extent
	// touches the floor plane, whatever the object's internal pivot offset.
	pivotToBottom := pos.Y - measured.Min().Y
	aligned := pos
	aligned.Y = region.FloorY + pivotToBottom
	if aligned != pos {
		if err := r.Instantiator.Move(handle, aligned); err != nil {
			r.Logger.Debug("floor alignment failed", "template", tmpl.ID, "err", err)
			rollback("align")
			return nil, false
		}
	}

	// Re-measure and re-validate: moving Y cannot change the XZ bounds,
	// but the instance geometry is the source of truth, not our arithmetic.
	exact, err := r.Geometry.MeasureFootprint(handle)
	if err != nil {
		rollback("measure")
		return nil, false
	}
	if !validateExact(region, exact, tier, cat.Clearance, ledger) {
		rollback("exact_validation")
		return nil, false
	}

	return &PlacedItem{
		ID:           uuid.NewString(),
		CategoryID:   cat.ID,
		TemplateID:   tmpl.ID,
		Position:     aligned,
		QuarterTurns: quarter,
		Tier:         tier.String(),
		Footprint:    exact,
		handle:       handle,
	}, true
}

// =============================================================================
// Estimate Memoization
// =============================================================================

// estimateSet maps template IDs to origin-centered footprint estimates.
type estimateSet map[string]geom.Box

// estimates returns the memoized footprint estimates for a category,
// computing and caching them on miss. Estimation may cost a disposable
// instance per template, so entries are reused across runs until the
// template set changes.
func (r *Runner) estimates(ctx context.Context, cat Category) (estimateSet, error) {
	tmplData, _ := json.Marshal(cat.Items)
	key := r.Keyer.EstimateKey(cat.ID, cache.Hash(tmplData))

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var cached estimateSet
		if err := json.Unmarshal(data, &cached); err == nil && coversTemplates(cached, cat.Items) {
			return cached, nil
		}
		// Stale or corrupt entry - fall through to recompute.
	}

	set := make(estimateSet, len(cat.Items))
	for _, tmpl := range cat.Items {
		box, err := r.Geometry.EstimateFootprint(tmpl)
		if err != nil {
			return nil, fmt.Errorf("estimate %q: %w", tmpl.ID, err)
		}
		set[tmpl.ID] = box
	}

	if data, err := json.Marshal(set); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLEstimate)
	}
	return set, nil
}

// coversTemplates reports whether the cached set has an entry for every
// template.
func coversTemplates(set estimateSet, items []scene.ItemTemplate) bool {
	for _, tmpl := range items {
		if _, ok := set[tmpl.ID]; !ok {
			return false
		}
	}
	return true
}

// anyTierFeasible reports whether at least one template has a candidate
// window at some tier.
func anyTierFeasible(region scene.Region, estimates estimateSet, clearance float64) bool {
	for _, est := range estimates {
		for tier := TierStrict; ; {
			if tierFeasible(region, est, tier, clearance) {
				return true
			}
			next, more := tier.next()
			if !more {
				break
			}
			tier = next
		}
	}
	return false
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
