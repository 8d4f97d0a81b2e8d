// Package scatter implements the placement engine: it populates a bounded
// floor region with objects drawn from weighted categories while keeping
// every placed object inside the region, clear of its neighbors, and resting
// on the floor plane.
//
// # Architecture
//
// A placement run walks each configured category through the same state
// machine:
//
//	SelectItem → EstimateFootprint → GenerateCandidate → ValidateEstimate
//	  → Instantiate → AlignToFloor → ValidateExact → Commit
//
// Failed estimate or exact validation loops back to candidate generation,
// escalating through relaxation tiers (strict → relaxed → forced) when a
// tier's sample budget is exhausted. Every loop carries an explicit upper
// bound, so a run terminates even on pathological input (zero-size region,
// oversized footprints). No failure is fatal: everything degrades to
// "fewer objects placed".
//
// # Usage
//
// Create a Runner and execute a run:
//
//	runner := scatter.NewRunner(scene, scene, cache, nil, logger)
//	opts := scatter.Options{
//	    Seed:       42,
//	    Categories: []scatter.Category{{ID: "chairs", Items: items, MaxCount: 8, Clearance: 0.2}},
//	}
//	result, err := runner.Execute(ctx, region, opts)
//
// For an event-driven setup, wrap the runner in a [Director] and subscribe
// it to the scene's region-ready signal.
package scatter

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roomscatter/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultPerItemAttemptCap is the attempt allowance per desired item.
	// A category's total budget is target * cap * attemptBudgetFactor.
	DefaultPerItemAttemptCap = 20

	// DefaultAbsoluteCap is the safety ceiling on any category's target
	// count, preventing pathological counts on very large regions.
	DefaultAbsoluteCap = 100

	// DefaultAvgItemRadius is the average per-object radius (length units)
	// used to estimate region capacity before any footprint is measured.
	DefaultAvgItemRadius = 0.5

	// DefaultSamplesPerTier is the number of randomized candidates tried at
	// each relaxation tier before falling back to the region center.
	DefaultSamplesPerTier = 8

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// attemptBudgetFactor absorbs retries from collisions on top of the
	// per-item attempt cap.
	attemptBudgetFactor = 2

	// budgetStopFraction stops a category early once this share of its
	// attempt budget is consumed, trading completeness for bounded latency.
	budgetStopFraction = 0.8

	// forcedInsetEpsilon keeps forced-tier samples fractionally off the
	// region boundary so containment never fails on exact equality.
	forcedInsetEpsilon = 1e-3
)

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options contains all configuration for one placement run.
// This struct supports JSON serialization for the debug server.
type Options struct {
	// Categories are placed in order. A category with no items is skipped.
	Categories []Category `json:"categories"`

	// Seed drives all randomness in the run. Equal seeds with equal inputs
	// produce identical plans.
	Seed uint64 `json:"seed,omitempty"`

	// PerItemAttemptCap is the attempt allowance per desired item.
	PerItemAttemptCap int `json:"per_item_attempt_cap,omitempty"`

	// AbsoluteCap bounds every category's target count.
	AbsoluteCap int `json:"absolute_cap,omitempty"`

	// AvgItemRadius is the capacity-estimate radius in length units.
	AvgItemRadius float64 `json:"avg_item_radius,omitempty"`

	// SamplesPerTier is the randomized-candidate budget per relaxation tier.
	SamplesPerTier int `json:"samples_per_tier,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks the configuration and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.PerItemAttemptCap == 0 {
		o.PerItemAttemptCap = DefaultPerItemAttemptCap
	}
	if o.PerItemAttemptCap < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "per_item_attempt_cap must be positive")
	}
	if o.AbsoluteCap == 0 {
		o.AbsoluteCap = DefaultAbsoluteCap
	}
	if o.AbsoluteCap < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "absolute_cap must be positive")
	}
	if o.AvgItemRadius == 0 {
		o.AvgItemRadius = DefaultAvgItemRadius
	}
	if o.AvgItemRadius < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "avg_item_radius must be positive")
	}
	if o.SamplesPerTier == 0 {
		o.SamplesPerTier = DefaultSamplesPerTier
	}
	if o.SamplesPerTier < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "samples_per_tier must be positive")
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	seen := make(map[string]bool, len(o.Categories))
	for i := range o.Categories {
		if err := o.Categories[i].Validate(); err != nil {
			return err
		}
		if seen[o.Categories[i].ID] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate category id %q", o.Categories[i].ID)
		}
		seen[o.Categories[i].ID] = true
	}

	o.validated = true
	return nil
}

// AttemptBudget returns the total attempt budget for a category target.
func (o *Options) AttemptBudget(target int) int {
	return target * o.PerItemAttemptCap * attemptBudgetFactor
}

// AttemptStop returns the attempt count at which a category stops early.
func (o *Options) AttemptStop(target int) int {
	return int(float64(o.AttemptBudget(target)) * budgetStopFraction)
}

// String summarizes the options for log output.
func (o *Options) String() string {
	return fmt.Sprintf("categories=%d seed=%d attempt_cap=%d absolute_cap=%d",
		len(o.Categories), o.Seed, o.PerItemAttemptCap, o.AbsoluteCap)
}
