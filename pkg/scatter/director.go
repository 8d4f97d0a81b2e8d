package scatter

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roomscatter/pkg/observability"
	"github.com/matzehuels/roomscatter/pkg/scene"
)

// Director owns placement state across runs: the active region, the current
// ledger, and the last result. It is the event-driven entry point - wire
// HandleRegionReady to the scene's region-ready signal and expose
// ResetAndRegenerate as the operator action.
//
// Runs are serialized by a mutex: a reset fully drains the current ledger
// before the next planning pass starts, and no attempt from a superseded
// run can commit after a reset has begun.
type Director struct {
	mu       sync.Mutex
	runner   *Runner
	provider scene.RegionProvider
	opts     Options
	logger   *log.Logger

	region *scene.Region
	result *Result
}

// NewDirector creates a director. The options are validated once up front
// so a broken configuration surfaces at startup, not on the first event.
func NewDirector(runner *Runner, provider scene.RegionProvider, opts Options) (*Director, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &Director{
		runner:   runner,
		provider: provider,
		opts:     opts,
		logger:   opts.Logger,
	}, nil
}

// HandleRegionReady runs a fresh placement pass for the announced region.
// Any previous ledger is drained first; the previous room's objects never
// coexist with the new room's.
func (d *Director) HandleRegionReady(ctx context.Context, region scene.Region) (*Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.drainLocked(ctx)
	d.region = &region
	return d.runLocked(ctx, region)
}

// ResetAndRegenerate destroys all placed objects, then re-runs planning if
// a region is available. Invoking it before the first room discovery is a
// warning-level no-op, not an error.
func (d *Director) ResetAndRegenerate(ctx context.Context) (*Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.drainLocked(ctx)

	region, ok := d.regionLocked()
	if !ok {
		d.logger.Warn("no region available, skipping regeneration")
		return nil, nil
	}
	return d.runLocked(ctx, region)
}

// Reset destroys all placed objects without regenerating. Idempotent:
// resetting an already-empty director leaves the same empty state.
func (d *Director) Reset(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drainLocked(ctx)
}

// Snapshot returns the active region and the current placed items.
func (d *Director) Snapshot() (scene.Region, []*PlacedItem, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.region == nil {
		return scene.Region{}, nil, false
	}
	var items []*PlacedItem
	if d.result != nil {
		items = d.result.Ledger.Items()
	}
	return *d.region, items, true
}

// LastResult returns the most recent run result, if any.
func (d *Director) LastResult() (*Result, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.result == nil {
		return nil, false
	}
	return d.result, true
}

// regionLocked resolves the active region, falling back to the provider
// for rooms discovered while no run was active.
func (d *Director) regionLocked() (scene.Region, bool) {
	if d.region != nil {
		return *d.region, true
	}
	region, ok := d.provider.RegionBounds()
	if !ok {
		return scene.Region{}, false
	}
	d.region = &region
	return region, true
}

// drainLocked destroys the current ledger before anything else may run.
func (d *Director) drainLocked(ctx context.Context) {
	if d.result == nil {
		return
	}
	destroyed, err := d.result.Ledger.Reset(d.runner.Instantiator)
	if err != nil {
		d.logger.Warn("some instances failed to destroy during reset", "err", err)
	}
	d.result = nil
	observability.Placement().OnReset(ctx, destroyed)
	d.logger.Debug("ledger drained", "destroyed", destroyed)
}

// runLocked executes a placement pass and records the result.
func (d *Director) runLocked(ctx context.Context, region scene.Region) (*Result, error) {
	result, err := d.runner.Execute(ctx, region, d.opts)
	if err != nil {
		return nil, err
	}
	d.result = result
	return result, nil
}
