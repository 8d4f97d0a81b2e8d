package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roomscatter/pkg/cache"
	"github.com/matzehuels/roomscatter/pkg/config"
	"github.com/matzehuels/roomscatter/pkg/errors"
	"github.com/matzehuels/roomscatter/pkg/render/floorplan"
	"github.com/matzehuels/roomscatter/pkg/scatter"
	"github.com/matzehuels/roomscatter/pkg/scene"
)

// placeOpts holds the command-line flags for the place command.
type placeOpts struct {
	output  string // plan JSON output path ("" means stdout summary only)
	svg     string // floor-plan SVG output path
	seed    uint64 // seed override (0 means use the config's seed)
	noCache bool   // bypass the estimate cache
	labels  bool   // draw item labels in the SVG
	watch   bool   // show live placement progress TUI
	preview bool   // draw a terminal floor-plan preview after the run
}

// placeCommand creates the place command, the main entry point of the tool.
// It loads a scene configuration, runs the placement engine against the
// configured region, and writes plan artifacts.
func (c *CLI) placeCommand() *cobra.Command {
	var opts placeOpts

	cmd := &cobra.Command{
		Use:   "place [config]",
		Short: "Run the placement engine for a scene configuration",
		Long: `Place loads a TOML scene configuration, plans a target object count per
category from the region's floor area, and commits placements that satisfy
boundary and separation constraints. Constraints relax in tiers when the
region fills up, so crowded rooms degrade gracefully instead of failing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "" {
				if err := errors.ValidateOutputPath(opts.output); err != nil {
					return err
				}
			}
			if opts.svg != "" {
				if err := errors.ValidateOutputPath(opts.svg); err != nil {
					return err
				}
			}
			return c.runPlace(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the plan JSON to this path")
	cmd.Flags().StringVar(&opts.svg, "svg", "", "write a floor-plan SVG to this path")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "override the configuration seed")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the footprint estimate cache")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw item labels in the SVG")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "show live placement progress")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "draw a floor-plan preview in the terminal")

	return cmd
}

// runPlace executes the placement pipeline for one configuration file.
func (c *CLI) runPlace(ctx context.Context, path string, opts *placeOpts) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}

	region, err := cfg.ResolveRegion()
	if err != nil {
		return err
	}

	scatterOpts, err := cfg.Options()
	if err != nil {
		return err
	}
	scatterOpts.Logger = c.Logger

	sc := newScene(cfg)
	runner, err := c.newRunner(sc, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	director, err := scatter.NewDirector(runner, sc, scatterOpts)
	if err != nil {
		return err
	}

	sc.SetRegion(region)

	var result *scatter.Result
	if opts.watch {
		result, err = runWatched(ctx, director, region, &scatterOpts)
		if err == context.Canceled {
			printError("Placement interrupted")
			return nil
		}
	} else {
		prog := newProgress(loggerFromContext(ctx))
		result, err = director.HandleRegionReady(ctx, region)
		if result != nil {
			prog.done(fmt.Sprintf("Placed %d items", result.Stats.TotalPlaced))
		}
	}
	if err != nil {
		return err
	}

	printPlaceSummary(region, result)

	plan := floorplan.NewPlan(region, scatterOpts.Seed, result)
	if opts.preview || cfg.Placement.DebugPreview {
		printNewline()
		printPreview(plan)
	}
	storePlan(ctx, runner, cfg, plan)

	if opts.output != "" {
		if err := writePlan(plan, opts.output); err != nil {
			return err
		}
		printFile(opts.output)
	}
	if opts.svg != "" {
		if err := writeSVG(plan, opts.svg, opts.labels, maxClearance(scatterOpts.Categories)); err != nil {
			return err
		}
		printFile(opts.svg)
	}
	if opts.output != "" && opts.svg == "" {
		printNextStep("Render it", fmt.Sprintf("roomscatter render %s -o plan.svg", opts.output))
	}

	return nil
}

// printPlaceSummary prints the styled run summary.
func printPlaceSummary(region scene.Region, result *scatter.Result) {
	if result.Stats.TotalPlaced == 0 {
		printWarning("No objects placed")
	} else {
		printSuccess("Placement complete")
	}
	printKeyValue("Region", fmt.Sprintf("%.1f × %.1f", region.Width(), region.Depth()))
	printKeyValue("Duration", result.Stats.Duration.Round(time.Millisecond).String())
	printStats(result.Stats.TotalPlaced, result.Stats.TotalAttempts, false)

	for _, cr := range result.Categories {
		note := tierNote(cr)
		printCategoryLine(cr.CategoryID, cr.Placed, cr.Target, note)
	}
}

// tierNote summarizes a category outcome for display.
func tierNote(cr scatter.CategoryResult) string {
	switch {
	case cr.Skipped:
		return "skipped"
	case cr.Infeasible:
		return "infeasible"
	}
	var parts []string
	for _, tier := range []string{"relaxed", "forced"} {
		if n := cr.TierCommits[tier]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, tier))
		}
	}
	return strings.Join(parts, ", ")
}

// storePlan persists the plan artifact through the runner's cache so
// identical runs stay retrievable and `cache info` accounts for them.
// Caching is best-effort; a write failure never fails the run.
func storePlan(ctx context.Context, runner *scatter.Runner, cfg *config.Config, plan *floorplan.Plan) {
	data, err := floorplan.MarshalPlan(plan)
	if err != nil {
		return
	}
	key := runner.Keyer.PlanKey(cache.PlanKeyOpts{
		RegionHash: regionHash(plan.Region),
		ConfigHash: cfg.Fingerprint(),
		Seed:       plan.Seed,
	})
	_ = runner.Cache.Set(ctx, key, data, cache.TTLPlan)
}

// regionHash fingerprints the region bounds and floor height.
func regionHash(region scene.Region) string {
	data, _ := json.Marshal(region)
	return cache.Hash(data)
}

// maxClearance returns the widest configured clearance, for the SVG guide.
func maxClearance(cats []scatter.Category) float64 {
	var m float64
	for _, cat := range cats {
		if cat.Clearance > m {
			m = cat.Clearance
		}
	}
	return m
}

// writePlan serializes a plan document to path as indented JSON.
func writePlan(plan *floorplan.Plan, path string) error {
	data, err := floorplan.MarshalPlan(plan)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// writeSVG renders a plan as a floor-plan SVG and writes it to path.
func writeSVG(plan *floorplan.Plan, path string, labels bool, clearance float64) error {
	var svgOpts []floorplan.SVGOption
	if labels {
		svgOpts = append(svgOpts, floorplan.WithLabels())
	}
	if clearance > 0 {
		svgOpts = append(svgOpts, floorplan.WithClearanceGuide(clearance))
	}
	return os.WriteFile(path, floorplan.RenderSVG(plan, svgOpts...), 0o644)
}
