package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roomscatter/pkg/errors"
	"github.com/matzehuels/roomscatter/pkg/render/floorplan"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string  // output SVG path (defaults to the plan path with .svg)
	scale     float64 // pixels per world unit
	labels    bool    // draw item labels
	clearance float64 // draw a dashed clearance guide inset by this much
}

// renderCommand creates the render command for turning saved plans into
// floor-plan SVGs.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [plan]",
		Short: "Render a placement plan as a floor-plan SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "" {
				if err := errors.ValidateOutputPath(opts.output); err != nil {
					return err
				}
			}
			return c.runRender(args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output SVG path (default: plan path with .svg)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "pixels per world unit")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw item labels")
	cmd.Flags().Float64Var(&opts.clearance, "clearance", 0, "draw a dashed clearance guide inset by this much")

	return cmd
}

// runRender reads a plan document and writes its SVG rendering.
func (c *CLI) runRender(path string, opts *renderOpts) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNotFound, err, "read plan %s", path)
	}

	plan, err := floorplan.UnmarshalPlan(data)
	if err != nil {
		return err
	}

	var svgOpts []floorplan.SVGOption
	if opts.scale > 0 {
		svgOpts = append(svgOpts, floorplan.WithScale(opts.scale))
	}
	if opts.labels {
		svgOpts = append(svgOpts, floorplan.WithLabels())
	}
	if opts.clearance > 0 {
		svgOpts = append(svgOpts, floorplan.WithClearanceGuide(opts.clearance))
	}

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".svg"
	}

	if err := os.WriteFile(out, floorplan.RenderSVG(plan, svgOpts...), 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}

	printSuccess("Rendered %d items", len(plan.Items))
	printFile(out)
	return nil
}
