package floorplan

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/roomscatter/pkg/scatter"
)

// categoryPalette cycles per category, matching the CLI preview colors.
var categoryPalette = []string{
	"#4fb3bf", // teal
	"#c98bdb", // violet
	"#8bc34a", // green
	"#ffb74d", // amber
	"#e57373", // red
	"#64b5f6", // blue
}

const floorFill = "#f7f4ee"
const wallStroke = "#4a4a4a"

// SVGOption configures the SVG renderer.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale     float64 // pixels per length unit
	labels    bool
	clearance float64 // dashed inset guide, 0 disables
	margin    float64 // frame margin in pixels
}

// WithScale sets the pixels-per-length-unit scale (default 60).
func WithScale(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }

// WithLabels draws template IDs inside item boxes.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithClearanceGuide draws a dashed inset rectangle at the given clearance.
func WithClearanceGuide(c float64) SVGOption { return func(r *svgRenderer) { r.clearance = c } }

// RenderSVG renders a plan as a top-down floor plan.
func RenderSVG(p *Plan, opts ...SVGOption) []byte {
	r := svgRenderer{scale: 60, margin: 20}
	for _, opt := range opts {
		opt(&r)
	}

	w := p.Region.Width()*r.scale + 2*r.margin
	h := p.Region.Depth()*r.scale + 2*r.margin

	// World X maps to SVG x, world Z to SVG y.
	toX := func(x float64) float64 { return r.margin + (x-p.Region.Min.X)*r.scale }
	toY := func(z float64) float64 { return r.margin + (z-p.Region.Min.Z)*r.scale }

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)

	// Floor
	fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
		toX(p.Region.Min.X), toY(p.Region.Min.Z), p.Region.Width()*r.scale, p.Region.Depth()*r.scale, floorFill, wallStroke)

	// Clearance guide
	if r.clearance > 0 {
		cw := (p.Region.Width() - 2*r.clearance) * r.scale
		ch := (p.Region.Depth() - 2*r.clearance) * r.scale
		if cw > 0 && ch > 0 {
			fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="1" stroke-dasharray="4 3" opacity="0.5"/>`+"\n",
				toX(p.Region.Min.X+r.clearance), toY(p.Region.Min.Z+r.clearance), cw, ch, wallStroke)
		}
	}

	// Items, colored per category in first-seen order.
	colorFor := make(map[string]string)
	for _, item := range p.Items {
		if _, ok := colorFor[item.CategoryID]; !ok {
			colorFor[item.CategoryID] = categoryPalette[len(colorFor)%len(categoryPalette)]
		}
		renderItem(&buf, &r, item, colorFor[item.CategoryID], toX, toY)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderItem(buf *bytes.Buffer, r *svgRenderer, item *scatter.PlacedItem, color string, toX, toY func(float64) float64) {
	min := item.Footprint.Min()
	x := toX(min.X)
	y := toY(min.Z)
	w := item.Footprint.SizeX() * r.scale
	h := item.Footprint.SizeZ() * r.scale

	fmt.Fprintf(buf, `  <g id="item-%s">`+"\n", item.ID)
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="0.75" stroke="%s" stroke-width="1.5" rx="2">`+"\n",
		x, y, w, h, color, wallStroke)
	fmt.Fprintf(buf, "      <title>%s (%s, %s tier) at %.2f, %.2f</title>\n",
		item.TemplateID, item.CategoryID, item.Tier, item.Position.X, item.Position.Z)
	buf.WriteString("    </rect>\n")

	if r.labels && w > 30 {
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" fill="#333">%s</text>`+"\n",
			x+w/2, y+h/2, clamp(w/6, 8, 13), item.TemplateID)
	}
	buf.WriteString("  </g>\n")
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
