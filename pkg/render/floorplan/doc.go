// Package floorplan renders committed placement plans as top-down
// artifacts.
//
// # Overview
//
// A [Plan] bundles the region and the placed items of one run. This package
// provides renderers for:
//
//   - SVG: a top-down floor plan with one box per placed item
//   - JSON: the plan document itself, for external tools and round-trips
//
// # SVG Output
//
// [RenderSVG] produces a scaled floor plan:
//
//	svg := floorplan.RenderSVG(plan,
//	    floorplan.WithScale(80),
//	    floorplan.WithLabels(),
//	)
//
// Items are colored per category; hovering a box shows its template, tier,
// and position. The region outline is drawn with the first category's
// clearance inset as a dashed guide.
//
// # JSON Output
//
// [MarshalPlan] and [UnmarshalPlan] round-trip the plan document. The JSON
// form is what `roomscatter place --plan` writes and `roomscatter render`
// reads back.
package floorplan
