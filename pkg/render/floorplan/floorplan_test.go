package floorplan

import (
	"strings"
	"testing"

	"github.com/matzehuels/roomscatter/pkg/geom"
	"github.com/matzehuels/roomscatter/pkg/scatter"
	"github.com/matzehuels/roomscatter/pkg/scene"
)

func testPlan() *Plan {
	region := scene.Region{Min: geom.Vec3{}, Max: geom.Vec3{X: 10, Z: 8}}
	return &Plan{
		Region: region,
		Seed:   42,
		Items: []*scatter.PlacedItem{
			{
				ID:         "a1",
				CategoryID: "props",
				TemplateID: "crate",
				Position:   geom.Vec3{X: 3, Z: 3},
				Tier:       "strict",
				Footprint:  geom.NewBox(geom.Vec3{X: 3, Y: 0.5, Z: 3}, 1, 1, 1),
			},
			{
				ID:         "b2",
				CategoryID: "plants",
				TemplateID: "fern",
				Position:   geom.Vec3{X: 7, Z: 5},
				Tier:       "relaxed",
				Footprint:  geom.NewBox(geom.Vec3{X: 7, Y: 0.5, Z: 5}, 0.6, 1, 0.6),
			},
		},
	}
}

func TestPlanRoundTrip(t *testing.T) {
	data, err := MarshalPlan(testPlan())
	if err != nil {
		t.Fatalf("MarshalPlan error: %v", err)
	}

	got, err := UnmarshalPlan(data)
	if err != nil {
		t.Fatalf("UnmarshalPlan error: %v", err)
	}

	if got.Seed != 42 {
		t.Errorf("Seed = %d", got.Seed)
	}
	if len(got.Items) != 2 {
		t.Fatalf("Items = %d", len(got.Items))
	}
	if got.Items[0].TemplateID != "crate" || got.Items[0].Position.X != 3 {
		t.Errorf("item 0 = %+v", got.Items[0])
	}
	if got.Region.Width() != 10 {
		t.Errorf("region = %+v", got.Region)
	}
}

func TestUnmarshalPlanRejectsBadInput(t *testing.T) {
	if _, err := UnmarshalPlan([]byte("{not json")); err == nil {
		t.Error("malformed JSON should fail")
	}

	// Valid JSON, degenerate region.
	if _, err := UnmarshalPlan([]byte(`{"region":{"min":{},"max":{}},"items":[]}`)); err == nil {
		t.Error("degenerate region should fail")
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testPlan()))

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatal("output is not a complete SVG document")
	}
	// One floor rect plus one per item.
	if got := strings.Count(svg, "<rect"); got != 3 {
		t.Errorf("rect count = %d, want 3", got)
	}
	if !strings.Contains(svg, `id="item-a1"`) || !strings.Contains(svg, `id="item-b2"`) {
		t.Error("items should render as identified groups")
	}
	if !strings.Contains(svg, "crate (props, strict tier)") {
		t.Error("tooltip should carry template, category, and tier")
	}
	// Labels are off by default.
	if strings.Contains(svg, "<text") {
		t.Error("labels should not render unless requested")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	withLabels := string(RenderSVG(testPlan(), WithLabels(), WithScale(100)))
	if !strings.Contains(withLabels, ">crate</text>") {
		t.Error("labels should render when requested")
	}

	withGuide := string(RenderSVG(testPlan(), WithClearanceGuide(0.5)))
	if !strings.Contains(withGuide, "stroke-dasharray") {
		t.Error("clearance guide should render as a dashed rect")
	}

	// A guide wider than the region is silently dropped.
	noGuide := string(RenderSVG(testPlan(), WithClearanceGuide(6)))
	if strings.Contains(noGuide, "stroke-dasharray") {
		t.Error("oversized clearance guide should be skipped")
	}
}

func TestRenderSVGDistinctCategoryColors(t *testing.T) {
	svg := string(RenderSVG(testPlan()))
	if !strings.Contains(svg, categoryPalette[0]) || !strings.Contains(svg, categoryPalette[1]) {
		t.Error("each category should get its own palette color")
	}
}
