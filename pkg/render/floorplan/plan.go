package floorplan

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/roomscatter/pkg/scatter"
	"github.com/matzehuels/roomscatter/pkg/scene"
)

// Plan is the canonical serialization format for one placement run.
// Used for CLI artifacts, the debug server, and caching.
type Plan struct {
	Region     scene.Region             `json:"region"`
	Seed       uint64                   `json:"seed"`
	Items      []*scatter.PlacedItem    `json:"items"`
	Categories []scatter.CategoryResult `json:"categories,omitempty"`
}

// NewPlan builds a plan document from a run result.
func NewPlan(region scene.Region, seed uint64, result *scatter.Result) *Plan {
	return &Plan{
		Region:     region,
		Seed:       seed,
		Items:      result.Items,
		Categories: result.Categories,
	}
}

// MarshalPlan serializes a plan as indented JSON.
func MarshalPlan(p *Plan) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// UnmarshalPlan parses a plan document and checks its region invariant.
func UnmarshalPlan(data []byte) (*Plan, error) {
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	if err := p.Region.Validate(); err != nil {
		return nil, fmt.Errorf("plan region: %w", err)
	}
	return &p, nil
}
