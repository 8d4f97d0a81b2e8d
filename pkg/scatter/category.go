package scatter

import (
	"github.com/matzehuels/roomscatter/pkg/errors"
	"github.com/matzehuels/roomscatter/pkg/scene"
)

// Category is one weighted group of spawnable objects. Placement draws
// uniformly from Items; MinCount and MaxCount bound how many objects the
// planner aims for, and Clearance is the safety margin kept between an
// object and both the region boundary and other objects.
type Category struct {
	ID string `json:"id"`

	// Items are the candidate templates. An empty set means the category
	// is skipped at run time - a configuration gap, not an error.
	Items []scene.ItemTemplate `json:"items"`

	MinCount  int     `json:"min_count"`
	MaxCount  int     `json:"max_count"`
	Clearance float64 `json:"clearance"`
}

// Validate checks the category invariants.
func (c *Category) Validate() error {
	if err := errors.ValidateIdentifier(c.ID); err != nil {
		return err
	}
	if c.MinCount < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "category %q: min_count cannot be negative", c.ID)
	}
	if c.MaxCount < c.MinCount {
		return errors.New(errors.ErrCodeInvalidConfig,
			"category %q: max_count (%d) cannot be less than min_count (%d)", c.ID, c.MaxCount, c.MinCount)
	}
	if c.Clearance < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "category %q: clearance cannot be negative", c.ID)
	}
	for i := range c.Items {
		if err := errors.ValidateIdentifier(c.Items[i].ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidTemplate, err, "category %q item %d", c.ID, i)
		}
		if c.Items[i].Size.X <= 0 || c.Items[i].Size.Y <= 0 || c.Items[i].Size.Z <= 0 {
			return errors.New(errors.ErrCodeInvalidTemplate,
				"category %q: template %q has non-positive size", c.ID, c.Items[i].ID)
		}
	}
	return nil
}
