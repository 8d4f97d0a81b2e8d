// Package config loads placement configuration from TOML files.
//
// A scene file declares the item templates, the weighted categories that
// reference them, placement tuning knobs, and optionally a fixed region for
// CLI use:
//
//	seed = 7
//
//	[placement]
//	per_item_attempt_cap = 20
//	absolute_cap = 100
//	avg_item_radius = 0.5
//
//	[region]
//	min = [0.0, 0.0, 0.0]
//	max = [8.0, 0.0, 6.0]
//	floor_y = 0.0
//
//	[[item]]
//	id = "armchair"
//	size = [0.9, 1.0, 0.85]
//
//	[[category]]
//	id = "seating"
//	items = ["armchair"]
//	min = 1
//	max = 6
//	clearance = 0.25
//
// Unknown item references and malformed records are rejected at load time;
// the engine never sees a half-valid configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	apperrors "github.com/matzehuels/roomscatter/pkg/errors"
	"github.com/matzehuels/roomscatter/pkg/geom"
	"github.com/matzehuels/roomscatter/pkg/scatter"
	"github.com/matzehuels/roomscatter/pkg/scene"
)

// Config is the root of a scene TOML file.
type Config struct {
	Seed       uint64      `toml:"seed"`
	Placement  Placement   `toml:"placement"`
	Region     *RegionSpec `toml:"region"`
	Scene      SceneSpec   `toml:"scene"`
	Items      []ItemSpec  `toml:"item"`
	Categories []CatSpec   `toml:"category"`
}

// Placement holds the engine tuning knobs. Zero values fall back to the
// scatter package defaults.
type Placement struct {
	PerItemAttemptCap int     `toml:"per_item_attempt_cap"`
	AbsoluteCap       int     `toml:"absolute_cap"`
	AvgItemRadius     float64 `toml:"avg_item_radius"`
	SamplesPerTier    int     `toml:"samples_per_tier"`

	// DebugPreview draws a terminal floor-plan grid after every CLI run,
	// same as passing --preview.
	DebugPreview bool `toml:"debug_preview"`
}

// RegionSpec is an optional fixed floor region for CLI runs.
type RegionSpec struct {
	Min    [3]float64 `toml:"min"`
	Max    [3]float64 `toml:"max"`
	FloorY float64    `toml:"floor_y"`
}

// SceneSpec tunes the in-memory static scene backend.
type SceneSpec struct {
	// MeasureJitter perturbs measured footprints by up to this fraction
	// per axis, exercising the estimate-vs-exact validation split.
	MeasureJitter float64 `toml:"measure_jitter"`
}

// ItemSpec declares one spawnable template.
type ItemSpec struct {
	ID          string     `toml:"id"`
	Size        [3]float64 `toml:"size"`
	PivotOffset float64    `toml:"pivot_offset"`
}

// CatSpec declares one placement category by template reference.
type CatSpec struct {
	ID        string   `toml:"id"`
	Items     []string `toml:"items"`
	Min       int      `toml:"min"`
	Max       int      `toml:"max"`
	Clearance float64  `toml:"clearance"`
}

// Load reads and validates a scene configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, err, "read config %s", path)
	}
	return Parse(string(data))
}

// Parse decodes and validates scene configuration from TOML text.
func Parse(text string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Scene.MeasureJitter < 0 || c.Scene.MeasureJitter >= 1 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "scene.measure_jitter must be in [0, 1)")
	}

	byID := make(map[string]bool, len(c.Items))
	for i := range c.Items {
		if err := apperrors.ValidateIdentifier(c.Items[i].ID); err != nil {
			return err
		}
		if byID[c.Items[i].ID] {
			return apperrors.New(apperrors.ErrCodeInvalidConfig, "duplicate item id %q", c.Items[i].ID)
		}
		byID[c.Items[i].ID] = true
	}

	for i := range c.Categories {
		for _, ref := range c.Categories[i].Items {
			if !byID[ref] {
				return apperrors.New(apperrors.ErrCodeInvalidConfig,
					"category %q references unknown item %q", c.Categories[i].ID, ref)
			}
		}
	}

	// Full category validation (counts, clearance, ids) happens through
	// scatter.Options so the rules live in one place.
	opts, err := c.Options()
	if err != nil {
		return err
	}
	_ = opts

	if c.Region != nil {
		if _, err := c.ResolveRegion(); err != nil {
			return err
		}
	}
	return nil
}

// Template returns the declared template for an item id.
func (c *Config) Template(id string) (scene.ItemTemplate, bool) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return scene.ItemTemplate{
				ID:          c.Items[i].ID,
				Size:        geom.Vec3{X: c.Items[i].Size[0], Y: c.Items[i].Size[1], Z: c.Items[i].Size[2]},
				PivotOffset: c.Items[i].PivotOffset,
			}, true
		}
	}
	return scene.ItemTemplate{}, false
}

// Options assembles validated engine options from the configuration.
func (c *Config) Options() (scatter.Options, error) {
	opts := scatter.Options{
		Seed:              c.Seed,
		PerItemAttemptCap: c.Placement.PerItemAttemptCap,
		AbsoluteCap:       c.Placement.AbsoluteCap,
		AvgItemRadius:     c.Placement.AvgItemRadius,
		SamplesPerTier:    c.Placement.SamplesPerTier,
	}

	for _, cs := range c.Categories {
		cat := scatter.Category{
			ID:        cs.ID,
			MinCount:  cs.Min,
			MaxCount:  cs.Max,
			Clearance: cs.Clearance,
		}
		for _, ref := range cs.Items {
			tmpl, ok := c.Template(ref)
			if !ok {
				return scatter.Options{}, apperrors.New(apperrors.ErrCodeInvalidConfig,
					"category %q references unknown item %q", cs.ID, ref)
			}
			cat.Items = append(cat.Items, tmpl)
		}
		opts.Categories = append(opts.Categories, cat)
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return scatter.Options{}, err
	}
	return opts, nil
}

// ResolveRegion returns the configured fixed region. Returns an error when
// the file declares no region or an invalid one.
func (c *Config) ResolveRegion() (scene.Region, error) {
	if c.Region == nil {
		return scene.Region{}, apperrors.New(apperrors.ErrCodeNoRegion, "config declares no region")
	}
	region := scene.Region{
		Min:    geom.Vec3{X: c.Region.Min[0], Y: c.Region.Min[1], Z: c.Region.Min[2]},
		Max:    geom.Vec3{X: c.Region.Max[0], Y: c.Region.Max[1], Z: c.Region.Max[2]},
		FloorY: c.Region.FloorY,
	}
	if err := region.Validate(); err != nil {
		return scene.Region{}, apperrors.Wrap(apperrors.ErrCodeInvalidRegion, err, "config region")
	}
	return region, nil
}

// Fingerprint returns a stable hash input describing the category
// configuration, used in plan cache keys.
func (c *Config) Fingerprint() string {
	return fmt.Sprintf("%+v|%+v|%+v", c.Placement, c.Items, c.Categories)
}
