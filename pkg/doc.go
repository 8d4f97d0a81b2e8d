// Package pkg provides the core libraries for Roomscatter procedural placement.
//
// # Overview
//
// Roomscatter fills rectangular floor regions with objects, honoring
// boundary and separation constraints and relaxing them in tiers when a
// room gets crowded. The pkg directory is organized into five main areas:
//
//  1. [scatter] - The placement engine (planning, sampling, validation, commits)
//  2. [scene] - The boundary between the engine and the world it decorates
//  3. [geom] - Axis-aligned vector and box math
//  4. [render/floorplan] - Plan serialization and floor-plan SVG rendering
//  5. [config] - TOML scene configuration
//
// # Architecture
//
// The typical data flow through Roomscatter:
//
//	Scene configuration (TOML)
//	         ↓
//	    [config] package (templates, categories, region)
//	         ↓
//	    [scatter] package (plan targets, sample candidates, validate, commit)
//	         ↓
//	    [scene] package (instantiate, measure, destroy)
//	         ↓
//	    [render/floorplan] package (plan JSON, floor-plan SVG)
//
// # Quick Start
//
// Run a placement pass against the in-memory scene backend:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/roomscatter/pkg/scatter"
//	    "github.com/matzehuels/roomscatter/pkg/scene"
//	)
//
//	// 1. Build a scene and a region
//	sc := scene.NewStaticScene(42)
//	region := scene.Region{Max: geom.Vec3{X: 12, Z: 10}}
//
//	// 2. Configure the engine
//	opts := scatter.Options{Categories: []scatter.Category{...}}
//
//	// 3. Run placement
//	runner := scatter.NewRunner(sc, sc, nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), region, opts)
//
// # Main Packages
//
// [scatter] - The engine proper. TargetCount derives per-category object
// counts from floor area; the runner walks a strict/relaxed/forced
// relaxation ladder per item attempt, validates estimated and measured
// geometry, and records commits in an ordered ledger. The Director owns
// placement state across room changes and operator resets.
//
// [scene] - Narrow interfaces (RegionProvider, Geometry, Instantiator)
// plus StaticScene, the in-memory backend used by the CLI, the debug
// server, and the tests.
//
// [geom] - Vec3 and center/extents boxes with the handful of XZ-plane
// operations placement needs.
//
// [config] - TOML scene files: item templates, categories, engine knobs,
// and an optional fixed region.
//
// [render/floorplan] - The plan document format and a top-down SVG view
// of a placement run.
//
// ## Infrastructure
//
// [cache] - Content-addressed caching of footprint estimates and plan
// artifacts. FileCache for the CLI, NullCache to disable.
//
// [errors] - Structured errors with machine-readable codes.
//
// [observability] - Hook registry for placement and cache events; the
// CLI's live progress view is one consumer.
//
// [buildinfo] - Version information injected via ldflags.
package pkg
