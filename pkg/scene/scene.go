// Package scene defines the boundary between the placement engine and the
// world it decorates.
//
// The engine never talks to an engine-specific scene graph directly. It sees
// three narrow capabilities:
//
//   - [RegionProvider]: where the floor is, and a signal that it is ready
//   - [Geometry]: cheap footprint estimates and exact post-spawn measurement
//   - [Instantiator]: create and destroy live object instances
//
// Any backend can implement these - mesh bounds, static metadata, or a
// physics query. [StaticScene] is the in-memory implementation used by the
// CLI, the debug server, and the test suite.
package scene

import (
	"fmt"

	"github.com/matzehuels/roomscatter/pkg/geom"
)

// Region is the axis-aligned floor area objects are placed within.
// It is immutable for the duration of one placement run and replaced
// wholesale when the room changes.
type Region struct {
	Min    geom.Vec3 `json:"min"`
	Max    geom.Vec3 `json:"max"`
	FloorY float64   `json:"floor_y"`
}

// Validate checks the region invariant: a strictly positive XZ area.
func (r Region) Validate() error {
	if r.Min.X >= r.Max.X {
		return fmt.Errorf("region min.x (%.3f) must be less than max.x (%.3f)", r.Min.X, r.Max.X)
	}
	if r.Min.Z >= r.Max.Z {
		return fmt.Errorf("region min.z (%.3f) must be less than max.z (%.3f)", r.Min.Z, r.Max.Z)
	}
	return nil
}

// Width returns the region extent along X.
func (r Region) Width() float64 { return r.Max.X - r.Min.X }

// Depth returns the region extent along Z.
func (r Region) Depth() float64 { return r.Max.Z - r.Min.Z }

// Area returns the floor area in square length-units.
func (r Region) Area() float64 { return r.Width() * r.Depth() }

// CenterXZ returns the horizontal center of the region at floor height.
func (r Region) CenterXZ() geom.Vec3 {
	return geom.Vec3{
		X: (r.Min.X + r.Max.X) / 2,
		Y: r.FloorY,
		Z: (r.Min.Z + r.Max.Z) / 2,
	}
}

// ItemTemplate describes one spawnable object kind.
type ItemTemplate struct {
	// ID is the template identifier referenced by category configuration.
	ID string `json:"id"`

	// Size is the nominal full bounding-box size (X, Y, Z).
	Size geom.Vec3 `json:"size"`

	// PivotOffset is the vertical distance from the instance pivot to the
	// bottom of its geometry. Zero means the pivot sits on the bottom face.
	PivotOffset float64 `json:"pivot_offset,omitempty"`
}

// InstanceHandle identifies one live instance owned by an Instantiator.
type InstanceHandle string

// RegionProvider supplies the current floor region, if one has been
// discovered yet.
type RegionProvider interface {
	// RegionBounds returns the active region. ok is false before the first
	// room discovery.
	RegionBounds() (Region, bool)
}

// Geometry measures footprints. Estimates are cheap and may diverge from
// the geometry of a live instance; both sides are validated by the engine.
type Geometry interface {
	// EstimateFootprint returns a pre-instantiation footprint for a
	// template, centered at the origin.
	EstimateFootprint(tmpl ItemTemplate) (geom.Box, error)

	// MeasureFootprint returns the exact world-space footprint of a live
	// instance.
	MeasureFootprint(h InstanceHandle) (geom.Box, error)
}

// Instantiator creates and destroys live instances. Calls are synchronous
// and side-effecting; the engine never reorders them.
type Instantiator interface {
	// Create spawns an instance of tmpl at pos with the given yaw
	// (quarter turns about the vertical axis).
	Create(tmpl ItemTemplate, pos geom.Vec3, quarterTurns int) (InstanceHandle, error)

	// Move repositions a live instance. Used for floor alignment after
	// exact geometry is known.
	Move(h InstanceHandle, pos geom.Vec3) error

	// Destroy removes a previously created instance. Destroying an unknown
	// handle is an error.
	Destroy(h InstanceHandle) error
}

// ReadySignal is a minimal observer for the "region ready" event. The
// provider fires it at most once per room-discovery cycle; it may re-fire
// when the room changes.
type ReadySignal struct {
	subs []func(Region)
}

// Subscribe registers fn to run on every announcement. Not safe for
// concurrent use with Announce; wiring happens at startup.
func (s *ReadySignal) Subscribe(fn func(Region)) {
	if fn != nil {
		s.subs = append(s.subs, fn)
	}
}

// Announce fires the signal, invoking subscribers in registration order.
func (s *ReadySignal) Announce(r Region) {
	for _, fn := range s.subs {
		fn(r)
	}
}
