package scene

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/roomscatter/pkg/geom"
)

// StaticScene is an in-memory scene backed by declared template dimensions.
// Estimates come straight from the template size; measured footprints can be
// perturbed by a configurable jitter to exercise the estimate-vs-exact
// validation split the way real mesh bounds would.
type StaticScene struct {
	mu        sync.Mutex
	region    *Region
	ready     ReadySignal
	instances map[InstanceHandle]*instance

	// MeasureJitter expands or shrinks measured extents by up to this
	// fraction per axis. Zero means measurement matches the estimate.
	MeasureJitter float64

	// FailEveryN makes every Nth Create call fail, for exercising the
	// instantiation-failure path. Zero disables it.
	FailEveryN int

	rng     *rand.Rand
	creates int
}

type instance struct {
	tmpl    ItemTemplate
	pos     geom.Vec3
	quarter int
	jitter  geom.Vec3 // per-instance measured-size deviation, full sizes
}

// NewStaticScene creates an empty static scene. The seed drives measurement
// jitter so test runs stay reproducible.
func NewStaticScene(seed uint64) *StaticScene {
	return &StaticScene{
		instances: make(map[InstanceHandle]*instance),
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// SetRegion installs a region and announces it to subscribers.
func (s *StaticScene) SetRegion(r Region) {
	s.mu.Lock()
	s.region = &r
	s.mu.Unlock()
	s.ready.Announce(r)
}

// Ready exposes the region-ready signal for subscription.
func (s *StaticScene) Ready() *ReadySignal { return &s.ready }

// RegionBounds implements RegionProvider.
func (s *StaticScene) RegionBounds() (Region, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.region == nil {
		return Region{}, false
	}
	return *s.region, true
}

// EstimateFootprint implements Geometry. The estimate is the declared
// template size centered at the origin.
func (s *StaticScene) EstimateFootprint(tmpl ItemTemplate) (geom.Box, error) {
	if tmpl.Size.X <= 0 || tmpl.Size.Y <= 0 || tmpl.Size.Z <= 0 {
		return geom.Box{}, fmt.Errorf("template %q has non-positive size", tmpl.ID)
	}
	return geom.NewBox(geom.Vec3{}, tmpl.Size.X, tmpl.Size.Y, tmpl.Size.Z), nil
}

// Create implements Instantiator.
func (s *StaticScene) Create(tmpl ItemTemplate, pos geom.Vec3, quarterTurns int) (InstanceHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creates++
	if s.FailEveryN > 0 && s.creates%s.FailEveryN == 0 {
		return "", fmt.Errorf("create %q: simulated instantiation failure", tmpl.ID)
	}

	var jitter geom.Vec3
	if s.MeasureJitter > 0 {
		j := func() float64 { return (s.rng.Float64()*2 - 1) * s.MeasureJitter }
		jitter = geom.Vec3{X: tmpl.Size.X * j(), Y: tmpl.Size.Y * j(), Z: tmpl.Size.Z * j()}
	}

	h := InstanceHandle(uuid.NewString())
	s.instances[h] = &instance{tmpl: tmpl, pos: pos, quarter: quarterTurns, jitter: jitter}
	return h, nil
}

// Destroy implements Instantiator.
func (s *StaticScene) Destroy(h InstanceHandle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.instances[h]; !ok {
		return fmt.Errorf("destroy: unknown instance %q", h)
	}
	delete(s.instances, h)
	return nil
}

// MeasureFootprint implements Geometry. The measured box is the declared
// size plus the instance's jitter, rotated by its yaw and centered so the
// instance pivot sits PivotOffset above the bottom face.
func (s *StaticScene) MeasureFootprint(h InstanceHandle) (geom.Box, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, ok := s.instances[h]
	if !ok {
		return geom.Box{}, fmt.Errorf("measure: unknown instance %q", h)
	}

	size := in.tmpl.Size.Add(in.jitter)
	center := in.pos
	center.Y = in.pos.Y - in.tmpl.PivotOffset + size.Y/2
	box := geom.NewBox(center, size.X, size.Y, size.Z)
	return box.RotatedXZ(in.quarter), nil
}

// Move repositions a live instance. Placement uses this for floor alignment
// after measuring the spawned geometry.
func (s *StaticScene) Move(h InstanceHandle, pos geom.Vec3) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.instances[h]
	if !ok {
		return fmt.Errorf("move: unknown instance %q", h)
	}
	in.pos = pos
	return nil
}

// InstanceCount returns the number of live instances.
func (s *StaticScene) InstanceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.instances)
}
