// Package geom provides the small amount of vector and box math the
// placement engine needs.
//
// Everything here is axis-aligned and float64. Footprints are represented
// as center/extents boxes ([Box]) because that is the form both estimated
// and measured geometry arrive in; helpers convert to min/max corners where
// interval math is easier to read.
package geom

import "math"

// Vec3 is a 3D vector. Y is up; placement itself happens on the XZ plane.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// DistXZ returns the Euclidean distance between v and w projected onto the
// XZ plane. Height differences are ignored.
func (v Vec3) DistXZ(w Vec3) float64 {
	dx := v.X - w.X
	dz := v.Z - w.Z
	return math.Sqrt(dx*dx + dz*dz)
}

// Box is an axis-aligned bounding box stored as center + half-extents.
type Box struct {
	Center  Vec3 `json:"center"`
	Extents Vec3 `json:"extents"` // half-sizes, always >= 0
}

// NewBox builds a box from a center and full sizes.
func NewBox(center Vec3, sizeX, sizeY, sizeZ float64) Box {
	return Box{
		Center:  center,
		Extents: Vec3{sizeX / 2, sizeY / 2, sizeZ / 2},
	}
}

// Min returns the minimum corner.
func (b Box) Min() Vec3 {
	return Vec3{b.Center.X - b.Extents.X, b.Center.Y - b.Extents.Y, b.Center.Z - b.Extents.Z}
}

// Max returns the maximum corner.
func (b Box) Max() Vec3 {
	return Vec3{b.Center.X + b.Extents.X, b.Center.Y + b.Extents.Y, b.Center.Z + b.Extents.Z}
}

// SizeX returns the full extent along X.
func (b Box) SizeX() float64 { return 2 * b.Extents.X }

// SizeY returns the full extent along Y.
func (b Box) SizeY() float64 { return 2 * b.Extents.Y }

// SizeZ returns the full extent along Z.
func (b Box) SizeZ() float64 { return 2 * b.Extents.Z }

// RadiusXZ returns half the larger of the X/Z sizes. Separation checks use
// this circumscribing-radius approximation instead of true box intersection.
func (b Box) RadiusXZ() float64 {
	return math.Max(b.Extents.X, b.Extents.Z)
}

// At returns a copy of b recentered at p.
func (b Box) At(p Vec3) Box {
	b.Center = p
	return b
}

// Translated returns a copy of b moved by d.
func (b Box) Translated(d Vec3) Box {
	b.Center = b.Center.Add(d)
	return b
}

// RotatedXZ returns the box footprint after a yaw rotation in 90-degree
// steps. Quarter turns swap the X and Z extents; half turns are identity.
func (b Box) RotatedXZ(quarterTurns int) Box {
	if quarterTurns%2 != 0 {
		b.Extents.X, b.Extents.Z = b.Extents.Z, b.Extents.X
	}
	return b
}

// InflatedXZ returns a copy of b grown by m on each side in X and Z.
func (b Box) InflatedXZ(m float64) Box {
	b.Extents.X += m
	b.Extents.Z += m
	return b
}

// IntersectsXZ reports whether the XZ projections of b and o overlap.
func (b Box) IntersectsXZ(o Box) bool {
	if b.Min().X >= o.Max().X || o.Min().X >= b.Max().X {
		return false
	}
	if b.Min().Z >= o.Max().Z || o.Min().Z >= b.Max().Z {
		return false
	}
	return true
}

// InsideXZ reports whether the XZ projection of b lies entirely within the
// rectangle [min, max], shrunk by margin on every side.
func (b Box) InsideXZ(min, max Vec3, margin float64) bool {
	return b.Min().X >= min.X+margin &&
		b.Max().X <= max.X-margin &&
		b.Min().Z >= min.Z+margin &&
		b.Max().Z <= max.Z-margin
}
