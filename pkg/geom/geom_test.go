package geom

import (
	"math"
	"testing"
)

func TestVec3DistXZ(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want float64
	}{
		{"same point", Vec3{1, 2, 3}, Vec3{1, 2, 3}, 0},
		{"unit x", Vec3{0, 0, 0}, Vec3{1, 0, 0}, 1},
		{"ignores height", Vec3{0, 0, 0}, Vec3{0, 100, 0}, 0},
		{"diagonal", Vec3{0, 0, 0}, Vec3{3, 5, 4}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.DistXZ(tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DistXZ() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxMinMax(t *testing.T) {
	b := NewBox(Vec3{10, 5, -2}, 4, 2, 6)

	min, max := b.Min(), b.Max()
	if min.X != 8 || min.Y != 4 || min.Z != -5 {
		t.Errorf("Min() = %+v", min)
	}
	if max.X != 12 || max.Y != 6 || max.Z != 1 {
		t.Errorf("Max() = %+v", max)
	}
	if b.SizeX() != 4 || b.SizeY() != 2 || b.SizeZ() != 6 {
		t.Errorf("sizes = %v %v %v", b.SizeX(), b.SizeY(), b.SizeZ())
	}
}

func TestBoxRadiusXZ(t *testing.T) {
	b := NewBox(Vec3{}, 2, 10, 6)
	if got := b.RadiusXZ(); got != 3 {
		t.Errorf("RadiusXZ() = %v, want 3 (larger half-extent wins, Y ignored)", got)
	}
}

func TestBoxRotatedXZ(t *testing.T) {
	b := NewBox(Vec3{}, 4, 2, 6)

	tests := []struct {
		quarterTurns int
		wantX, wantZ float64
	}{
		{0, 2, 3},
		{1, 3, 2},
		{2, 2, 3},
		{3, 3, 2},
		{5, 3, 2},
	}

	for _, tt := range tests {
		r := b.RotatedXZ(tt.quarterTurns)
		if r.Extents.X != tt.wantX || r.Extents.Z != tt.wantZ {
			t.Errorf("RotatedXZ(%d) extents = %v/%v, want %v/%v",
				tt.quarterTurns, r.Extents.X, r.Extents.Z, tt.wantX, tt.wantZ)
		}
		if r.Extents.Y != b.Extents.Y {
			t.Errorf("RotatedXZ(%d) changed Y extent", tt.quarterTurns)
		}
	}
}

func TestBoxIntersectsXZ(t *testing.T) {
	base := NewBox(Vec3{0, 0, 0}, 2, 2, 2)

	tests := []struct {
		name  string
		other Box
		want  bool
	}{
		{"overlapping", NewBox(Vec3{0.5, 0, 0.5}, 2, 2, 2), true},
		{"touching edges", NewBox(Vec3{2, 0, 0}, 2, 2, 2), false},
		{"separate", NewBox(Vec3{5, 0, 0}, 2, 2, 2), false},
		{"overlap x only", NewBox(Vec3{0.5, 0, 5}, 2, 2, 2), false},
		{"different heights still intersect", NewBox(Vec3{0, 50, 0}, 2, 2, 2), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.IntersectsXZ(tt.other); got != tt.want {
				t.Errorf("IntersectsXZ() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxInsideXZ(t *testing.T) {
	min, max := Vec3{0, 0, 0}, Vec3{10, 0, 10}

	tests := []struct {
		name   string
		box    Box
		margin float64
		want   bool
	}{
		{"centered", NewBox(Vec3{5, 0, 5}, 2, 2, 2), 0, true},
		{"flush against wall", NewBox(Vec3{1, 0, 5}, 2, 2, 2), 0, true},
		{"margin pushes out", NewBox(Vec3{1, 0, 5}, 2, 2, 2), 0.5, false},
		{"poking through", NewBox(Vec3{9.5, 0, 5}, 2, 2, 2), 0, false},
		{"outside entirely", NewBox(Vec3{20, 0, 5}, 2, 2, 2), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.InsideXZ(min, max, tt.margin); got != tt.want {
				t.Errorf("InsideXZ() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxInflatedXZ(t *testing.T) {
	b := NewBox(Vec3{}, 2, 2, 2).InflatedXZ(0.5)
	if b.Extents.X != 1.5 || b.Extents.Z != 1.5 {
		t.Errorf("InflatedXZ extents = %+v", b.Extents)
	}
	if b.Extents.Y != 1 {
		t.Error("InflatedXZ should not grow Y")
	}
}

func TestBoxAtAndTranslated(t *testing.T) {
	b := NewBox(Vec3{1, 1, 1}, 2, 2, 2)

	moved := b.At(Vec3{5, 6, 7})
	if moved.Center != (Vec3{5, 6, 7}) {
		t.Errorf("At() center = %+v", moved.Center)
	}
	if b.Center != (Vec3{1, 1, 1}) {
		t.Error("At() mutated the receiver")
	}

	shifted := b.Translated(Vec3{1, 0, -1})
	if shifted.Center != (Vec3{2, 1, 0}) {
		t.Errorf("Translated() center = %+v", shifted.Center)
	}
}
