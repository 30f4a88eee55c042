package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func TestBoxContains(t *testing.T) {
	b := NewBox(r3.Vector{X: 1, Y: 2, Z: 3}, IdentityQuat, r3.Vector{X: 0.5, Y: 0.5, Z: 0.5})

	cases := []struct {
		name string
		p    r3.Vector
		want bool
	}{
		{"center", r3.Vector{X: 1, Y: 2, Z: 3}, true},
		{"on face", r3.Vector{X: 1.5, Y: 2, Z: 3}, true},
		{"outside", r3.Vector{X: 1.6, Y: 2, Z: 3}, false},
		{"outside far z", r3.Vector{X: 1, Y: 2, Z: 4}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.Contains(tc.p); got != tc.want {
				t.Errorf("Contains(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestBoxWorldAABBRotated45(t *testing.T) {
	q := QuatFromAxisAngle(r3.Vector{Z: 1}, math.Pi/4)
	b := NewBox(r3.Vector{}, q, r3.Vector{X: 1, Y: 1, Z: 1})
	aabb := b.WorldAABB()
	want := math.Sqrt2
	if math.Abs(aabb.Max.X-want) > 1e-9 || math.Abs(aabb.Max.Y-want) > 1e-9 {
		t.Errorf("WorldAABB() = %+v, want half-extent %.6f on x and y", aabb, want)
	}
	if math.Abs(aabb.Max.Z-1) > 1e-9 {
		t.Errorf("WorldAABB() z half-extent = %v, want 1 (rotation about Z doesn't change z extent)", aabb.Max.Z)
	}
}

func TestRotateVectorRoundTrip(t *testing.T) {
	q := QuatFromTwoVectors(r3.Vector{Z: 1}, r3.Vector{X: 1, Z: 1}.Normalize())
	v := r3.Vector{X: 0, Y: 0, Z: 1}
	rotated := RotateVector(q, v)
	back := InverseRotateVector(q, rotated)
	if back.Sub(v).Norm() > 1e-9 {
		t.Errorf("round trip rotation mismatch: got %v, want %v", back, v)
	}
}

func TestQuatFromTwoVectorsAlignsNormal(t *testing.T) {
	normal := r3.Vector{X: 0.2, Y: 0.1, Z: 1}.Normalize()
	q := QuatFromTwoVectors(r3.Vector{Z: 1}, normal)
	got := RotateVector(q, r3.Vector{Z: 1})
	if got.Sub(normal).Norm() > 1e-9 {
		t.Errorf("RotateVector(QuatFromTwoVectors(z, n), z) = %v, want %v", got, normal)
	}
}
