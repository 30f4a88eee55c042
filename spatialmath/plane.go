package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Plane is a point-normal representation of a 3D hyperplane, the Go
// equivalent of Eigen::Hyperplane<double,3> used throughout the
// traversability generator this package is grounded on.
type Plane struct {
	Point  r3.Vector
	Normal r3.Vector // unit length
}

// NewPlane returns a plane through point with the given normal, normalized.
func NewPlane(point, normal r3.Vector) Plane {
	return Plane{Point: point, Normal: normal.Normalize()}
}

// SignedDistance returns the signed distance from p to the plane along its
// normal; positive means p is on the side the normal points to.
func (p Plane) SignedDistance(pt r3.Vector) float64 {
	return pt.Sub(p.Point).Dot(p.Normal)
}

// HeightAt intersects the vertical line through (x, y) with the plane and
// returns the resulting z, mirroring the original's re-projection of a
// trav-node's height onto its fitted plane. ok is false if the plane is
// vertical (no unique intersection).
func (p Plane) HeightAt(x, y float64) (z float64, ok bool) {
	if math.Abs(p.Normal.Z) < 1e-9 {
		return 0, false
	}
	z = p.Point.Z - (p.Normal.X*(x-p.Point.X)+p.Normal.Y*(y-p.Point.Y))/p.Normal.Z
	return z, true
}

// UpwardNormal returns the plane's normal flipped to point into the upper
// half-space (positive Z component), since a RANSAC fit gives no
// guarantee on which side the normal faces.
func (p Plane) UpwardNormal() r3.Vector {
	if p.Normal.Z < 0 {
		return p.Normal.Mul(-1)
	}
	return p.Normal
}

// Slope returns the angle in radians between the plane's upward normal and
// +Z, i.e. acos(normal . zHat).
func (p Plane) Slope() float64 {
	cosA := p.UpwardNormal().Dot(r3.Vector{Z: 1})
	if cosA > 1 {
		cosA = 1
	} else if cosA < -1 {
		cosA = -1
	}
	return math.Acos(cosA)
}

// SlopeDirection returns the unit projection of +Z onto the plane (the
// uphill direction) and its atan2 in the xy-plane. ok is false for a
// perfectly flat plane, where the direction is undefined.
func (p Plane) SlopeDirection() (dir r3.Vector, atan2 float64, ok bool) {
	n := p.UpwardNormal()
	zhat := r3.Vector{Z: 1}
	proj := zhat.Sub(n.Mul(zhat.Dot(n)))
	if proj.Norm() < 1e-9 {
		return r3.Vector{}, 0, false
	}
	proj = proj.Normalize()
	return proj, math.Atan2(proj.Y, proj.X), true
}
