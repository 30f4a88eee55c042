// Package spatialmath provides the geometric primitives the planner core
// needs: poses, planes, axis-aligned and oriented bounding boxes, and RANSAC
// plane fitting.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose is a rigid transform: a point plus an orientation expressed as a
// unit quaternion.
type Pose struct {
	point       r3.Vector
	orientation quat.Number
}

// IdentityQuat is the no-rotation quaternion.
var IdentityQuat = quat.Number{Real: 1}

// NewPose returns a Pose at point with the given orientation.
func NewPose(point r3.Vector, orientation quat.Number) Pose {
	return Pose{point: point, orientation: orientation}
}

// NewPoseFromPoint returns a Pose at point with no rotation.
func NewPoseFromPoint(point r3.Vector) Pose {
	return Pose{point: point, orientation: IdentityQuat}
}

// Point returns the pose's position.
func (p Pose) Point() r3.Vector { return p.point }

// Orientation returns the pose's orientation quaternion.
func (p Pose) Orientation() quat.Number { return p.orientation }

func quatMul(a, b quat.Number) quat.Number {
	return quat.Number{
		Real: a.Real*b.Real - a.Imag*b.Imag - a.Jmag*b.Jmag - a.Kmag*b.Kmag,
		Imag: a.Real*b.Imag + a.Imag*b.Real + a.Jmag*b.Kmag - a.Kmag*b.Jmag,
		Jmag: a.Real*b.Jmag - a.Imag*b.Kmag + a.Jmag*b.Real + a.Kmag*b.Imag,
		Kmag: a.Real*b.Kmag + a.Imag*b.Jmag - a.Jmag*b.Imag + a.Kmag*b.Real,
	}
}

func quatConj(q quat.Number) quat.Number {
	return quat.Number{Real: q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}

func quatNormSquared(q quat.Number) float64 {
	return q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag
}

func quatInverse(q quat.Number) quat.Number {
	n2 := quatNormSquared(q)
	c := quatConj(q)
	return quat.Number{Real: c.Real / n2, Imag: c.Imag / n2, Jmag: c.Jmag / n2, Kmag: c.Kmag / n2}
}

func quatNormalize(q quat.Number) quat.Number {
	n := math.Sqrt(quatNormSquared(q))
	if n < 1e-12 {
		return IdentityQuat
	}
	return quat.Number{Real: q.Real / n, Imag: q.Imag / n, Jmag: q.Jmag / n, Kmag: q.Kmag / n}
}

// QuatFromAxisAngle builds a unit quaternion representing a rotation of
// angle radians about axis.
func QuatFromAxisAngle(axis r3.Vector, angle float64) quat.Number {
	axis = axis.Normalize()
	s := math.Sin(angle / 2)
	return quat.Number{
		Real: math.Cos(angle / 2),
		Imag: axis.X * s,
		Jmag: axis.Y * s,
		Kmag: axis.Z * s,
	}
}

// QuatFromTwoVectors returns the shortest-arc rotation that takes unit
// vector a onto unit vector b, mirroring Eigen's Quaternion::FromTwoVectors
// used by the original collision-frame construction.
func QuatFromTwoVectors(a, b r3.Vector) quat.Number {
	a = a.Normalize()
	b = b.Normalize()
	d := a.Dot(b)
	if d > 1-1e-12 {
		return IdentityQuat
	}
	if d < -1+1e-12 {
		// 180 degree rotation: pick any axis orthogonal to a.
		axis := a.Cross(r3.Vector{X: 1})
		if axis.Norm() < 1e-9 {
			axis = a.Cross(r3.Vector{Y: 1})
		}
		return QuatFromAxisAngle(axis, math.Pi)
	}
	axis := a.Cross(b)
	w := math.Sqrt((1+d)*2) / 2
	s := 1 / (2 * w)
	return quat.Number{Real: w, Imag: axis.X * s, Jmag: axis.Y * s, Kmag: axis.Z * s}
}

// RotateVector rotates v by q.
func RotateVector(q quat.Number, v r3.Vector) r3.Vector {
	qv := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quatMul(quatMul(q, qv), quatInverse(q))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// InverseRotateVector rotates v by the inverse of q.
func InverseRotateVector(q quat.Number, v r3.Vector) r3.Vector {
	return RotateVector(quatInverse(q), v)
}

// ComposeQuats returns the rotation equivalent to applying a then b.
func ComposeQuats(a, b quat.Number) quat.Number {
	return quatNormalize(quatMul(b, a))
}

// AbsRotationRow returns |R| applied to v, where R is the rotation matrix
// of q and |.| is elementwise absolute value — used to transform an
// oriented box's half-extents into a world-aligned bound.
func AbsRotationRow(q quat.Number, v r3.Vector) r3.Vector {
	ex := RotateVector(q, r3.Vector{X: 1})
	ey := RotateVector(q, r3.Vector{Y: 1})
	ez := RotateVector(q, r3.Vector{Z: 1})
	return r3.Vector{
		X: math.Abs(ex.X)*v.X + math.Abs(ey.X)*v.Y + math.Abs(ez.X)*v.Z,
		Y: math.Abs(ex.Y)*v.X + math.Abs(ey.Y)*v.Y + math.Abs(ez.Y)*v.Z,
		Z: math.Abs(ex.Z)*v.X + math.Abs(ey.Z)*v.Y + math.Abs(ez.Z)*v.Z,
	}
}
