package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Box is an oriented bounding box: a center, an orientation, and per-axis
// half extents. It is the collision primitive used to sweep the robot's
// footprint against the elevation map, the Go analogue of the teacher's
// spatialmath box type.
type Box struct {
	Center      r3.Vector
	Orientation quat.Number
	HalfSize    r3.Vector
}

// NewBox returns a Box centered at center with the given orientation and
// half extents.
func NewBox(center r3.Vector, orientation quat.Number, halfSize r3.Vector) Box {
	return Box{Center: center, Orientation: orientation, HalfSize: halfSize}
}

// WorldAABB returns the axis-aligned bound tightly enclosing the oriented
// box, computed as center +/- |R|*halfSize.
func (b Box) WorldAABB() AABB {
	ext := AbsRotationRow(b.Orientation, b.HalfSize)
	return NewAABBFromCenterHalfExtents(b.Center, ext)
}

// ToLocal transforms a world point into the box's local frame.
func (b Box) ToLocal(p r3.Vector) r3.Vector {
	return InverseRotateVector(b.Orientation, p.Sub(b.Center))
}

// Contains reports whether world point p lies within the oriented box.
func (b Box) Contains(p r3.Vector) bool {
	local := b.ToLocal(p)
	return math.Abs(local.X) <= b.HalfSize.X &&
		math.Abs(local.Y) <= b.HalfSize.Y &&
		math.Abs(local.Z) <= b.HalfSize.Z
}
