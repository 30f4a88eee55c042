package spatialmath

import "github.com/golang/geo/r3"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max r3.Vector
}

// NewAABBFromCenterHalfExtents builds an AABB from a center and per-axis
// half extents.
func NewAABBFromCenterHalfExtents(center, halfExtents r3.Vector) AABB {
	return AABB{Min: center.Sub(halfExtents), Max: center.Add(halfExtents)}
}

// Contains reports whether p lies within the box, inclusive of its faces.
func (b AABB) Contains(p r3.Vector) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
