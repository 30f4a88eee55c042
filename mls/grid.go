// Package mls defines the Elevation Map Adapter contract: a read-only view
// of a Multi-Level Surface grid, plus a deterministic in-memory
// implementation used by tests in place of a real MLS backend.
package mls

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/Priyanka328/ugv-nav4d/spatialmath"
)

// Index identifies a (ix, iy) cell of the grid.
type Index struct {
	IX, IY int32
}

// ErrOutOfGrid is returned by ToGrid when a world position falls outside
// the grid's bounds. It is a client error, not an Internal one.
var ErrOutOfGrid = errors.New("world position outside grid bounds")

// Patch is a single surface patch stored at a grid cell. Only the top
// height is required by the planner core; a patch may expose more through
// a type assertion for richer backends.
type Patch interface {
	Top() float64
}

// SimplePatch is the minimal Patch implementation used by the in-memory
// grid and by tests.
type SimplePatch struct {
	TopHeight float64
}

// Top implements Patch.
func (p SimplePatch) Top() float64 { return p.TopHeight }

// Grid is the external collaborator contract for a Multi-Level Surface
// grid (spec section 6). Implementations need not be thread-safe beyond
// read concurrency; the planner core never mutates a Grid.
type Grid interface {
	// ToGrid converts a world-space xy position into a cell index.
	ToGrid(world r3.Vector) (Index, error)
	// FromGrid converts a cell index back into the world-space position
	// of the cell's lower corner.
	FromGrid(idx Index) r3.Vector
	// Resolution returns the cell size along x and y.
	Resolution() (float64, float64)
	// LocalFrame returns the grid's pose in world space.
	LocalFrame() spatialmath.Pose
	// IntersectAABB visits every patch whose cell falls inside box and
	// whose top height lies within the box's z range.
	// visit may return true to stop iteration early.
	IntersectAABB(box spatialmath.AABB, visit func(idx Index, p Patch) bool)
	// PatchesAt returns the ordered patches stored at idx, or nil if the
	// cell is empty or out of range.
	PatchesAt(idx Index) []Patch
}
