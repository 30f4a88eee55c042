package mls

import (
	"sort"

	"github.com/golang/geo/r3"

	"github.com/Priyanka328/ugv-nav4d/spatialmath"
)

// FakeGrid is an in-memory Grid used by tests and by callers without a real
// MLS backend. Each cell holds an ordered-by-height slice of patches, the
// same per-column storage shape a multi-level column grid uses.
type FakeGrid struct {
	res     float64
	origin  r3.Vector
	cells   map[Index][]Patch
	minX    int32
	minY    int32
	maxX    int32
	maxY    int32
	hasSize bool
}

// NewFakeGrid returns an empty grid with the given cell resolution and
// world-space origin (the position of cell (0,0)'s lower corner).
func NewFakeGrid(resolution float64, origin r3.Vector) *FakeGrid {
	return &FakeGrid{
		res:    resolution,
		origin: origin,
		cells:  make(map[Index][]Patch),
	}
}

// SetTop sets a single flat patch at idx with the given top height,
// replacing whatever was there.
func (g *FakeGrid) SetTop(idx Index, top float64) {
	g.cells[idx] = []Patch{SimplePatch{TopHeight: top}}
	g.growBounds(idx)
}

// AddPatch appends a patch at idx, keeping patches sorted by top height.
func (g *FakeGrid) AddPatch(idx Index, p Patch) {
	ps := append(g.cells[idx], p)
	sort.Slice(ps, func(i, j int) bool { return ps[i].Top() < ps[j].Top() })
	g.cells[idx] = ps
	g.growBounds(idx)
}

func (g *FakeGrid) growBounds(idx Index) {
	if !g.hasSize {
		g.minX, g.maxX, g.minY, g.maxY = idx.IX, idx.IX, idx.IY, idx.IY
		g.hasSize = true
		return
	}
	if idx.IX < g.minX {
		g.minX = idx.IX
	}
	if idx.IX > g.maxX {
		g.maxX = idx.IX
	}
	if idx.IY < g.minY {
		g.minY = idx.IY
	}
	if idx.IY > g.maxY {
		g.maxY = idx.IY
	}
}

// ToGrid implements Grid.
func (g *FakeGrid) ToGrid(world r3.Vector) (Index, error) {
	rel := world.Sub(g.origin)
	ix := int32(floorDiv(rel.X, g.res))
	iy := int32(floorDiv(rel.Y, g.res))
	idx := Index{IX: ix, IY: iy}
	if g.hasSize && (ix < g.minX || ix > g.maxX || iy < g.minY || iy > g.maxY) {
		return Index{}, ErrOutOfGrid
	}
	return idx, nil
}

// FromGrid implements Grid.
func (g *FakeGrid) FromGrid(idx Index) r3.Vector {
	return r3.Vector{
		X: g.origin.X + float64(idx.IX)*g.res,
		Y: g.origin.Y + float64(idx.IY)*g.res,
		Z: g.origin.Z,
	}
}

// Resolution implements Grid.
func (g *FakeGrid) Resolution() (float64, float64) { return g.res, g.res }

// LocalFrame implements Grid.
func (g *FakeGrid) LocalFrame() spatialmath.Pose {
	return spatialmath.NewPoseFromPoint(g.origin)
}

// PatchesAt implements Grid.
func (g *FakeGrid) PatchesAt(idx Index) []Patch {
	return g.cells[idx]
}

// IntersectAABB implements Grid by a linear scan over cells covered by box,
// which is acceptable for the small grids this fake is used against.
func (g *FakeGrid) IntersectAABB(box spatialmath.AABB, visit func(idx Index, p Patch) bool) {
	if !g.hasSize {
		return
	}
	minIX := int32(floorDiv(box.Min.X-g.origin.X, g.res))
	maxIX := int32(floorDiv(box.Max.X-g.origin.X, g.res))
	minIY := int32(floorDiv(box.Min.Y-g.origin.Y, g.res))
	maxIY := int32(floorDiv(box.Max.Y-g.origin.Y, g.res))
	if minIX < g.minX {
		minIX = g.minX
	}
	if maxIX > g.maxX {
		maxIX = g.maxX
	}
	if minIY < g.minY {
		minIY = g.minY
	}
	if maxIY > g.maxY {
		maxIY = g.maxY
	}
	for ix := minIX; ix <= maxIX; ix++ {
		for iy := minIY; iy <= maxIY; iy++ {
			idx := Index{IX: ix, IY: iy}
			for _, p := range g.cells[idx] {
				if p.Top() < box.Min.Z || p.Top() > box.Max.Z {
					continue
				}
				if visit(idx, p) {
					return
				}
			}
		}
	}
}

func floorDiv(v, res float64) int {
	q := v / res
	i := int(q)
	if q < 0 && float64(i) != q {
		i--
	}
	return i
}
