package travmap

import (
	"math"
	"math/rand"
	"sync"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Priyanka328/ugv-nav4d/logging"
	"github.com/Priyanka328/ugv-nav4d/mls"
	"github.com/Priyanka328/ugv-nav4d/spatialmath"
)

// Config parameterizes the graph builder. It is the slice of the
// planner-wide Config this package needs.
type Config struct {
	RobotSizeX, RobotSizeY, RobotHeight float64
	MaxSlope                            float64
	MaxStepHeight                       float64

	RANSACMaxIterations  int
	RANSACInlierDistance float64
	RANSACMinInliers     int

	Logger *zap.SugaredLogger
}

func (c Config) logger() *zap.SugaredLogger {
	if c.Logger != nil {
		return c.Logger
	}
	return logging.NewNop()
}

// the 8 neighbor offsets, in a fixed order so neighbor linking is
// deterministic given a deterministic RANSAC fit.
var neighborOffsets = [8]mls.Index{
	{IX: -1, IY: -1}, {IX: 0, IY: -1}, {IX: 1, IY: -1},
	{IX: -1, IY: 0}, {IX: 1, IY: 0},
	{IX: -1, IY: 1}, {IX: 0, IY: 1}, {IX: 1, IY: 1},
}

// Builder lazily expands a TravMap over a Grid.
type Builder struct {
	grid mls.Grid
	Map  *Map
	cfg  Config

	// expandMu is the lazy-expansion critical section: only one node is
	// fit/classified at a time, and the expanded flag is checked and set
	// only while it is held.
	expandMu sync.Mutex

	rng *rand.Rand
}

// NewBuilder returns a Builder over grid, with an empty Map at the grid's
// resolution.
func NewBuilder(grid mls.Grid, cfg Config) *Builder {
	rx, _ := grid.Resolution()
	return &Builder{
		grid: grid,
		Map:  NewMap(rx),
		cfg:  cfg,
		rng:  rand.New(rand.NewSource(1)),
	}
}

type patchSample struct {
	pos r3.Vector
}

// cellOriginPos returns the world position used for every geometric
// computation keyed off a cell index: the grid-origin-relative lower
// corner of the cell rather than its true center, at the given height.
// This bias is intentional and matches the lower-corner positions the
// planning package uses for heuristic edge weights (see DESIGN.md's
// open-question decision on them).
func (b *Builder) cellOriginPos(idx mls.Index, height float64) r3.Vector {
	p := b.grid.FromGrid(idx)
	p.Z = height
	return p
}

// GenerateStartNode locates or creates a node at worldPos, per spec
// section 4.1's generate_start_node: reuse an existing unexpanded node at
// that cell within MaxStepHeight of the requested height, else create a
// fresh one at exactly that height.
func (b *Builder) GenerateStartNode(worldPos r3.Vector) (*Node, error) {
	idx, err := b.grid.ToGrid(worldPos)
	if err != nil {
		return nil, errors.Wrap(err, "generate start node")
	}
	for _, n := range b.Map.NodesAt(idx) {
		if !n.Expanded && math.Abs(n.Height-worldPos.Z) < b.cfg.MaxStepHeight {
			return n, nil
		}
	}
	return b.Map.NewNode(idx, worldPos.Z), nil
}

// ExpandNode expands n if it has not already been expanded (idempotent;
// only the first call does work). It returns whether n ended up routable
// (TRAVERSABLE or FRONTIER).
func (b *Builder) ExpandNode(n *Node) bool {
	b.expandMu.Lock()
	defer b.expandMu.Unlock()
	if n.Expanded {
		return n.Type.Routable()
	}
	n.Expanded = true
	return b.expandLocked(n)
}

func (b *Builder) expandLocked(n *Node) bool {
	log := b.cfg.logger()
	center := b.cellOriginPos(n.Index, n.Height)
	half := r3.Vector{X: b.cfg.RobotSizeX / 2, Y: b.cfg.RobotSizeX / 2, Z: b.cfg.MaxStepHeight}
	aabb := spatialmath.NewAABBFromCenterHalfExtents(center, half)

	var samples []patchSample
	b.grid.IntersectAABB(aabb, func(idx mls.Index, p mls.Patch) bool {
		pos := b.grid.FromGrid(idx)
		pos.Z = p.Top()
		samples = append(samples, patchSample{pos: pos})
		return false
	})

	if len(samples) < 5 {
		n.Type = Unknown
		log.Debugw("node unknown: insufficient patches", "id", n.ID, "count", len(samples))
		return false
	}

	points := make([]r3.Vector, len(samples))
	for i, s := range samples {
		points[i] = s.pos
	}
	plane, inliers, ok := spatialmath.RANSACPlaneFit(points, b.cfg.RANSACMaxIterations, b.cfg.RANSACInlierDistance, b.cfg.RANSACMinInliers, b.rng)
	if !ok {
		n.Type = Unknown
		log.Debugw("node unknown: ransac failed", "id", n.ID, "inliers", inliers)
		return false
	}

	slope := plane.Slope()
	n.Plane = plane
	n.Slope = slope
	if dir, atan2, hasDir := plane.SlopeDirection(); hasDir {
		n.SlopeDirection = dir
		n.SlopeDirAtan2 = atan2
	}

	if slope > b.cfg.MaxSlope {
		n.Type = Obstacle
		log.Debugw("node obstacle: slope exceeded", "id", n.ID, "slope", slope)
		return false
	}

	if newHeight, ok := plane.HeightAt(center.X, center.Y); ok {
		n.Height = newHeight
	}

	for _, s := range samples {
		planeZ, ok := plane.HeightAt(s.pos.X, s.pos.Y)
		if !ok {
			continue
		}
		d := s.pos.Z - planeZ
		if d > b.cfg.MaxStepHeight && d < b.cfg.RobotHeight {
			n.Type = Obstacle
			log.Debugw("node obstacle: chest-height obstruction", "id", n.ID, "distance", d)
			return false
		}
	}

	n.Type = Traversable
	b.addConnectedPatches(n)
	return true
}

// addConnectedPatches links n to its 8 neighboring cells, per spec section
// 4.1 step 9: extrapolate the neighbor's height from n's fitted plane,
// skip if the step would be too steep, and reuse or create the neighbor
// node.
func (b *Builder) addConnectedPatches(n *Node) {
	for _, off := range neighborOffsets {
		nIdx := mls.Index{IX: n.Index.IX + off.IX, IY: n.Index.IY + off.IY}
		neighborOrigin := b.cellOriginPos(nIdx, 0)
		extrapolated, ok := n.Plane.HeightAt(neighborOrigin.X, neighborOrigin.Y)
		if !ok {
			continue
		}
		if math.Abs(extrapolated-n.Height) > b.cfg.MaxStepHeight {
			continue
		}
		// A measured neighbor cell whose patches all lie more than
		// MaxStepHeight from the extrapolated height is a step too steep.
		if patches := b.grid.PatchesAt(nIdx); len(patches) > 0 {
			reachable := false
			for _, p := range patches {
				if math.Abs(p.Top()-extrapolated) <= b.cfg.MaxStepHeight {
					reachable = true
					break
				}
			}
			if !reachable {
				continue
			}
		}

		var target *Node
		for _, cand := range b.Map.NodesAt(nIdx) {
			if math.Abs(cand.Height-extrapolated) <= b.cfg.MaxStepHeight {
				target = cand
				break
			}
		}
		if target == nil {
			target = b.Map.NewNode(nIdx, extrapolated)
		}
		n.link(target)
	}
}

// ExpandAll expands every node reachable from start, via breadth-first
// traversal of the neighbor graph. Used to materialize the full trav graph
// before heuristic precomputation.
func (b *Builder) ExpandAll(start *Node) {
	queue := []*Node{start}
	visited := map[uint32]bool{start.ID: true}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		b.ExpandNode(cur)
		for _, nb := range cur.Neighbors {
			if !visited[nb.ID] {
				visited[nb.ID] = true
				queue = append(queue, nb)
			}
		}
	}
}
