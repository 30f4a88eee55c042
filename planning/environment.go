package planning

import (
	"math"
	"sync"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	viamutils "go.viam.com/utils"
	"golang.org/x/sync/errgroup"

	"github.com/Priyanka328/ugv-nav4d/mls"
	"github.com/Priyanka328/ugv-nav4d/primitives"
	"github.com/Priyanka328/ugv-nav4d/travmap"
)

// successorChunkSize is the work-stealing pool's granularity, grounded on
// the original #pragma omp parallel for schedule(dynamic, 5).
const successorChunkSize = 5

// Successor is one entry of the search driver's successors() result: a
// reachable state, its integer cost, and the motion primitive that leads
// there.
type Successor struct {
	StateID  StateID
	Cost     int
	MotionID int
}

// Environment is the Planning Graph / XYZtheta oracle: it layers discrete
// heading on top of a lazily-built traversability graph and answers the
// successor/heuristic queries an external weighted-graph search needs.
type Environment struct {
	cfg     Config
	grid    mls.Grid
	builder *travmap.Builder
	motions primitives.Table
	states  *StateTable

	startState *StateNode
	goalState  *StateNode

	heuristicsMu sync.RWMutex
	heuristics   *heuristicCache
}

// NewEnvironment returns an Environment over grid and motions, validating
// cfg first.
func NewEnvironment(grid mls.Grid, motions primitives.Table, cfg Config) (*Environment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid planner config")
	}
	travCfg := travmap.Config{
		RobotSizeX:           cfg.RobotSizeX,
		RobotSizeY:           cfg.RobotSizeY,
		RobotHeight:          cfg.RobotHeight,
		MaxSlope:              cfg.MaxSlope,
		MaxStepHeight:         cfg.MaxStepHeight,
		RANSACMaxIterations:   cfg.RANSACMaxIterations,
		RANSACInlierDistance:  cfg.RANSACInlierDistance,
		RANSACMinInliers:      cfg.RANSACMinInliers,
		Logger:                cfg.Logger,
	}
	return &Environment{
		cfg:        cfg,
		grid:       grid,
		builder:    travmap.NewBuilder(grid, travCfg),
		motions:    motions,
		states:     NewStateTable(),
		heuristics: newHeuristicCache(),
	}, nil
}

func (e *Environment) nodeWorldPos(n *travmap.Node) r3.Vector {
	p := e.grid.FromGrid(n.Index)
	p.Z = n.Height
	return p
}

// TravMap exposes the underlying traversability graph read-only, the
// getTraversabilityMap supplement from the original Planner.
func (e *Environment) TravMap() *travmap.Map { return e.builder.Map }

// UpdateMap replaces the elevation map this environment plans over,
// rejecting a resolution mismatch per spec section 3's lifecycle
// invariant.
func (e *Environment) UpdateMap(grid mls.Grid) error {
	rx, ry := grid.Resolution()
	curRx, curRy := e.grid.Resolution()
	if rx != curRx || ry != curRy {
		return errors.Errorf("resolution mismatch: map has (%v, %v), environment expects (%v, %v)", rx, ry, curRx, curRy)
	}
	e.grid = grid
	travCfg := travmap.Config{
		RobotSizeX:           e.cfg.RobotSizeX,
		RobotSizeY:           e.cfg.RobotSizeY,
		RobotHeight:          e.cfg.RobotHeight,
		MaxSlope:              e.cfg.MaxSlope,
		MaxStepHeight:         e.cfg.MaxStepHeight,
		RANSACMaxIterations:   e.cfg.RANSACMaxIterations,
		RANSACInlierDistance:  e.cfg.RANSACInlierDistance,
		RANSACMinInliers:      e.cfg.RANSACMinInliers,
		Logger:                e.cfg.Logger,
	}
	e.builder = travmap.NewBuilder(grid, travCfg)
	e.states.Clear()
	e.heuristicsMu.Lock()
	e.heuristics = newHeuristicCache()
	e.heuristicsMu.Unlock()
	e.startState = nil
	e.goalState = nil
	return nil
}

// SetStart seeds the start trav-node and state, rejecting an unreachable,
// disallowed-orientation, or colliding pose.
func (e *Environment) SetStart(pos r3.Vector, alpha float64) error {
	n, err := e.builder.GenerateStartNode(pos)
	if err != nil {
		return outOfGridf("start pose %v: %v", pos, err)
	}
	if !e.builder.ExpandNode(n) {
		return notTraversablef("start pose %v not traversable (node type %v)", pos, n.Type)
	}
	allowed, err := e.checkOrientationAllowed(n, alpha)
	if err != nil {
		return err
	}
	if !allowed {
		return notTraversablef("start orientation %.3f not allowed at node %d (slope %.3f)", alpha, n.ID, n.Slope)
	}
	if err := e.checkCollision(n, alpha); err != nil {
		return err
	}
	theta := primitives.Discretize(alpha, e.cfg.NumAngles)
	e.startState = e.states.GetOrCreate(n, theta)
	return nil
}

// SetGoal requires SetStart to have already succeeded. It seeds the goal,
// re-marks the goal trav-node unexpanded to force a fresh plane fit, fully
// expands the reachable graph from the start, and precomputes the
// heuristic caches.
func (e *Environment) SetGoal(pos r3.Vector, alpha float64) error {
	if e.startState == nil {
		return e.internalf("SetGoal called before SetStart")
	}
	n, err := e.builder.GenerateStartNode(pos)
	if err != nil {
		return outOfGridf("goal pose %v: %v", pos, err)
	}
	e.builder.Map.MarkUnexpanded(n)
	if !e.builder.ExpandNode(n) {
		return notTraversablef("goal pose %v not traversable (node type %v)", pos, n.Type)
	}
	allowed, err := e.checkOrientationAllowed(n, alpha)
	if err != nil {
		return err
	}
	if !allowed {
		return notTraversablef("goal orientation %.3f not allowed at node %d (slope %.3f)", alpha, n.ID, n.Slope)
	}
	if err := e.checkCollision(n, alpha); err != nil {
		return err
	}

	theta := primitives.Discretize(alpha, e.cfg.NumAngles)
	e.goalState = e.states.GetOrCreate(n, theta)

	e.builder.ExpandAll(e.startState.Trav)
	return e.precomputeHeuristics()
}

func (e *Environment) precomputeHeuristics() error {
	nodes := e.builder.Map.Nodes()
	use3D := e.cfg.HeuristicType == Heuristic3D
	g := buildWeightedGraph(nodes, e.nodeWorldPos, use3D)

	ids := make([]uint32, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}

	// The two Dijkstra sweeps read the same immutable graph and share no
	// state, so they run concurrently rather than back to back.
	var distFromStart, distFromGoal map[uint32]float64
	var grp errgroup.Group
	grp.Go(func() error {
		distFromStart = dijkstraDistances(g, e.startState.Trav.ID, ids)
		return nil
	})
	grp.Go(func() error {
		distFromGoal = dijkstraDistances(g, e.goalState.Trav.ID, ids)
		return nil
	})
	if err := grp.Wait(); err != nil {
		return err
	}

	for _, n := range nodes {
		if !n.Type.Routable() {
			continue
		}
		if n.ID == e.startState.Trav.ID || n.ID == e.goalState.Trav.ID {
			continue
		}
		if distFromStart[n.ID] == 0 {
			return e.internalf("heuristic of node %d (distToStart) is zero but node is not start or goal", n.ID)
		}
		if distFromGoal[n.ID] == 0 {
			return e.internalf("heuristic of node %d (distToGoal) is zero but node is not start or goal", n.ID)
		}
	}

	e.heuristicsMu.Lock()
	e.heuristics.distToStart = distFromStart
	e.heuristics.distToGoal = distFromGoal
	e.heuristicsMu.Unlock()
	return nil
}

// InitialIDs returns the start and goal state ids, per the Graph Search
// Driver contract (spec section 6).
func (e *Environment) InitialIDs() (start, goal StateID, err error) {
	if e.startState == nil || e.goalState == nil {
		return 0, 0, e.internalf("InitialIDs called before both SetStart and SetGoal succeeded")
	}
	return e.startState.ID, e.goalState.ID, nil
}

// HeuristicToGoal returns an admissible estimate of the remaining cost
// from id to the goal.
func (e *Environment) HeuristicToGoal(id StateID) (int, error) {
	return e.heuristic(id, e.goalState, e.heuristicDistToGoal)
}

// HeuristicToStart returns an admissible estimate of the remaining cost
// from id to the start, symmetric to HeuristicToGoal.
func (e *Environment) HeuristicToStart(id StateID) (int, error) {
	return e.heuristic(id, e.startState, e.heuristicDistToStart)
}

func (e *Environment) heuristicDistToGoal(travID uint32) (float64, bool) {
	e.heuristicsMu.RLock()
	defer e.heuristicsMu.RUnlock()
	d, ok := e.heuristics.distToGoal[travID]
	return d, ok
}

func (e *Environment) heuristicDistToStart(travID uint32) (float64, bool) {
	e.heuristicsMu.RLock()
	defer e.heuristicsMu.RUnlock()
	d, ok := e.heuristics.distToStart[travID]
	return d, ok
}

func (e *Environment) heuristic(id StateID, terminal *StateNode, distLookup func(uint32) (float64, bool)) (int, error) {
	if terminal == nil {
		return 0, e.internalf("heuristic requested before SetGoal completed")
	}
	s := e.states.ByID(id)
	if s == nil {
		return 0, e.internalf("heuristic requested for unknown state %d", id)
	}
	dist, ok := distLookup(s.Trav.ID)
	if !ok {
		return 0, e.internalf("no precomputed heuristic distance for trav-node %d", s.Trav.ID)
	}
	timeTranslation := dist / e.cfg.TranslationalSpeed
	timeRotation := primitives.ShortestDistanceRadians(s.Theta, terminal.Theta, e.cfg.NumAngles) / e.cfg.TurningSpeed
	// The small epsilon keeps summed edge weights such as nine 0.1 m steps
	// (0.8999999999999999) from flooring one unit low.
	h := math.Floor(math.Max(timeTranslation, timeRotation)*CostScaleFactor + 1e-9)
	if h < 0 {
		return 0, e.internalf("computed negative heuristic %v for state %d", h, id)
	}
	return int(h), nil
}

// movementPossible resolves the trav-node reached by stepping from prev
// (at prevIdx) to newIdx, expanding it on demand. ok is false for an
// unreachable or non-routable cell; that is an ordinary successor
// rejection, not an error. A non-nil error means the resolved node's own
// index disagrees with newIdx, the "mismatched indices after movement"
// invariant violation spec section 7 calls out.
func (e *Environment) movementPossible(prev *travmap.Node, prevIdx, newIdx mls.Index) (node *travmap.Node, ok bool, err error) {
	if newIdx == prevIdx {
		return prev, true, nil
	}
	var target *travmap.Node
	for _, nb := range prev.Neighbors {
		if nb.Index == newIdx {
			target = nb
			break
		}
	}
	if target == nil {
		return nil, false, nil
	}
	if target.Index != newIdx {
		return nil, false, e.internalf("movement from node %d to %v resolved to node %d at %v: mismatched indices", prev.ID, newIdx, target.ID, target.Index)
	}
	if !e.builder.ExpandNode(target) {
		return nil, false, nil
	}
	return target, true, nil
}

// Successors implements the search driver's successors() call: for every
// motion available from id's heading, walk its swept path, validating
// traversability/orientation/collision, and score the survivors.
func (e *Environment) Successors(id StateID) ([]Successor, error) {
	s := e.states.ByID(id)
	if s == nil {
		return nil, e.internalf("successors requested for unknown state %d", id)
	}
	motions := e.motions.MotionsFor(s.Theta)
	if len(motions) == 0 {
		return nil, nil
	}

	if !e.cfg.ParallelismEnabled {
		var out []Successor
		var errs error
		for _, m := range motions {
			succ, err := e.tryMotion(s, m)
			errs = multierr.Append(errs, err)
			if succ != nil {
				out = append(out, *succ)
			}
		}
		return out, errs
	}

	var (
		outMu sync.Mutex
		out   []Successor
		errMu sync.Mutex
		errs  error
		wg    sync.WaitGroup
	)
	for start := 0; start < len(motions); start += successorChunkSize {
		end := start + successorChunkSize
		if end > len(motions) {
			end = len(motions)
		}
		chunk := motions[start:end]
		wg.Add(1)
		viamutils.PanicCapturingGo(func() {
			defer wg.Done()
			for _, m := range chunk {
				succ, err := e.tryMotion(s, m)
				if err != nil {
					errMu.Lock()
					errs = multierr.Append(errs, err)
					errMu.Unlock()
				}
				if succ != nil {
					outMu.Lock()
					out = append(out, *succ)
					outMu.Unlock()
				}
			}
		})
	}
	wg.Wait()
	return out, errs
}

// tryMotion validates and scores a single motion from s. A nil Successor
// with a nil error means the motion is an ordinary rejection (blocked,
// unreachable, colliding); a non-nil error means an invariant was
// violated.
func (e *Environment) tryMotion(s *StateNode, m primitives.Motion) (*Successor, error) {
	startAlpha := s.Theta.ToRadians(e.cfg.NumAngles)
	pathNodes := []*travmap.Node{s.Trav}
	alphas := []float64{startAlpha}

	prevNode := s.Trav
	prevIdx := s.Trav.Index
	for _, step := range m.IntermediateSteps {
		newIdx := mls.Index{IX: s.Trav.Index.IX + step.DX, IY: s.Trav.Index.IY + step.DY}
		nextNode, ok, err := e.movementPossible(prevNode, prevIdx, newIdx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		if !nextNode.Type.Routable() {
			return nil, nil
		}
		allowed, err := e.checkOrientationAllowed(nextNode, step.Alpha)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, nil
		}
		pathNodes = append(pathNodes, nextNode)
		alphas = append(alphas, step.Alpha)
		prevNode = nextNode
		prevIdx = newIdx
	}

	finalIdx := mls.Index{IX: s.Trav.Index.IX + m.DX, IY: s.Trav.Index.IY + m.DY}
	finalNode, ok, err := e.movementPossible(prevNode, prevIdx, finalIdx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	if !finalNode.Type.Routable() {
		return nil, nil
	}
	finalAlpha := m.EndTheta.ToRadians(e.cfg.NumAngles)
	allowed, err := e.checkOrientationAllowed(finalNode, finalAlpha)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, nil
	}
	pathNodes = append(pathNodes, finalNode)
	alphas = append(alphas, finalAlpha)

	for i, node := range pathNodes {
		if err := e.checkCollision(node, alphas[i]); err != nil {
			return nil, nil
		}
	}

	cost := e.computeCost(m, pathNodes)
	if cost < m.BaseCost {
		return nil, e.internalf("motion %d produced cost %v below its base cost %v", m.ID, cost, m.BaseCost)
	}
	iCost := int(math.Floor(cost))
	if float64(iCost) < m.BaseCost {
		return nil, e.internalf("motion %d integer cost %d below its base cost %v", m.ID, iCost, m.BaseCost)
	}

	successorState := e.states.GetOrCreate(finalNode, m.EndTheta)
	return &Successor{StateID: successorState.ID, Cost: iCost, MotionID: m.ID}, nil
}
