package planning

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/Priyanka328/ugv-nav4d/mls"
	"github.com/Priyanka328/ugv-nav4d/primitives"
	"github.com/Priyanka328/ugv-nav4d/travmap"
)

// TrajectoryPoint is one waypoint of a world-space trajectory converted
// from a planned path of states, the supplemented output the original
// Planner produced via base::Trajectory.
type TrajectoryPoint struct {
	Position r3.Vector
	Heading  float64
	// Speed is signed: negative for a backward motion, per spec section
	// 9's "backward motions carry a negative speed on emission".
	Speed    float64
	MotionID int
}

// Trajectory converts a state-id path and the motion used for each
// transition into a world-space trajectory. The search itself is out of
// scope (spec section 1); this only performs the bookkeeping the original
// Planner did after a search returned.
func (e *Environment) Trajectory(path []StateID, motionIDs []int) ([]TrajectoryPoint, error) {
	if len(path) == 0 {
		return nil, nil
	}
	if len(motionIDs) != len(path)-1 {
		return nil, e.internalf("trajectory needs one motion id per transition: got %d ids for a %d-state path", len(motionIDs), len(path))
	}

	first := e.states.ByID(path[0])
	if first == nil {
		return nil, e.internalf("trajectory: unknown state %d", path[0])
	}
	out := []TrajectoryPoint{{
		Position: e.nodeWorldPos(first.Trav),
		Heading:  first.Theta.ToRadians(e.cfg.NumAngles),
	}}

	for i, mid := range motionIDs {
		m, ok := e.motions.Get(mid)
		if !ok {
			return nil, e.internalf("trajectory: unknown motion %d", mid)
		}
		s := e.states.ByID(path[i+1])
		if s == nil {
			return nil, e.internalf("trajectory: unknown state %d", path[i+1])
		}
		speed := m.Speed
		if m.Type == primitives.Backward {
			speed = -speed
		}
		out = append(out, TrajectoryPoint{
			Position: e.nodeWorldPos(s.Trav),
			Heading:  s.Theta.ToRadians(e.cfg.NumAngles),
			Speed:    speed,
			MotionID: mid,
		})
	}
	return out, nil
}

// NearestFrontier returns the FRONTIER trav-node closest to "to" among
// those already expanded, supplementing the original's
// planToNextFrontier bias without implementing a search itself.
func (e *Environment) NearestFrontier(to r3.Vector) (*travmap.Node, bool) {
	var best *travmap.Node
	bestDist := math.Inf(1)
	for _, n := range e.builder.Map.Nodes() {
		if n.Type != travmap.Frontier {
			continue
		}
		d := e.nodeWorldPos(n).Sub(to).Norm()
		if d < bestDist {
			bestDist = d
			best = n
		}
	}
	return best, best != nil
}

// SearchFunc is supplied by the caller's own graph-search algorithm (A* /
// ARA*, deliberately out of scope here per spec section 1). It must
// return a path of state ids from start to goal and the motion id used
// for each transition.
type SearchFunc func(env *Environment) (path []StateID, motionIDs []int, err error)

// Planner is the thin convenience wrapper the original repository built
// around the oracle: it owns map replacement and turns a driver-supplied
// search into a world-space trajectory, without implementing the search
// itself.
type Planner struct {
	env     *Environment
	motions primitives.Table
	cfg     Config
}

// NewPlanner returns a Planner with no map yet loaded; call UpdateMap
// before Plan.
func NewPlanner(motions primitives.Table, cfg Config) *Planner {
	return &Planner{motions: motions, cfg: cfg}
}

// Env returns the underlying oracle, or nil if UpdateMap has not been
// called yet.
func (p *Planner) Env() *Environment { return p.env }

// UpdateMap constructs the environment on first use, or replaces the map
// of an existing one.
func (p *Planner) UpdateMap(grid mls.Grid) error {
	if p.env == nil {
		env, err := NewEnvironment(grid, p.motions, p.cfg)
		if err != nil {
			return err
		}
		p.env = env
		return nil
	}
	return p.env.UpdateMap(grid)
}

// Plan seeds start and goal, invokes the caller's search, and converts the
// result into a trajectory.
func (p *Planner) Plan(start, goal r3.Vector, startAlpha, goalAlpha float64, search SearchFunc) ([]TrajectoryPoint, error) {
	if p.env == nil {
		return nil, errors.New("Plan called before UpdateMap")
	}
	if err := p.env.SetStart(start, startAlpha); err != nil {
		return nil, err
	}
	if err := p.env.SetGoal(goal, goalAlpha); err != nil {
		return nil, err
	}
	path, motionIDs, err := search(p.env)
	if err != nil {
		return nil, err
	}
	return p.env.Trajectory(path, motionIDs)
}

// PlanToNextFrontier plans from start to whichever already-expanded
// FRONTIER node is closest to closeTo, the supplemented frontier-seeking
// entry point from the original Planner::planToNextFrontier.
func (p *Planner) PlanToNextFrontier(start r3.Vector, startAlpha float64, closeTo r3.Vector, goalAlpha float64, search SearchFunc) ([]TrajectoryPoint, error) {
	if p.env == nil {
		return nil, errors.New("PlanToNextFrontier called before UpdateMap")
	}
	if err := p.env.SetStart(start, startAlpha); err != nil {
		return nil, err
	}
	p.env.builder.ExpandAll(p.env.startState.Trav)

	frontier, ok := p.env.NearestFrontier(closeTo)
	if !ok {
		return nil, notTraversablef("no frontier node found near %v", closeTo)
	}
	if err := p.env.SetGoal(p.env.nodeWorldPos(frontier), goalAlpha); err != nil {
		return nil, err
	}
	path, motionIDs, err := search(p.env)
	if err != nil {
		return nil, err
	}
	return p.env.Trajectory(path, motionIDs)
}
