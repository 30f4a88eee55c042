// Package planning implements the Planning Graph (XYZtheta Environment):
// the oracle a weighted best-first search queries for successors and
// heuristics, plus the heuristic precomputer and collision engine it
// depends on.
package planning

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Priyanka328/ugv-nav4d/logging"
)

// SlopeMetric selects how a traversed path's slope contributes to cost.
type SlopeMetric int

// Slope metric values.
const (
	SlopeNone SlopeMetric = iota
	SlopeAvg
	SlopeMax
	SlopeTriangle
)

// HeuristicType selects whether Dijkstra edge weights use 2D or 3D
// Euclidean distance.
type HeuristicType int

// Heuristic distance metrics.
const (
	Heuristic2D HeuristicType = iota
	Heuristic3D
)

// CostScaleFactor scales a floating-point seconds-denominated cost into the
// integer cost the search driver expects.
const CostScaleFactor = 1000.0

// MaxHeuristicDistance is the finite sentinel used for a trav-node
// unreachable from a given source, chosen to avoid overflow when summed
// into costs.
const MaxHeuristicDistance = 99999.0

// Config is the immutable-for-the-lifetime-of-a-plan configuration spec
// section 3 describes.
type Config struct {
	Resolution float64

	RobotSizeX, RobotSizeY, RobotHeight float64

	MaxSlope      float64
	MaxStepHeight float64

	InclineLimitMinSlope float64
	InclineLimit         float64

	SlopeMetric      SlopeMetric
	SlopeMetricScale float64

	CostFunctionObstacleDist       float64
	CostFunctionObstacleMultiplier float64

	HeuristicType HeuristicType

	ParallelismEnabled bool

	TranslationalSpeed float64
	TurningSpeed       float64

	NumAngles int

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

// Validate checks the numeric invariants Config implies, the way the
// teacher's planner options validate before a plan is accepted.
func (c Config) Validate() error {
	switch {
	case c.Resolution <= 0:
		return errors.Errorf("resolution %v must be > 0", c.Resolution)
	case c.RobotSizeX <= 0 || c.RobotSizeY <= 0 || c.RobotHeight <= 0:
		return errors.Errorf("robot dimensions (%v, %v, %v) must all be > 0", c.RobotSizeX, c.RobotSizeY, c.RobotHeight)
	case c.MaxSlope <= 0 || c.MaxSlope > math.Pi/2:
		return errors.Errorf("maxSlope %v must be in (0, pi/2]", c.MaxSlope)
	case c.MaxStepHeight <= 0:
		return errors.Errorf("maxStepHeight %v must be > 0", c.MaxStepHeight)
	case c.InclineLimitMinSlope < 0 || c.InclineLimitMinSlope > c.MaxSlope:
		return errors.Errorf("inclineLimitMinSlope %v must be in [0, maxSlope]", c.InclineLimitMinSlope)
	case c.NumAngles <= 0:
		return errors.Errorf("numAngles %v must be > 0", c.NumAngles)
	case c.CostFunctionObstacleDist < 0:
		return errors.Errorf("costFunctionObstacleDist %v must be >= 0", c.CostFunctionObstacleDist)
	case c.TranslationalSpeed <= 0 || c.TurningSpeed <= 0:
		return errors.Errorf("translationalSpeed %v and turningSpeed %v must both be > 0", c.TranslationalSpeed, c.TurningSpeed)
	case c.RANSACMinInliers <= 0:
		return errors.Errorf("ransacMinInliers %v must be > 0", c.RANSACMinInliers)
	default:
		return nil
	}
}
