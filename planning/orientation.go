package planning

import (
	"math"

	"github.com/Priyanka328/ugv-nav4d/travmap"
)

// lerp linearly interpolates y as x moves from x0 (where y=y0) to x1
// (where y=y1).
func lerp(x, x0, y0, x1, y1 float64) float64 {
	if x1 == x0 {
		return y0
	}
	t := (x - x0) / (x1 - x0)
	return y0 + t*(y1-y0)
}

func normalizeAngle(a float64) float64 {
	twoPi := 2 * math.Pi
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}

// angleInArc reports whether alpha falls in the arc [start, start+width],
// width assumed non-negative.
func angleInArc(alpha, start, width float64) bool {
	a := normalizeAngle(alpha - start)
	return a <= width
}

// checkOrientationAllowed implements spec section 4.3's orientation
// restriction: below inclineLimitMinSlope any heading is fine; above it,
// the robot must point up-slope or down-slope within a band that narrows
// linearly to InclineLimit as slope approaches MaxSlope.
func (e *Environment) checkOrientationAllowed(n *travmap.Node, alpha float64) (bool, error) {
	slope := n.Slope
	if slope < e.cfg.InclineLimitMinSlope {
		return true, nil
	}
	limit := lerp(slope, e.cfg.InclineLimitMinSlope, math.Pi/2, e.cfg.MaxSlope, e.cfg.InclineLimit)
	width := 2 * limit
	if width < 0 {
		return false, e.internalf("orientation check at node %d: negative segment width %.6f for slope %.6f", n.ID, width, slope)
	}
	start := n.SlopeDirAtan2 - limit
	if angleInArc(alpha, start, width) {
		return true, nil
	}
	if angleInArc(alpha, start+math.Pi, width) {
		return true, nil
	}
	return false, nil
}
