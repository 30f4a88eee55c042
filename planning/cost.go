package planning

import (
	"math"

	"github.com/Priyanka328/ugv-nav4d/primitives"
	"github.com/Priyanka328/ugv-nav4d/travmap"
)

func averageSlope(nodes []*travmap.Node) float64 {
	if len(nodes) == 0 {
		return 0
	}
	sum := 0.0
	for _, n := range nodes {
		sum += n.Slope
	}
	return sum / float64(len(nodes))
}

func maxSlopeOf(nodes []*travmap.Node) float64 {
	m := 0.0
	for _, n := range nodes {
		if n.Slope > m {
			m = n.Slope
		}
	}
	return m
}

// combineCost applies the same longer-of-translation-vs-rotation time
// model the heuristic uses (spec section 4.3) to recompute a motion's base
// cost from a 3D path length, used by the TRIANGLE slope metric.
func combineCost(dist, angularDist, speed, turningSpeed, multiplier float64) float64 {
	timeTranslation := dist / speed
	timeRotation := angularDist / turningSpeed
	return math.Max(timeTranslation, timeRotation) * multiplier * CostScaleFactor
}

// computeCost implements spec section 4.3's cost model: a slope
// contribution on top of the motion's base cost, plus an obstacle-
// proximity penalty.
func (e *Environment) computeCost(m primitives.Motion, pathNodes []*travmap.Node) float64 {
	cost := m.BaseCost
	switch e.cfg.SlopeMetric {
	case SlopeAvg:
		cost = m.BaseCost * (1 + e.cfg.SlopeMetricScale*averageSlope(pathNodes))
	case SlopeMax:
		cost = m.BaseCost * (1 + e.cfg.SlopeMetricScale*maxSlopeOf(pathNodes))
	case SlopeTriangle:
		startHeight := pathNodes[0].Height
		endHeight := pathNodes[len(pathNodes)-1].Height
		dxy := math.Hypot(float64(m.DX)*e.cfg.Resolution, float64(m.DY)*e.cfg.Resolution)
		l3 := math.Hypot(dxy, endHeight-startHeight)
		speed := math.Min(e.cfg.TranslationalSpeed, m.Speed)
		cost = combineCost(l3, m.AngularDist, speed, e.cfg.TurningSpeed, m.CostMultiplier)
	}
	cost += e.cfg.CostFunctionObstacleMultiplier * float64(e.obstacleNeighborCount(pathNodes))
	return cost
}

// obstacleNeighborCount breadth-first searches the trav graph out from
// pathNodes, within CostFunctionObstacleDist (2D, measured from whichever
// path node a given neighbor branched off of), counting how many reached
// nodes are not routable.
func (e *Environment) obstacleNeighborCount(pathNodes []*travmap.Node) int {
	if e.cfg.CostFunctionObstacleDist <= 0 || len(pathNodes) == 0 {
		return 0
	}
	res := e.cfg.Resolution
	maxDist2 := e.cfg.CostFunctionObstacleDist * e.cfg.CostFunctionObstacleDist

	type queued struct {
		node   *travmap.Node
		origin *travmap.Node
	}
	visited := make(map[uint32]bool)
	var queue []queued
	for _, n := range pathNodes {
		if !visited[n.ID] {
			visited[n.ID] = true
			queue = append(queue, queued{node: n, origin: n})
		}
	}

	count := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if !cur.node.Type.Routable() {
			count++
			continue
		}
		for _, nb := range cur.node.Neighbors {
			if visited[nb.ID] {
				continue
			}
			dx := float64(nb.Index.IX-cur.origin.Index.IX) * res
			dy := float64(nb.Index.IY-cur.origin.Index.IY) * res
			if dx*dx+dy*dy > maxDist2 {
				continue
			}
			visited[nb.ID] = true
			queue = append(queue, queued{node: nb, origin: cur.origin})
		}
	}
	return count
}
