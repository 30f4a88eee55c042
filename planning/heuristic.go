package planning

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/Priyanka328/ugv-nav4d/travmap"
)

// heuristicCache holds the per-trav-node distances populated once after
// SetGoal, looked up in O(1) by HeuristicToGoal/HeuristicToStart.
type heuristicCache struct {
	distToStart map[uint32]float64
	distToGoal  map[uint32]float64
}

func newHeuristicCache() *heuristicCache {
	return &heuristicCache{
		distToStart: make(map[uint32]float64),
		distToGoal:  make(map[uint32]float64),
	}
}

func edgeWeight(a, b r3.Vector, use3D bool) float64 {
	d := a.Sub(b)
	if !use3D {
		d.Z = 0
	}
	return d.Norm()
}

func edgeKey(a, b uint32) [2]uint32 {
	if a < b {
		return [2]uint32{a, b}
	}
	return [2]uint32{b, a}
}

// buildWeightedGraph lays every routable node in nodes into a gonum
// weighted undirected graph, with edge weight the Euclidean 2D or 3D
// distance between the nodes' positions as reported by posFn.
func buildWeightedGraph(nodes []*travmap.Node, posFn func(*travmap.Node) r3.Vector, use3D bool) *simple.WeightedUndirectedGraph {
	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for _, n := range nodes {
		g.AddNode(simple.Node(int64(n.ID)))
	}
	seen := make(map[[2]uint32]bool)
	for _, n := range nodes {
		if !n.Type.Routable() {
			continue
		}
		for _, nb := range n.Neighbors {
			if !nb.Type.Routable() {
				continue
			}
			key := edgeKey(n.ID, nb.ID)
			if seen[key] {
				continue
			}
			seen[key] = true
			w := edgeWeight(posFn(n), posFn(nb), use3D)
			g.SetWeightedEdge(simple.WeightedEdge{
				F: simple.Node(int64(n.ID)),
				T: simple.Node(int64(nb.ID)),
				W: w,
			})
		}
	}
	return g
}

// dijkstraDistances runs Dijkstra from source over g, returning a distance
// per node id for every id in ids; unreachable nodes are reported at
// MaxHeuristicDistance, the finite sentinel spec section 4.4 specifies.
func dijkstraDistances(g *simple.WeightedUndirectedGraph, source uint32, ids []uint32) map[uint32]float64 {
	out := make(map[uint32]float64, len(ids))
	if g.Node(int64(source)) == nil {
		for _, id := range ids {
			out[id] = MaxHeuristicDistance
		}
		return out
	}
	shortest := path.DijkstraFrom(simple.Node(int64(source)), g)
	for _, id := range ids {
		w := shortest.WeightTo(int64(id))
		if math.IsInf(w, 1) {
			w = MaxHeuristicDistance
		}
		out[id] = w
	}
	return out
}
