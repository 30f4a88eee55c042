package planning

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/Priyanka328/ugv-nav4d/travmap"
)

func TestBuildWeightedGraphSkipsNonRoutableEdges(t *testing.T) {
	n0 := &travmap.Node{ID: 0, Type: travmap.Traversable}
	n1 := &travmap.Node{ID: 1, Type: travmap.Traversable}
	n2 := &travmap.Node{ID: 2, Type: travmap.Obstacle}
	n0.Neighbors = []*travmap.Node{n1}
	n1.Neighbors = []*travmap.Node{n0, n2}
	n2.Neighbors = []*travmap.Node{n1}
	nodes := []*travmap.Node{n0, n1, n2}

	posFn := func(n *travmap.Node) r3.Vector { return r3.Vector{X: float64(n.ID)} }
	g := buildWeightedGraph(nodes, posFn, false)

	if !g.HasEdgeBetween(0, 1) {
		t.Errorf("expected an edge between two traversable nodes")
	}
	if g.HasEdgeBetween(1, 2) {
		t.Errorf("expected no edge into a non-routable obstacle node")
	}
}

func TestDijkstraDistancesStraightLineAndUnreachable(t *testing.T) {
	n0 := &travmap.Node{ID: 0, Type: travmap.Traversable}
	n1 := &travmap.Node{ID: 1, Type: travmap.Traversable}
	n2 := &travmap.Node{ID: 2, Type: travmap.Traversable}
	n3 := &travmap.Node{ID: 3, Type: travmap.Traversable} // disconnected
	n0.Neighbors = []*travmap.Node{n1}
	n1.Neighbors = []*travmap.Node{n0, n2}
	n2.Neighbors = []*travmap.Node{n1}
	nodes := []*travmap.Node{n0, n1, n2, n3}

	posFn := func(n *travmap.Node) r3.Vector { return r3.Vector{X: float64(n.ID)} }
	g := buildWeightedGraph(nodes, posFn, false)

	ids := []uint32{0, 1, 2, 3}
	dist := dijkstraDistances(g, 0, ids)

	if dist[0] != 0 {
		t.Errorf("dist[0] = %v, want 0", dist[0])
	}
	if dist[1] != 1 {
		t.Errorf("dist[1] = %v, want 1", dist[1])
	}
	if dist[2] != 2 {
		t.Errorf("dist[2] = %v, want 2", dist[2])
	}
	if dist[3] != MaxHeuristicDistance {
		t.Errorf("dist[3] (disconnected) = %v, want sentinel %v", dist[3], MaxHeuristicDistance)
	}
}

func TestDijkstraDistancesUseVertical3DWhenRequested(t *testing.T) {
	n0 := &travmap.Node{ID: 0, Type: travmap.Traversable, Height: 0}
	n1 := &travmap.Node{ID: 1, Type: travmap.Traversable, Height: 3}
	n0.Neighbors = []*travmap.Node{n1}
	n1.Neighbors = []*travmap.Node{n0}
	nodes := []*travmap.Node{n0, n1}

	posFn := func(n *travmap.Node) r3.Vector { return r3.Vector{X: float64(n.ID), Z: n.Height} }

	g2D := buildWeightedGraph(nodes, posFn, false)
	dist2D := dijkstraDistances(g2D, 0, []uint32{1})
	if dist2D[1] != 1 {
		t.Errorf("2D distance = %v, want 1 (z dropped)", dist2D[1])
	}

	g3D := buildWeightedGraph(nodes, posFn, true)
	dist3D := dijkstraDistances(g3D, 0, []uint32{1})
	want := math.Hypot(1, 3)
	if math.Abs(dist3D[1]-want) > 1e-9 {
		t.Errorf("3D distance = %v, want %v", dist3D[1], want)
	}
}

func TestScenarioHeuristicToGoalStraightLineOnFlatPlane(t *testing.T) {
	g := flatGrid(24, 0)
	motions := forwardOnlyTable(100)
	cfg := testConfig()
	cfg.HeuristicType = Heuristic2D

	env, err := NewEnvironment(g, motions, cfg)
	if err != nil {
		t.Fatalf("NewEnvironment() error = %v", err)
	}
	if err := env.SetStart(r3.Vector{X: 0.05, Y: 0.05, Z: 0}, 0); err != nil {
		t.Fatalf("SetStart() error = %v", err)
	}
	if err := env.SetGoal(r3.Vector{X: 0.95, Y: 0.05, Z: 0}, 0); err != nil {
		t.Fatalf("SetGoal() error = %v", err)
	}

	startID, _, err := env.InitialIDs()
	if err != nil {
		t.Fatalf("InitialIDs() error = %v", err)
	}
	h, err := env.HeuristicToGoal(startID)
	if err != nil {
		t.Fatalf("HeuristicToGoal() error = %v", err)
	}
	want := int(math.Floor(0.9 / cfg.TranslationalSpeed * CostScaleFactor))
	if h != want {
		t.Errorf("HeuristicToGoal(start) = %d, want %d", h, want)
	}
}
