package travmap

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/Priyanka328/ugv-nav4d/mls"
)

func testConfig() Config {
	return Config{
		RobotSizeX:           0.3,
		RobotSizeY:           0.3,
		RobotHeight:          0.5,
		MaxSlope:             0.5,
		MaxStepHeight:        0.15,
		RANSACMaxIterations:  50,
		RANSACInlierDistance: 0.1,
		RANSACMinInliers:     5,
	}
}

// flatGrid builds a grid of flat patches at height z, resolution 0.1,
// covering indices -n/2..n/2 on both axes (n x n for odd n).
func flatGrid(n int, z float64) *mls.FakeGrid {
	g := mls.NewFakeGrid(0.1, r3.Vector{})
	half := n / 2
	for ix := -half; ix <= half; ix++ {
		for iy := -half; iy <= half; iy++ {
			g.SetTop(mls.Index{IX: int32(ix), IY: int32(iy)}, z)
		}
	}
	return g
}

func TestExpandNodeFlatPlaneIsTraversable(t *testing.T) {
	g := flatGrid(5, 0)
	b := NewBuilder(g, testConfig())
	n, err := b.GenerateStartNode(r3.Vector{X: 0.05, Y: 0.05, Z: 0})
	if err != nil {
		t.Fatalf("GenerateStartNode() error = %v", err)
	}
	if routable := b.ExpandNode(n); !routable {
		t.Fatalf("ExpandNode() = false, want true for a flat plane")
	}
	if n.Type != Traversable {
		t.Errorf("Type = %v, want TRAVERSABLE", n.Type)
	}
	if math.Abs(n.Slope) > 1e-6 {
		t.Errorf("Slope = %v, want ~0", n.Slope)
	}
}

func TestExpandNodeIdempotent(t *testing.T) {
	g := flatGrid(5, 0)
	b := NewBuilder(g, testConfig())
	n, err := b.GenerateStartNode(r3.Vector{X: 0.05, Y: 0.05, Z: 0})
	if err != nil {
		t.Fatalf("GenerateStartNode() error = %v", err)
	}
	first := b.ExpandNode(n)
	heightAfterFirst := n.Height
	neighborsAfterFirst := len(n.Neighbors)

	second := b.ExpandNode(n)
	if first != second {
		t.Errorf("ExpandNode() twice gave different routability: %v then %v", first, second)
	}
	if n.Height != heightAfterFirst {
		t.Errorf("second ExpandNode() changed height: %v -> %v", heightAfterFirst, n.Height)
	}
	if len(n.Neighbors) != neighborsAfterFirst {
		t.Errorf("second ExpandNode() changed neighbor count: %d -> %d", neighborsAfterFirst, len(n.Neighbors))
	}
}

func TestExpandNodeTooFewPatchesIsUnknown(t *testing.T) {
	g := mls.NewFakeGrid(0.1, r3.Vector{})
	g.SetTop(mls.Index{IX: 0, IY: 0}, 0)
	b := NewBuilder(g, testConfig())
	n, err := b.GenerateStartNode(r3.Vector{X: 0.05, Y: 0.05, Z: 0})
	if err != nil {
		t.Fatalf("GenerateStartNode() error = %v", err)
	}
	if routable := b.ExpandNode(n); routable {
		t.Fatalf("ExpandNode() = true, want false for a single isolated patch")
	}
	if n.Type != Unknown {
		t.Errorf("Type = %v, want UNKNOWN", n.Type)
	}
}

func TestAddConnectedPatchesRejectsTooSteepStep(t *testing.T) {
	g := flatGrid(5, 0)
	// Raise the neighbor directly to the east far beyond MaxStepHeight.
	g.SetTop(mls.Index{IX: 1, IY: 0}, 10)

	b := NewBuilder(g, testConfig())
	n, err := b.GenerateStartNode(r3.Vector{X: 0.05, Y: 0.05, Z: 0})
	if err != nil {
		t.Fatalf("GenerateStartNode() error = %v", err)
	}
	b.ExpandNode(n)

	eastIdx := mls.Index{IX: n.Index.IX + 1, IY: n.Index.IY}
	for _, nb := range n.Neighbors {
		if nb.Index == eastIdx {
			t.Errorf("node linked to neighbor at %v despite a %v step, want no link", eastIdx, 10.0)
		}
	}
}

func TestExpandAllReachesFlatNeighborhood(t *testing.T) {
	g := flatGrid(5, 0)
	b := NewBuilder(g, testConfig())
	start, err := b.GenerateStartNode(r3.Vector{X: 0, Y: 0, Z: 0})
	if err != nil {
		t.Fatalf("GenerateStartNode() error = %v", err)
	}
	b.ExpandNode(start)
	b.ExpandAll(start)

	if b.Map.NumNodes() < 2 {
		t.Errorf("NumNodes() = %d, want at least the start node plus a neighbor", b.Map.NumNodes())
	}
	for _, node := range b.Map.Nodes() {
		if !node.Expanded {
			t.Errorf("node %d at %v was never expanded by ExpandAll", node.ID, node.Index)
		}
	}
}
