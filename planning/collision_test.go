package planning

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/Priyanka328/ugv-nav4d/mls"
	"github.com/Priyanka328/ugv-nav4d/spatialmath"
	"github.com/Priyanka328/ugv-nav4d/travmap"
)

func flatNodeAtOrigin() *travmap.Node {
	return &travmap.Node{
		ID:     0,
		Index:  mls.Index{},
		Height: 0,
		Plane:  spatialmath.NewPlane(r3.Vector{}, r3.Vector{Z: 1}),
	}
}

func TestBuildRobotBoxClearsFlatGround(t *testing.T) {
	cfg := testConfig()
	env := &Environment{cfg: cfg, grid: flatGrid(9, 0)}
	n := flatNodeAtOrigin()

	box := env.buildRobotBox(n, 0)
	aabb := box.WorldAABB()

	wantMinZ := cfg.RobotHeight / 4
	if math.Abs(aabb.Min.Z-wantMinZ) > 1e-9 {
		t.Errorf("box min Z = %v, want %v (RobotHeight/4 clearance above ground)", aabb.Min.Z, wantMinZ)
	}
	if aabb.Min.Z <= 0 {
		t.Errorf("box min Z = %v, box touches or penetrates the ground plane", aabb.Min.Z)
	}
}

func TestCheckCollisionFlatGroundNoCollision(t *testing.T) {
	cfg := testConfig()
	env := &Environment{cfg: cfg, grid: flatGrid(9, 0)}
	n := flatNodeAtOrigin()

	if err := env.checkCollision(n, 0); err != nil {
		t.Errorf("checkCollision() on flat ground = %v, want nil", err)
	}
}

func TestCheckCollisionObstacleInsideBoxCollides(t *testing.T) {
	cfg := testConfig()
	g := flatGrid(9, 0)
	// A patch rising into the middle of the robot's body, directly under
	// its footprint.
	g.SetTop(mls.Index{IX: 0, IY: 0}, cfg.RobotHeight/2)
	env := &Environment{cfg: cfg, grid: g}
	n := flatNodeAtOrigin()

	err := env.checkCollision(n, 0)
	if err == nil {
		t.Fatalf("checkCollision() = nil, want a collision error")
	}
	if kind := ClassifyError(err); kind != KindNotTraversable {
		t.Errorf("ClassifyError() = %v, want KindNotTraversable", kind)
	}
}

func TestCheckCollisionObstacleBelowBoxNoCollision(t *testing.T) {
	cfg := testConfig()
	g := flatGrid(9, 0)
	// A patch still well below the box's floating floor.
	g.SetTop(mls.Index{IX: 0, IY: 0}, cfg.RobotHeight/8)
	env := &Environment{cfg: cfg, grid: g}
	n := flatNodeAtOrigin()

	if err := env.checkCollision(n, 0); err != nil {
		t.Errorf("checkCollision() below box clearance = %v, want nil", err)
	}
}
