package spatialmath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
)

func TestRANSACPlaneFitFlatPlane(t *testing.T) {
	var points []r3.Vector
	for x := 0.0; x < 1.0; x += 0.1 {
		for y := 0.0; y < 1.0; y += 0.1 {
			points = append(points, r3.Vector{X: x, Y: y, Z: 0})
		}
	}
	plane, inliers, ok := RANSACPlaneFit(points, DefaultRANSACMaxIterations, DefaultRANSACInlierDistance, DefaultRANSACMinInliers, rand.New(rand.NewSource(42)))
	if !ok {
		t.Fatalf("RANSACPlaneFit() ok = false, want true")
	}
	if inliers != len(points) {
		t.Errorf("inliers = %d, want %d", inliers, len(points))
	}
	if slope := plane.Slope(); slope > 1e-6 {
		t.Errorf("Slope() = %v, want ~0 for a flat plane", slope)
	}
}

func TestRANSACPlaneFitTooFewPoints(t *testing.T) {
	points := []r3.Vector{{X: 0}, {X: 1}}
	_, _, ok := RANSACPlaneFit(points, DefaultRANSACMaxIterations, DefaultRANSACInlierDistance, DefaultRANSACMinInliers, nil)
	if ok {
		t.Errorf("RANSACPlaneFit() with 2 points, ok = true, want false")
	}
}

func TestRANSACPlaneFitTiltedPlane(t *testing.T) {
	slope := 0.2
	normal := r3.Vector{X: math.Sin(slope), Y: 0, Z: math.Cos(slope)}
	plane := NewPlane(r3.Vector{}, normal)
	var points []r3.Vector
	for x := -0.5; x <= 0.5; x += 0.1 {
		for y := -0.5; y <= 0.5; y += 0.1 {
			z, _ := plane.HeightAt(x, y)
			points = append(points, r3.Vector{X: x, Y: y, Z: z})
		}
	}
	fit, _, ok := RANSACPlaneFit(points, DefaultRANSACMaxIterations, DefaultRANSACInlierDistance, DefaultRANSACMinInliers, rand.New(rand.NewSource(7)))
	if !ok {
		t.Fatalf("RANSACPlaneFit() ok = false, want true")
	}
	if got := fit.Slope(); math.Abs(got-slope) > 0.05 {
		t.Errorf("Slope() = %v, want ~%v", got, slope)
	}
}
