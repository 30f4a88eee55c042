package spatialmath

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
)

// Default RANSAC plane-fit parameters, matching the original
// traversability generator's computePlaneRansac.
const (
	DefaultRANSACMaxIterations  = 50
	DefaultRANSACInlierDistance = 0.1
	DefaultRANSACMinInliers     = 5
)

// RANSACPlaneFit fits a plane to points by random sample consensus,
// adapted from the point-cloud plane segmentation this package is
// grounded on to the traversability generator's single-plane, fixed
// iteration-count use case. ok is false when fewer than minInliers points
// support the best candidate plane found.
func RANSACPlaneFit(points []r3.Vector, maxIterations int, inlierDistance float64, minInliers int, rng *rand.Rand) (plane Plane, inliers int, ok bool) {
	if len(points) < 3 {
		return Plane{}, 0, false
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	bestCount := 0
	var bestPlane Plane
	for iter := 0; iter < maxIterations; iter++ {
		i0, i1, i2 := rng.Intn(len(points)), rng.Intn(len(points)), rng.Intn(len(points))
		if i0 == i1 || i1 == i2 || i0 == i2 {
			continue
		}
		p0, p1, p2 := points[i0], points[i1], points[i2]
		normal := p1.Sub(p0).Cross(p2.Sub(p0))
		if normal.Norm() < 1e-9 {
			continue
		}
		candidate := NewPlane(p0, normal)
		count := 0
		for _, p := range points {
			if math.Abs(candidate.SignedDistance(p)) <= inlierDistance {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			bestPlane = candidate
		}
	}

	if bestCount < minInliers {
		return Plane{}, bestCount, false
	}
	return refitFromInliers(points, bestPlane, inlierDistance), bestCount, true
}

// refitFromInliers recomputes a stabler plane from the inlier set: centroid
// as the plane point, smallest-eigenvalue direction of the inliers'
// scatter matrix as the normal.
func refitFromInliers(points []r3.Vector, rough Plane, inlierDistance float64) Plane {
	var centroid r3.Vector
	var inliers []r3.Vector
	for _, p := range points {
		if math.Abs(rough.SignedDistance(p)) <= inlierDistance {
			inliers = append(inliers, p)
			centroid = centroid.Add(p)
		}
	}
	if len(inliers) == 0 {
		return rough
	}
	centroid = centroid.Mul(1 / float64(len(inliers)))

	var xx, xy, xz, yy, yz, zz float64
	for _, p := range inliers {
		d := p.Sub(centroid)
		xx += d.X * d.X
		xy += d.X * d.Y
		xz += d.X * d.Z
		yy += d.Y * d.Y
		yz += d.Y * d.Z
		zz += d.Z * d.Z
	}
	normal := smallestEigenvectorSym3(xx, xy, xz, yy, yz, zz, rough.Normal)
	return NewPlane(centroid, normal)
}

// smallestEigenvectorSym3 finds (approximately) the eigenvector belonging
// to the smallest eigenvalue of the symmetric 3x3 matrix
//
//	[xx xy xz]
//	[xy yy yz]
//	[xz yz zz]
//
// by power iteration on (trace*I - M), which has the same
// eigenvectors as M with eigenvalue order reversed. A handful of patches'
// worth of points is small enough that this converges in a few iterations.
func smallestEigenvectorSym3(xx, xy, xz, yy, yz, zz float64, guess r3.Vector) r3.Vector {
	trace := xx + yy + zz
	bxx, byy, bzz := trace-xx, trace-yy, trace-zz
	bxy, bxz, byz := -xy, -xz, -yz

	v := guess
	if v.Norm() < 1e-9 {
		v = r3.Vector{Z: 1}
	}
	v = v.Normalize()
	for i := 0; i < 25; i++ {
		next := r3.Vector{
			X: bxx*v.X + bxy*v.Y + bxz*v.Z,
			Y: bxy*v.X + byy*v.Y + byz*v.Z,
			Z: bxz*v.X + byz*v.Y + bzz*v.Z,
		}
		if next.Norm() < 1e-12 {
			break
		}
		v = next.Normalize()
	}
	return v
}
