// Package travmap implements the Traversability Graph Builder: lazy
// construction of a sparse 3D graph of TravNodes over a Multi-Level Surface
// grid, classified by slope, obstruction, and step-height-linked
// neighboring.
package travmap

import (
	"github.com/golang/geo/r3"

	"github.com/Priyanka328/ugv-nav4d/mls"
	"github.com/Priyanka328/ugv-nav4d/spatialmath"
)

// NodeType classifies a TravNode once it has been expanded.
type NodeType int

// Node classification values, mirroring the original generator's
// TraversabilityNodeBase::Type.
const (
	Unset NodeType = iota
	Unknown
	Traversable
	Obstacle
	Frontier
)

// String implements fmt.Stringer.
func (t NodeType) String() string {
	switch t {
	case Unknown:
		return "UNKNOWN"
	case Traversable:
		return "TRAVERSABLE"
	case Obstacle:
		return "OBSTACLE"
	case Frontier:
		return "FRONTIER"
	default:
		return "UNSET"
	}
}

// Routable reports whether a search may traverse a node of this type:
// TRAVERSABLE and FRONTIER are interchangeable for routing purposes.
func (t NodeType) Routable() bool {
	return t == Traversable || t == Frontier
}

// Node is a TravNode: one per (cell, layer) of the trav grid.
type Node struct {
	ID    uint32
	Index mls.Index

	// Height is the node's z coordinate, adjusted at most once by the
	// plane re-fit during expansion.
	Height float64

	Plane          spatialmath.Plane
	Slope          float64
	SlopeDirection r3.Vector
	SlopeDirAtan2  float64

	Type     NodeType
	Expanded bool

	Neighbors []*Node
}

// hasNeighbor reports whether other is already linked.
func (n *Node) hasNeighbor(other *Node) bool {
	for _, nb := range n.Neighbors {
		if nb == other {
			return true
		}
	}
	return false
}

// link adds a symmetric neighbor relation between n and other, a no-op if
// already present.
func (n *Node) link(other *Node) {
	if n == other {
		return
	}
	if !n.hasNeighbor(other) {
		n.Neighbors = append(n.Neighbors, other)
	}
	if !other.hasNeighbor(n) {
		other.Neighbors = append(other.Neighbors, n)
	}
}
