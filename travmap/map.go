package travmap

import (
	"sync"

	"github.com/Priyanka328/ugv-nav4d/mls"
)

// Map is the TravMap: the arena owning every Node, addressed by dense id,
// plus the per-cell spatial index ("trav-grid") used to find candidate
// nodes at a given (ix, iy).
type Map struct {
	mu sync.Mutex

	resolution float64
	byID       []*Node
	byCell     map[mls.Index][]*Node
	nextID     uint32
}

// NewMap returns an empty TravMap for a grid of the given resolution.
func NewMap(resolution float64) *Map {
	return &Map{
		resolution: resolution,
		byCell:     make(map[mls.Index][]*Node),
	}
}

// Resolution returns the grid resolution this map was built for.
func (m *Map) Resolution() float64 { return m.resolution }

// NewNode allocates and inserts a new Node at idx with the given initial
// height, under the trav-grid insertion critical section.
func (m *Map) NewNode(idx mls.Index, height float64) *Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := &Node{ID: m.nextID, Index: idx, Height: height, Type: Unset}
	m.nextID++
	m.byID = append(m.byID, n)
	m.byCell[idx] = append(m.byCell[idx], n)
	return n
}

// NodesAt returns a snapshot of the nodes currently stored at idx.
func (m *Map) NodesAt(idx mls.Index) []*Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	src := m.byCell[idx]
	out := make([]*Node, len(src))
	copy(out, src)
	return out
}

// NodeByID returns the node with the given dense id, or nil if out of
// range.
func (m *Map) NodeByID(id uint32) *Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	if int(id) >= len(m.byID) {
		return nil
	}
	return m.byID[id]
}

// Nodes returns a snapshot of every node in the map, ordered by id.
func (m *Map) Nodes() []*Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Node, len(m.byID))
	copy(out, m.byID)
	return out
}

// NumNodes returns the number of nodes currently allocated.
func (m *Map) NumNodes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

// MarkUnexpanded resets n's expanded flag so the next ExpandNode call
// performs a fresh plane fit, used when seeding the goal per spec section
// 4.3 ("re-marks the goal trav-node as unexpanded").
func (m *Map) MarkUnexpanded(n *Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.Expanded = false
}

// Clear drops every node, invalidating all previously returned pointers.
// Environment.UpdateMap does not call it: it replaces the whole Map.
func (m *Map) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID = nil
	m.byCell = make(map[mls.Index][]*Node)
	m.nextID = 0
}
