package planning

import (
	"sync"

	"github.com/Priyanka328/ugv-nav4d/primitives"
	"github.com/Priyanka328/ugv-nav4d/travmap"
)

// StateID identifies a StateNode; the search driver's result path is a
// sequence of these.
type StateID uint32

// StateNode is a (trav-node, discrete-theta) pair, spec section 3's
// StateNode.
type StateNode struct {
	ID    StateID
	Trav  *travmap.Node
	Theta primitives.DiscreteAngle
}

type stateKey struct {
	travID uint32
	theta  primitives.DiscreteAngle
}

// StateTable is the append-only Hash table from state id to (TravNode,
// StateNode), keeping the theta-to-state critical section in one place.
type StateTable struct {
	mu    sync.Mutex
	byID  []*StateNode
	byKey map[stateKey]*StateNode
}

// NewStateTable returns an empty table.
func NewStateTable() *StateTable {
	return &StateTable{byKey: make(map[stateKey]*StateNode)}
}

// GetOrCreate returns the existing StateNode for (trav, theta), or
// materializes a new one, under the theta-to-state critical section.
func (t *StateTable) GetOrCreate(trav *travmap.Node, theta primitives.DiscreteAngle) *StateNode {
	key := stateKey{travID: trav.ID, theta: theta}
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.byKey[key]; ok {
		return s
	}
	s := &StateNode{ID: StateID(len(t.byID)), Trav: trav, Theta: theta}
	t.byID = append(t.byID, s)
	t.byKey[key] = s
	return s
}

// ByID returns the StateNode with the given id, or nil if out of range.
func (t *StateTable) ByID(id StateID) *StateNode {
	t.mu.Lock()
	defer t.mu.Unlock()
	if int(id) >= len(t.byID) {
		return nil
	}
	return t.byID[id]
}

// Clear drops every state, used when the elevation map is replaced.
func (t *StateTable) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byID = nil
	t.byKey = make(map[stateKey]*StateNode)
}
