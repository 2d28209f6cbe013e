package cluster

import (
	"fmt"
	"sync"
)

// Store owns the live node list of one group.
// Readers may call it concurrently with the single writer.
type Store struct {
	kind  Kind
	nodes []Node
	mu    sync.RWMutex
}

// NewStore creates a store holding the initial nodes of kind.
func NewStore(kind Kind) *Store {
	return &Store{
		kind:  kind,
		nodes: InitialNodes(kind),
	}
}

// Kind returns the group kind of the store.
func (s *Store) Kind() Kind {
	return s.kind
}

// Nodes returns a snapshot of the current node list.
func (s *Store) Nodes() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CloneNodes(s.nodes)
}

// ApplyPatch replaces every node with fn(node), keeping list order.
func (s *Store) ApplyPatch(fn func(Node) Node) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Node, len(s.nodes))
	for i, n := range s.nodes {
		next[i] = fn(n)
	}
	s.nodes = next
}

// ReplaceAll swaps the whole node list.
// The list must keep the group size, carry only nodes of this kind and hold at most one leader.
func (s *Store) ReplaceAll(nodes []Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(nodes) != len(s.nodes) {
		return fmt.Errorf("%w: have %d nodes, got %d", ErrCardinalityChanged, len(s.nodes), len(nodes))
	}

	leaders := 0
	for _, n := range nodes {
		if n.Kind != s.kind {
			return fmt.Errorf("%w: node %s is %s, store is %s", ErrKindMismatch, n.ID, n.Kind, s.kind)
		}
		if n.IsLeader {
			leaders++
		}
	}
	if leaders > 1 {
		return ErrMultipleLeaders
	}

	s.nodes = CloneNodes(nodes)
	return nil
}

// Reset restores the initial nodes of the store's kind.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = InitialNodes(s.kind)
}
