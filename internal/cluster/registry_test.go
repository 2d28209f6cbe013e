package cluster

import (
	"reflect"
	"testing"
)

func TestInitialNodesLayout(t *testing.T) {
	tests := []struct {
		kind   Kind
		ids    []string
		leader string
	}{
		{KindPD, []string{"pd1", "pd2", "pd3"}, "pd1"},
		{KindStorage, []string{"tikv1", "tikv2", "tikv3"}, "tikv1"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			nodes := InitialNodes(tt.kind)
			if len(nodes) != len(tt.ids) {
				t.Fatalf("len = %d, want %d", len(nodes), len(tt.ids))
			}

			for i, n := range nodes {
				if n.ID != tt.ids[i] {
					t.Errorf("nodes[%d].ID = %q, want %q", i, n.ID, tt.ids[i])
				}
				if n.Kind != tt.kind {
					t.Errorf("nodes[%d].Kind = %v, want %v", i, n.Kind, tt.kind)
				}
				if n.Status != StatusUp {
					t.Errorf("nodes[%d].Status = %v, want UP", i, n.Status)
				}
				if n.IsLeader != (n.ID == tt.leader) {
					t.Errorf("nodes[%d].IsLeader = %v", i, n.IsLeader)
				}
			}
		})
	}
}

func TestInitialNodesReturnsCopies(t *testing.T) {
	first := InitialNodes(KindPD)
	first[0].Status = StatusDown
	first[0].IsLeader = false
	first[1].Label = "changed"

	second := InitialNodes(KindPD)
	if second[0].Status != StatusUp || !second[0].IsLeader {
		t.Error("mutating a returned list changed the template")
	}
	if second[1].Label != "PD 2" {
		t.Errorf("label = %q, want PD 2", second[1].Label)
	}
	if &first[0] == &second[0] {
		t.Error("InitialNodes returned the same backing array twice")
	}
}

func TestInitialNodesStable(t *testing.T) {
	for _, kind := range Kinds {
		if !reflect.DeepEqual(InitialNodes(kind), InitialNodes(kind)) {
			t.Errorf("InitialNodes(%v) differs between calls", kind)
		}
	}
}

func TestInitialNodesUnknownKind(t *testing.T) {
	if nodes := InitialNodes(Kind(7)); nodes != nil {
		t.Errorf("expected nil for unknown kind, got %v", nodes)
	}
}
