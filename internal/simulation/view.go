package simulation

import "github.com/KilimcininKorOglu/failover/internal/cluster"

// LinkKind distinguishes the lines drawn between nodes.
type LinkKind string

// Link kinds.
const (
	// LinkHeartbeat connects a leader to a follower of the same group.
	LinkHeartbeat LinkKind = "heartbeat"
	// LinkControl connects the PD leader to the TiKV leader.
	LinkControl LinkKind = "control"
)

// Link is a connection between two nodes. It is only drawn when Active,
// that is when both ends are UP.
type Link struct {
	From   string   `json:"from"`
	To     string   `json:"to"`
	Kind   LinkKind `json:"kind"`
	Active bool     `json:"active"`
}

// View is a read-only picture of the whole simulator for rendering.
type View struct {
	PD         []cluster.Node `json:"pd"`
	Storage    []cluster.Node `json:"tikv"`
	Logs       []string       `json:"logs"`
	Simulating bool           `json:"isSimulating"`
	Running    string         `json:"running,omitempty"`
	RunID      string         `json:"runId,omitempty"`
	Links      []Link         `json:"links"`
}

// Nodes returns the node list of kind.
func (v View) Nodes(kind cluster.Kind) []cluster.Node {
	if kind == cluster.KindStorage {
		return v.Storage
	}
	return v.PD
}

// Available reports whether the group of kind has an UP leader.
func (v View) Available(kind cluster.Kind) bool {
	_, ok := cluster.FindActiveLeader(v.Nodes(kind))
	return ok
}

// buildLinks derives the leader-to-follower heartbeats of both groups and the
// PD-to-TiKV control line between the two leaders.
func buildLinks(pd, storage []cluster.Node) []Link {
	links := make([]Link, 0, len(pd)+len(storage)+1)

	pdLeader, pdOK := cluster.FindLeader(pd)
	storageLeader, storageOK := cluster.FindLeader(storage)

	if pdOK && storageOK {
		links = append(links, newLink(pdLeader, storageLeader, LinkControl))
	}
	if pdOK {
		links = append(links, heartbeats(pdLeader, pd)...)
	}
	if storageOK {
		links = append(links, heartbeats(storageLeader, storage)...)
	}
	return links
}

func heartbeats(leader cluster.Node, nodes []cluster.Node) []Link {
	var links []Link
	for _, n := range nodes {
		if n.IsLeader {
			continue
		}
		links = append(links, newLink(leader, n, LinkHeartbeat))
	}
	return links
}

func newLink(from, to cluster.Node, kind LinkKind) Link {
	return Link{
		From:   from.ID,
		To:     to.ID,
		Kind:   kind,
		Active: from.Up() && to.Up(),
	}
}
