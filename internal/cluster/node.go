package cluster

import (
	"fmt"
	"strings"
)

// Kind identifies which group a node belongs to.
type Kind uint8

// Node kinds.
const (
	KindPD Kind = iota
	KindStorage
)

// Kinds lists every group in display order.
var Kinds = []Kind{KindPD, KindStorage}

// String returns the string representation of a node kind.
func (k Kind) String() string {
	switch k {
	case KindPD:
		return "PD"
	case KindStorage:
		return "TIKV"
	default:
		return "unknown"
	}
}

// Slug returns the lower-case name used in URLs, CLI arguments and health service names.
func (k Kind) Slug() string {
	switch k {
	case KindPD:
		return "pd"
	case KindStorage:
		return "tikv"
	default:
		return "unknown"
	}
}

// ParseKind parses a node kind. It accepts "pd", "storage" and "tikv" in any case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pd":
		return KindPD, nil
	case "storage", "tikv":
		return KindStorage, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Status is the availability state of a node.
type Status uint8

// Node statuses.
const (
	StatusUp Status = iota
	StatusDown
	StatusElecting
)

// String returns the string representation of a node status.
func (s Status) String() string {
	switch s {
	case StatusUp:
		return "UP"
	case StatusDown:
		return "DOWN"
	case StatusElecting:
		return "ELECTING"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "UP":
		*s = StatusUp
	case "DOWN":
		*s = StatusDown
	case "ELECTING":
		*s = StatusElecting
	default:
		return fmt.Errorf("cluster: unknown node status %q", text)
	}
	return nil
}

// Position is the display position of a node as percentage strings.
type Position struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// Node is a single member of a group.
type Node struct {
	ID       string   `json:"id"`
	Kind     Kind     `json:"type"`
	IsLeader bool     `json:"isLeader"`
	Status   Status   `json:"status"`
	Position Position `json:"position"`
	Label    string   `json:"label"`
}

// Up reports whether the node is UP.
func (n Node) Up() bool {
	return n.Status == StatusUp
}

// ActiveLeader reports whether the node is UP and holds leadership.
func (n Node) ActiveLeader() bool {
	return n.IsLeader && n.Status == StatusUp
}

// Role returns "Leader" or "Follower".
func (n Node) Role() string {
	if n.IsLeader {
		return "Leader"
	}
	return "Follower"
}

// CloneNodes returns a copy of nodes. A nil slice stays nil.
func CloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	copy(out, nodes)
	return out
}

// CountStatus returns the number of nodes with the given status.
func CountStatus(nodes []Node, status Status) int {
	count := 0
	for _, n := range nodes {
		if n.Status == status {
			count++
		}
	}
	return count
}

// FindLeader returns the first node holding leadership, regardless of status.
func FindLeader(nodes []Node) (Node, bool) {
	for _, n := range nodes {
		if n.IsLeader {
			return n, true
		}
	}
	return Node{}, false
}

// FindActiveLeader returns the first UP node holding leadership.
func FindActiveLeader(nodes []Node) (Node, bool) {
	for _, n := range nodes {
		if n.ActiveLeader() {
			return n, true
		}
	}
	return Node{}, false
}
