package simulation

import (
	"fmt"

	"github.com/KilimcininKorOglu/failover/internal/cluster"
)

// Script holds the wording a group uses for its log lines.
// Fields ending in "Format" are fmt format strings.
type Script struct {
	AlreadyUnavailable string
	NoActiveLeader     string
	AnnounceStandard   string
	AnnounceMajority   string
	KillLeaderFormat   string // leader label
	AttemptElection    string
	QuorumLostFormat   string // remaining UP nodes, total nodes
	Unavailable        string
	DetectFailure      string
	ElectionStart      string
	WinnerFormat       string // winner label
	Recovered          string
}

var pdScript = Script{
	AlreadyUnavailable: "PD cluster is already unavailable. Please Reset.",
	NoActiveLeader:     "No active PD leader to fail. Please Reset or wait.",
	AnnounceStandard:   "Starting PD leader failover simulation...",
	AnnounceMajority:   "Starting PD majority failure simulation...",
	KillLeaderFormat:   "PD Leader node %s fails!",
	AttemptElection:    "Remaining PD node attempts to start an election.",
	QuorumLostFormat:   "Quorum lost (%d/%d nodes active). Cannot elect a new PD leader.",
	Unavailable:        "PD cluster is now unavailable.",
	DetectFailure:      "PD Followers detect leader failure.",
	ElectionStart:      "New PD leader election starts...",
	WinnerFormat:       "%s is elected as the new PD leader.",
	Recovered:          "PD cluster is healthy and managing the cluster again.",
}

var storageScript = Script{
	AlreadyUnavailable: "TiKV cluster already unavailable. Please Reset.",
	NoActiveLeader:     "No active TiKV leader to fail. Please Reset or wait.",
	AnnounceStandard:   "Starting TiKV leader failover simulation...",
	AnnounceMajority:   "Starting TiKV majority failure simulation...",
	KillLeaderFormat:   "TiKV Leader peer on node %s fails!",
	AttemptElection:    "Remaining follower attempts to start an election.",
	QuorumLostFormat:   "Quorum lost (%d/%d nodes active). Cannot elect a new leader.",
	Unavailable:        "TiKV Region 1 is now unavailable for writes.",
	DetectFailure:      "Followers detect leader failure after timeout.",
	ElectionStart:      "New leader election starts for Region 1...",
	WinnerFormat:       "%s wins the election and becomes the new leader for Region 1.",
	Recovered:          "Region 1 is operational again with a new leader.",
}

// ScriptFor returns the wording of the given group.
func ScriptFor(kind cluster.Kind) Script {
	if kind == cluster.KindStorage {
		return storageScript
	}
	return pdScript
}

// Announce returns the opening line of a run.
func (s Script) Announce(majority bool) string {
	if majority {
		return s.AnnounceMajority
	}
	return s.AnnounceStandard
}

// KillLeader returns the line reporting the leader failure.
func (s Script) KillLeader(label string) string {
	return fmt.Sprintf(s.KillLeaderFormat, label)
}

// QuorumLost returns the line reporting the surviving node count.
func (s Script) QuorumLost(remaining, total int) string {
	return fmt.Sprintf(s.QuorumLostFormat, remaining, total)
}

// Winner returns the line naming the elected node.
func (s Script) Winner(label string) string {
	return fmt.Sprintf(s.WinnerFormat, label)
}

// Rejection returns the log line for a failed precondition.
// Errors that are not preconditions yield "".
func (s Script) Rejection(err error) string {
	switch err {
	case ErrClusterAlreadyUnavailable:
		return s.AlreadyUnavailable
	case ErrNoActiveLeader:
		return s.NoActiveLeader
	default:
		return ""
	}
}
