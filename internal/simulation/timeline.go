package simulation

import (
	"time"

	"github.com/KilimcininKorOglu/failover/internal/cluster"
)

// Step delays.
const (
	AnnounceDelay        = 500 * time.Millisecond
	KillLeaderDelay      = 2000 * time.Millisecond
	AttemptElectionDelay = 2500 * time.Millisecond
	DetectFailureDelay   = 2000 * time.Millisecond
	ElectLeaderDelay     = 1500 * time.Millisecond
)

// StepKind names what a step does.
type StepKind uint8

// Step kinds.
const (
	StepAnnounce StepKind = iota
	StepKillLeader
	StepAttemptElection
	StepQuorumLost
	StepDetectFailure
	StepElectLeader
	StepRecovered
)

// String returns the string representation of a step kind.
func (k StepKind) String() string {
	switch k {
	case StepAnnounce:
		return "announce"
	case StepKillLeader:
		return "kill-leader"
	case StepAttemptElection:
		return "attempt-election"
	case StepQuorumLost:
		return "quorum-lost"
	case StepDetectFailure:
		return "detect-failure"
	case StepElectLeader:
		return "elect-leader"
	case StepRecovered:
		return "recovered"
	default:
		return "unknown"
	}
}

// Step is one unit of a timeline: log lines, an optional state change and a delay.
// At most one of Patch and Replace is set.
type Step struct {
	Kind     StepKind
	Messages []string

	// Patch is mapped over every node.
	Patch func(cluster.Node) cluster.Node

	// Replace computes the whole next node list from the current one.
	Replace func([]cluster.Node) []cluster.Node

	// Outcome, if set, describes the state after the change for the operational log.
	Outcome func([]cluster.Node) string

	Delay time.Duration
}

// Mutates reports whether the step changes node state.
func (s Step) Mutates() bool {
	return s.Patch != nil || s.Replace != nil
}

// Timeline is the ordered list of steps of one failover run.
type Timeline []Step

// Duration returns the sum of all step delays.
func (t Timeline) Duration() time.Duration {
	var d time.Duration
	for _, s := range t {
		d += s.Delay
	}
	return d
}

// Kinds returns the step kinds in order.
func (t Timeline) Kinds() []StepKind {
	kinds := make([]StepKind, len(t))
	for i, s := range t {
		kinds[i] = s.Kind
	}
	return kinds
}

// Plan is the precondition analysis of a group snapshot.
type Plan struct {
	Nodes           []cluster.Node
	Leader          cluster.Node
	Total           int
	UpCount         int
	RemainingUp     int
	Quorum          int
	MajorityFailure bool
}

// Quorum returns the minimum number of UP nodes a group of total nodes needs.
func Quorum(total int) int {
	return total/2 + 1
}

// NewPlan checks whether a leader failure can be simulated on nodes.
// It returns ErrClusterAlreadyUnavailable when at most one node is UP and
// ErrNoActiveLeader when no UP node is the leader.
func NewPlan(nodes []cluster.Node) (Plan, error) {
	upCount := cluster.CountStatus(nodes, cluster.StatusUp)
	if upCount <= 1 {
		return Plan{}, ErrClusterAlreadyUnavailable
	}

	leader, ok := cluster.FindActiveLeader(nodes)
	if !ok {
		return Plan{}, ErrNoActiveLeader
	}

	total := len(nodes)
	remaining := upCount - 1
	quorum := Quorum(total)

	return Plan{
		Nodes:           cluster.CloneNodes(nodes),
		Leader:          leader,
		Total:           total,
		UpCount:         upCount,
		RemainingUp:     remaining,
		Quorum:          quorum,
		MajorityFailure: remaining < quorum,
	}, nil
}

// Timeline builds the timeline matching the plan's branch.
func (p Plan) Timeline(script Script) Timeline {
	if p.MajorityFailure {
		return BuildMajorityFailureTimeline(p, script)
	}
	return BuildStandardFailoverTimeline(p, script)
}

// BuildStandardFailoverTimeline builds the run where the survivors still form
// a quorum: the leader dies, the followers elect the first candidate and the
// group recovers.
func BuildStandardFailoverTimeline(p Plan, script Script) Timeline {
	return Timeline{
		{
			Kind:     StepAnnounce,
			Messages: []string{script.Announce(false)},
			Delay:    AnnounceDelay,
		},
		killLeaderStep(p, script),
		{
			Kind:     StepDetectFailure,
			Messages: []string{script.DetectFailure},
			Patch:    startElecting,
			Delay:    DetectFailureDelay,
		},
		{
			Kind:     StepElectLeader,
			Messages: []string{script.ElectionStart},
			Replace:  electFirstCandidate,
			Outcome: func(nodes []cluster.Node) string {
				if leader, ok := cluster.FindActiveLeader(nodes); ok {
					return script.Winner(leader.Label)
				}
				return ""
			},
			Delay: ElectLeaderDelay,
		},
		{
			Kind:     StepRecovered,
			Messages: []string{script.Recovered},
		},
	}
}

// BuildMajorityFailureTimeline builds the run where the survivors lose quorum:
// the leader dies, the rest start an election that can never finish.
func BuildMajorityFailureTimeline(p Plan, script Script) Timeline {
	return Timeline{
		{
			Kind:     StepAnnounce,
			Messages: []string{script.Announce(true)},
			Delay:    AnnounceDelay,
		},
		killLeaderStep(p, script),
		{
			Kind:     StepAttemptElection,
			Messages: []string{script.AttemptElection},
			Patch:    startElecting,
			Delay:    AttemptElectionDelay,
		},
		{
			Kind: StepQuorumLost,
			Messages: []string{
				script.QuorumLost(p.RemainingUp, p.Total),
				script.Unavailable,
			},
		},
	}
}

func killLeaderStep(p Plan, script Script) Step {
	leaderID := p.Leader.ID
	return Step{
		Kind:     StepKillLeader,
		Messages: []string{script.KillLeader(p.Leader.Label)},
		Patch: func(n cluster.Node) cluster.Node {
			if n.ID == leaderID {
				n.Status = cluster.StatusDown
				n.IsLeader = false
			}
			return n
		},
		Delay: KillLeaderDelay,
	}
}

func startElecting(n cluster.Node) cluster.Node {
	if n.Status == cluster.StatusUp {
		n.Status = cluster.StatusElecting
	}
	return n
}

// electFirstCandidate makes the first ELECTING node (by list order) the UP
// leader and returns every other ELECTING node to UP.
func electFirstCandidate(nodes []cluster.Node) []cluster.Node {
	next := cluster.CloneNodes(nodes)

	winner := -1
	for i, n := range next {
		if n.Status == cluster.StatusElecting {
			winner = i
			break
		}
	}
	if winner < 0 {
		return next
	}

	for i := range next {
		if next[i].Status != cluster.StatusElecting {
			continue
		}
		next[i].Status = cluster.StatusUp
		if i == winner {
			next[i].IsLeader = true
		}
	}
	return next
}
