package simulation

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/KilimcininKorOglu/failover/internal/cluster"
)

// applyTimeline runs every state change of timeline on nodes without delays or logging.
func applyTimeline(t *testing.T, nodes []cluster.Node, timeline Timeline) ([]cluster.Node, []string) {
	t.Helper()

	var messages []string
	current := cluster.CloneNodes(nodes)
	for _, step := range timeline {
		messages = append(messages, step.Messages...)
		switch {
		case step.Patch != nil:
			for i := range current {
				current[i] = step.Patch(current[i])
			}
		case step.Replace != nil:
			next := step.Replace(current)
			if len(next) != len(current) {
				t.Fatalf("step %s changed cardinality: %d -> %d", step.Kind, len(current), len(next))
			}
			current = next
		}
	}
	return current, messages
}

func TestQuorum(t *testing.T) {
	tests := []struct {
		total    int
		expected int
	}{
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 3},
		{5, 3},
		{7, 4},
	}

	for _, tt := range tests {
		if got := Quorum(tt.total); got != tt.expected {
			t.Errorf("Quorum(%d) = %d, want %d", tt.total, got, tt.expected)
		}
	}
}

func TestNewPlanPreconditions(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]cluster.Node)
		wantErr error
	}{
		{
			name: "one node up",
			mutate: func(n []cluster.Node) {
				n[1].Status = cluster.StatusDown
				n[2].Status = cluster.StatusDown
			},
			wantErr: ErrClusterAlreadyUnavailable,
		},
		{
			name: "no node up",
			mutate: func(n []cluster.Node) {
				for i := range n {
					n[i].Status = cluster.StatusDown
					n[i].IsLeader = false
				}
			},
			wantErr: ErrClusterAlreadyUnavailable,
		},
		{
			name: "electing survivors only",
			mutate: func(n []cluster.Node) {
				n[0].Status = cluster.StatusDown
				n[0].IsLeader = false
				n[1].Status = cluster.StatusElecting
				n[2].Status = cluster.StatusElecting
			},
			wantErr: ErrClusterAlreadyUnavailable,
		},
		{
			name: "no leader",
			mutate: func(n []cluster.Node) {
				n[0].IsLeader = false
			},
			wantErr: ErrNoActiveLeader,
		},
		{
			name: "leader flag on electing node",
			mutate: func(n []cluster.Node) {
				n[0].Status = cluster.StatusElecting
			},
			wantErr: ErrNoActiveLeader,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := cluster.InitialNodes(cluster.KindPD)
			tt.mutate(nodes)

			_, err := NewPlan(nodes)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewPlan error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewPlanBranches(t *testing.T) {
	t.Run("all up", func(t *testing.T) {
		plan, err := NewPlan(cluster.InitialNodes(cluster.KindPD))
		if err != nil {
			t.Fatalf("NewPlan failed: %v", err)
		}
		if plan.Leader.ID != "pd1" {
			t.Errorf("Leader = %s, want pd1", plan.Leader.ID)
		}
		if plan.Total != 3 || plan.UpCount != 3 || plan.RemainingUp != 2 || plan.Quorum != 2 {
			t.Errorf("unexpected counts: %+v", plan)
		}
		if plan.MajorityFailure {
			t.Error("three UP nodes must take the standard branch")
		}
	})

	t.Run("one already down", func(t *testing.T) {
		nodes := cluster.InitialNodes(cluster.KindStorage)
		nodes[2].Status = cluster.StatusDown

		plan, err := NewPlan(nodes)
		if err != nil {
			t.Fatalf("NewPlan failed: %v", err)
		}
		if plan.RemainingUp != 1 {
			t.Errorf("RemainingUp = %d, want 1", plan.RemainingUp)
		}
		if !plan.MajorityFailure {
			t.Error("two UP nodes out of three must take the majority-failure branch")
		}
	})
}

func TestNewPlanDoesNotAliasSnapshot(t *testing.T) {
	nodes := cluster.InitialNodes(cluster.KindPD)
	plan, err := NewPlan(nodes)
	if err != nil {
		t.Fatalf("NewPlan failed: %v", err)
	}

	nodes[0].Label = "changed"
	if plan.Nodes[0].Label != "PD 1" {
		t.Error("plan shares its node slice with the caller")
	}
}

func TestBuildStandardFailoverTimeline(t *testing.T) {
	nodes := cluster.InitialNodes(cluster.KindPD)
	plan, err := NewPlan(nodes)
	if err != nil {
		t.Fatalf("NewPlan failed: %v", err)
	}

	timeline := BuildStandardFailoverTimeline(plan, ScriptFor(cluster.KindPD))

	wantKinds := []StepKind{StepAnnounce, StepKillLeader, StepDetectFailure, StepElectLeader, StepRecovered}
	if !reflect.DeepEqual(timeline.Kinds(), wantKinds) {
		t.Fatalf("Kinds() = %v, want %v", timeline.Kinds(), wantKinds)
	}

	wantDelays := []time.Duration{500 * time.Millisecond, 2000 * time.Millisecond, 2000 * time.Millisecond, 1500 * time.Millisecond, 0}
	for i, step := range timeline {
		if step.Delay != wantDelays[i] {
			t.Errorf("step %s delay = %v, want %v", step.Kind, step.Delay, wantDelays[i])
		}
	}
	if timeline.Duration() != 6*time.Second {
		t.Errorf("Duration() = %v, want 6s", timeline.Duration())
	}

	final, messages := applyTimeline(t, nodes, timeline)

	wantMessages := []string{
		"Starting PD leader failover simulation...",
		"PD Leader node PD 1 fails!",
		"PD Followers detect leader failure.",
		"New PD leader election starts...",
		"PD cluster is healthy and managing the cluster again.",
	}
	if !reflect.DeepEqual(messages, wantMessages) {
		t.Errorf("messages = %q, want %q", messages, wantMessages)
	}

	if final[0].Status != cluster.StatusDown || final[0].IsLeader {
		t.Errorf("old leader = %+v, want DOWN follower", final[0])
	}
	if final[1].Status != cluster.StatusUp || !final[1].IsLeader {
		t.Errorf("pd2 = %+v, want UP leader", final[1])
	}
	if final[2].Status != cluster.StatusUp || final[2].IsLeader {
		t.Errorf("pd3 = %+v, want UP follower", final[2])
	}
}

func TestBuildStandardFailoverTimelineIsPure(t *testing.T) {
	nodes := cluster.InitialNodes(cluster.KindPD)
	plan, err := NewPlan(nodes)
	if err != nil {
		t.Fatalf("NewPlan failed: %v", err)
	}

	timeline := BuildStandardFailoverTimeline(plan, ScriptFor(cluster.KindPD))
	applyTimeline(t, nodes, timeline)

	if !reflect.DeepEqual(nodes, cluster.InitialNodes(cluster.KindPD)) {
		t.Error("building or applying the timeline mutated the input snapshot")
	}
}

func TestBuildMajorityFailureTimeline(t *testing.T) {
	nodes := cluster.InitialNodes(cluster.KindStorage)
	nodes[1].Status = cluster.StatusDown

	plan, err := NewPlan(nodes)
	if err != nil {
		t.Fatalf("NewPlan failed: %v", err)
	}

	timeline := plan.Timeline(ScriptFor(cluster.KindStorage))

	wantKinds := []StepKind{StepAnnounce, StepKillLeader, StepAttemptElection, StepQuorumLost}
	if !reflect.DeepEqual(timeline.Kinds(), wantKinds) {
		t.Fatalf("Kinds() = %v, want %v", timeline.Kinds(), wantKinds)
	}
	if timeline[2].Delay != AttemptElectionDelay {
		t.Errorf("attempt delay = %v, want %v", timeline[2].Delay, AttemptElectionDelay)
	}
	if timeline[3].Mutates() {
		t.Error("quorum-lost step must not change state")
	}

	final, messages := applyTimeline(t, nodes, timeline)

	wantMessages := []string{
		"Starting TiKV majority failure simulation...",
		"TiKV Leader peer on node TiKV 1 fails!",
		"Remaining follower attempts to start an election.",
		"Quorum lost (1/3 nodes active). Cannot elect a new leader.",
		"TiKV Region 1 is now unavailable for writes.",
	}
	if !reflect.DeepEqual(messages, wantMessages) {
		t.Errorf("messages = %q, want %q", messages, wantMessages)
	}

	wantStatus := []cluster.Status{cluster.StatusDown, cluster.StatusDown, cluster.StatusElecting}
	for i, n := range final {
		if n.Status != wantStatus[i] {
			t.Errorf("%s status = %v, want %v", n.ID, n.Status, wantStatus[i])
		}
		if n.IsLeader {
			t.Errorf("%s still holds leadership", n.ID)
		}
	}
}

func TestElectFirstCandidateWinnerDeterminism(t *testing.T) {
	tests := []struct {
		name       string
		failed     int
		wantWinner string
	}{
		{"leader first", 0, "pd2"},
		{"leader middle", 1, "pd1"},
		{"leader last", 2, "pd1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := cluster.InitialNodes(cluster.KindPD)
			for i := range nodes {
				nodes[i].IsLeader = i == tt.failed
			}

			plan, err := NewPlan(nodes)
			if err != nil {
				t.Fatalf("NewPlan failed: %v", err)
			}
			final, _ := applyTimeline(t, nodes, plan.Timeline(ScriptFor(cluster.KindPD)))

			leader, ok := cluster.FindActiveLeader(final)
			if !ok {
				t.Fatal("no leader after standard failover")
			}
			if leader.ID != tt.wantWinner {
				t.Errorf("winner = %s, want %s", leader.ID, tt.wantWinner)
			}
			if cluster.CountStatus(final, cluster.StatusElecting) != 0 {
				t.Error("ELECTING nodes left after election")
			}
		})
	}
}

func TestElectFirstCandidateWithoutCandidates(t *testing.T) {
	nodes := cluster.InitialNodes(cluster.KindPD)
	next := electFirstCandidate(nodes)

	if !reflect.DeepEqual(next, nodes) {
		t.Error("electing without candidates must leave nodes unchanged")
	}
}

func TestStandardOutcomeNamesWinner(t *testing.T) {
	plan, err := NewPlan(cluster.InitialNodes(cluster.KindStorage))
	if err != nil {
		t.Fatalf("NewPlan failed: %v", err)
	}
	timeline := plan.Timeline(ScriptFor(cluster.KindStorage))
	final, _ := applyTimeline(t, plan.Nodes, timeline)

	got := timeline[3].Outcome(final)
	want := "TiKV 2 wins the election and becomes the new leader for Region 1."
	if got != want {
		t.Errorf("Outcome = %q, want %q", got, want)
	}
}

func TestScriptRejection(t *testing.T) {
	script := ScriptFor(cluster.KindPD)

	if got := script.Rejection(ErrClusterAlreadyUnavailable); got != "PD cluster is already unavailable. Please Reset." {
		t.Errorf("Rejection(unavailable) = %q", got)
	}
	if got := script.Rejection(ErrNoActiveLeader); got != "No active PD leader to fail. Please Reset or wait." {
		t.Errorf("Rejection(no leader) = %q", got)
	}
	if got := script.Rejection(errors.New("other")); got != "" {
		t.Errorf("Rejection(other) = %q, want empty", got)
	}
}

func TestStepKindString(t *testing.T) {
	if StepElectLeader.String() != "elect-leader" {
		t.Errorf("StepElectLeader.String() = %q", StepElectLeader.String())
	}
	if StepKind(99).String() != "unknown" {
		t.Errorf("StepKind(99).String() = %q", StepKind(99).String())
	}
}
