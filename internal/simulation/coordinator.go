package simulation

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KilimcininKorOglu/failover/internal/cluster"
)

// RunState is the state of the coordinator: Idle, or Running a timeline on one group.
type RunState struct {
	Running bool
	Kind    cluster.Kind
	RunID   string
	Started time.Time
}

// String returns "Idle" or "Running(<kind>)".
func (s RunState) String() string {
	if !s.Running {
		return "Idle"
	}
	return "Running(" + s.Kind.String() + ")"
}

// Coordinator allows at most one timeline to run at a time, across all groups.
type Coordinator struct {
	mu    sync.Mutex
	state RunState
}

// NewCoordinator creates an idle coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// TryStart moves the coordinator from Idle to Running(kind).
// It returns false and leaves the state untouched if a timeline is already running.
func (c *Coordinator) TryStart(kind cluster.Kind) (RunState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Running {
		return c.state, false
	}

	c.state = RunState{
		Running: true,
		Kind:    kind,
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}
	return c.state, true
}

// Finish moves the coordinator back to Idle. Calling it while Idle does nothing.
func (c *Coordinator) Finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = RunState{}
}

// State returns the current state.
func (c *Coordinator) State() RunState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Busy reports whether a timeline is running.
func (c *Coordinator) Busy() bool {
	return c.State().Running
}
