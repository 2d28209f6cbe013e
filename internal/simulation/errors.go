package simulation

import "errors"

// Simulation errors.
var (
	// ErrClusterAlreadyUnavailable is returned when at most one node of the group is UP.
	ErrClusterAlreadyUnavailable = errors.New("simulation: cluster already unavailable")

	// ErrNoActiveLeader is returned when no UP node of the group holds leadership.
	ErrNoActiveLeader = errors.New("simulation: no active leader")

	// ErrSimulationRunning is returned when a failover or reset is requested while a timeline runs.
	ErrSimulationRunning = errors.New("simulation: a timeline is already running")
)
