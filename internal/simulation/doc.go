// Package simulation plays scripted leader failovers on the PD and TiKV
// groups of the cluster model.
//
// # Overview
//
// A failover is not computed by any consensus protocol. It is a fixed
// timeline: an ordered list of steps, each appending log lines, optionally
// changing node state and then pausing for a fixed delay.
//
// # Building a Timeline
//
// NewPlan inspects a snapshot of one group and refuses to start when the
// group is already unavailable (at most one node UP) or has no active leader.
// Otherwise it decides between two branches:
//
//	plan, err := simulation.NewPlan(store.Nodes())
//	if err != nil {
//	    // ErrClusterAlreadyUnavailable or ErrNoActiveLeader
//	}
//	timeline := plan.Timeline(simulation.ScriptFor(cluster.KindPD))
//
// If the nodes left after the leader dies still form a quorum
// (total/2 + 1), BuildStandardFailoverTimeline elects the first ELECTING
// node in list order. Otherwise BuildMajorityFailureTimeline leaves the
// survivors ELECTING until the next reset.
//
// # Running
//
// An Executor runs a timeline strictly in order. Delays go through a
// Sleeper, so tests can use Instant or a hand-released sleeper instead of
// real time.
//
// The Simulator ties everything together. One Coordinator, in state Idle or
// Running(kind), is shared by both groups: while any timeline runs, every
// trigger and every reset is rejected with ErrSimulationRunning.
//
//	sim := simulation.New(simulation.Options{Logger: logger})
//	if err := sim.TriggerPDFailover(); err != nil {
//	    return err
//	}
//	sim.Wait()
//	fmt.Println(sim.Logs())
package simulation
