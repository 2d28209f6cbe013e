// Package cluster holds the node model of the failover simulator: the node
// records of the PD and TiKV groups, the fixed templates they start from and
// the store that owns the live node list of one group.
//
// # Overview
//
// Each group is an ordered, fixed-size list of Node values. A node never
// leaves its group; a failure is a status change from UP to DOWN and the only
// way back is a full reset from the templates:
//
//	store := cluster.NewStore(cluster.KindPD)
//	store.ApplyPatch(func(n cluster.Node) cluster.Node {
//	    if n.IsLeader {
//	        n.Status = cluster.StatusDown
//	        n.IsLeader = false
//	    }
//	    return n
//	})
//
// # Mutation Rules
//
// Store.ApplyPatch maps a function over every node and is the only per-node
// mutation primitive. Store.ReplaceAll swaps the whole list at once and is
// reserved for decisions that need to see every node (electing a winner) and
// for reset. Both keep order and cardinality; ReplaceAll refuses lists that
// change the size of the group or carry more than one leader.
//
// Templates returned by InitialNodes are fresh copies, so a running
// simulation can never leak state into a later reset.
package cluster
