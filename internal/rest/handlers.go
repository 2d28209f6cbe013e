package rest

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/KilimcininKorOglu/failover/internal/cluster"
	"github.com/KilimcininKorOglu/failover/internal/simulation"
)

// Simulator is the part of the simulation engine the API drives.
type Simulator interface {
	Start(kind cluster.Kind) (simulation.RunState, error)
	Reset() error
	View() simulation.View
	Nodes(kind cluster.Kind) []cluster.Node
	LogsSince(i int) ([]string, int)
	Subscribe(obs simulation.Observer) func()
}

// Handlers contains all REST API handlers.
type Handlers struct {
	sim          Simulator
	version      string
	startTime    time.Time
	requestCount int64
	activeConns  int64
}

// NewHandlers creates new handlers.
func NewHandlers(sim Simulator, version string) *Handlers {
	return &Handlers{
		sim:       sim,
		version:   version,
		startTime: time.Now(),
	}
}

// IncrementConnections increments active connection count.
func (h *Handlers) IncrementConnections() {
	atomic.AddInt64(&h.activeConns, 1)
}

// DecrementConnections decrements active connection count.
func (h *Handlers) DecrementConnections() {
	atomic.AddInt64(&h.activeConns, -1)
}

// HandleHealth handles GET /api/v1/health
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.startTime)
	view := h.sim.View()

	clusters := make(map[string]bool, len(cluster.Kinds))
	for _, kind := range cluster.Kinds {
		clusters[kind.Slug()] = view.Available(kind)
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		Version:     h.version,
		Uptime:      uptime.String(),
		UptimeSecs:  int64(uptime.Seconds()),
		StartTime:   h.startTime,
		Connections: int(atomic.LoadInt64(&h.activeConns)),
		Requests:    atomic.LoadInt64(&h.requestCount),
		Simulating:  view.Simulating,
		Clusters:    clusters,
	})
}

// HandleState handles GET /api/v1/state
func (h *Handlers) HandleState(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt64(&h.requestCount, 1)
	writeJSON(w, http.StatusOK, h.sim.View())
}

// HandleGetCluster handles GET /api/v1/clusters/{kind}
func (h *Handlers) HandleGetCluster(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt64(&h.requestCount, 1)

	kind, err := cluster.ParseKind(Param(r, "kind"))
	if err != nil {
		writeSimulationError(w, err)
		return
	}

	nodes := h.sim.Nodes(kind)
	_, available := cluster.FindActiveLeader(nodes)

	writeJSON(w, http.StatusOK, ClusterResponse{
		Cluster:   kind.Slug(),
		Available: available,
		Nodes:     nodes,
	})
}

// HandleFailover handles POST /api/v1/failover/{kind}
func (h *Handlers) HandleFailover(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt64(&h.requestCount, 1)

	kind, err := cluster.ParseKind(Param(r, "kind"))
	if err != nil {
		writeSimulationError(w, err)
		return
	}

	state, err := h.sim.Start(kind)
	if err != nil {
		writeSimulationError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, FailoverResponse{
		Status:  "started",
		Cluster: kind.Slug(),
		RunID:   state.RunID,
	})
}

// HandleReset handles POST /api/v1/reset
func (h *Handlers) HandleReset(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt64(&h.requestCount, 1)

	if err := h.sim.Reset(); err != nil {
		writeSimulationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.sim.View())
}
