package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/KilimcininKorOglu/failover/internal/cluster"
	"github.com/KilimcininKorOglu/failover/internal/simulation"
)

// mapSimulationError maps a simulator error to HTTP status and error code.
func mapSimulationError(err error) (int, string, string) {
	switch {
	case errors.Is(err, simulation.ErrSimulationRunning):
		return http.StatusConflict, "simulation_running", "a simulation is already running"
	case errors.Is(err, simulation.ErrClusterAlreadyUnavailable):
		return http.StatusUnprocessableEntity, "cluster_unavailable", "cluster is already unavailable, reset first"
	case errors.Is(err, simulation.ErrNoActiveLeader):
		return http.StatusUnprocessableEntity, "no_active_leader", "cluster has no active leader"
	case errors.Is(err, cluster.ErrUnknownKind):
		return http.StatusBadRequest, "invalid_cluster", "cluster must be pd or tikv"
	default:
		return http.StatusInternalServerError, "internal_error", err.Error()
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Code:    status,
		Message: message,
	})
}

func writeSimulationError(w http.ResponseWriter, err error) {
	status, code, message := mapSimulationError(err)
	writeError(w, status, code, message)
}
