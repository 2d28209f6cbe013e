package rest

import (
	"time"

	"github.com/KilimcininKorOglu/failover/internal/cluster"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status      string          `json:"status"`
	Version     string          `json:"version"`
	Uptime      string          `json:"uptime"`
	UptimeSecs  int64           `json:"uptimeSecs"`
	StartTime   time.Time       `json:"startTime"`
	Connections int             `json:"connections"`
	Requests    int64           `json:"requests"`
	Simulating  bool            `json:"isSimulating"`
	Clusters    map[string]bool `json:"clusters"`
}

// ClusterResponse is the node list of one group.
type ClusterResponse struct {
	Cluster   string         `json:"cluster"`
	Available bool           `json:"available"`
	Nodes     []cluster.Node `json:"nodes"`
}

// FailoverResponse acknowledges a started failover.
type FailoverResponse struct {
	Status  string `json:"status"`
	Cluster string `json:"cluster"`
	RunID   string `json:"runId,omitempty"`
}

// LogQueryResponse represents a page of the simulation log.
type LogQueryResponse struct {
	Entries    []string `json:"entries"`
	TotalCount int      `json:"total_count"`
	Offset     int      `json:"offset"`
	Limit      int      `json:"limit"`
	HasMore    bool     `json:"has_more"`
}
