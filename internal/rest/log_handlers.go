package rest

import (
	"net/http"
	"strconv"
	"sync/atomic"
)

const (
	defaultLogLimit = 100
	maxLogLimit     = 1000
)

// HandleGetLogs handles GET /api/v1/logs
//
// Query parameters: offset (default 0) and limit (default 100, max 1000).
func (h *Handlers) HandleGetLogs(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt64(&h.requestCount, 1)

	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_offset", "offset must be a non-negative integer")
			return
		}
		offset = n
	}

	limit := defaultLogLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = min(n, maxLogLimit)
	}

	entries, total := h.sim.LogsSince(offset)
	hasMore := len(entries) > limit
	if hasMore {
		entries = entries[:limit]
	}

	writeJSON(w, http.StatusOK, LogQueryResponse{
		Entries:    entries,
		TotalCount: total,
		Offset:     offset,
		Limit:      limit,
		HasMore:    hasMore,
	})
}
