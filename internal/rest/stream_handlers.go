package rest

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/KilimcininKorOglu/failover/internal/simulation"
)

// HandleStream handles GET /api/v1/stream
//
// It writes the current view as one NDJSON line, then one line per change
// until the client goes away. A slow client only sees the latest view.
func (h *Handlers) HandleStream(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt64(&h.requestCount, 1)

	updates := make(chan simulation.View, 1)
	unsubscribe := h.sim.Subscribe(simulation.ObserverFunc(func(v simulation.View) {
		select {
		case updates <- v:
		default:
			select {
			case <-updates:
			default:
			}
			select {
			case updates <- v:
			default:
			}
		}
	}))
	defer unsubscribe()

	rc := http.NewResponseController(w)
	// Streams outlive the server write timeout.
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	encoder := json.NewEncoder(w)
	send := func(v simulation.View) bool {
		if err := encoder.Encode(v); err != nil {
			return false
		}
		return rc.Flush() == nil
	}

	if !send(h.sim.View()) {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case v := <-updates:
			if !send(v) {
				return
			}
		}
	}
}
