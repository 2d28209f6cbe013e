// Package rest exposes the failover simulator over a JSON HTTP API.
//
// # Endpoints
//
//	GET  /api/v1/health          - Liveness, uptime and cluster availability
//	GET  /api/v1/state           - Both clusters, the log and derived links
//	GET  /api/v1/clusters/{kind} - Node list of pd or tikv
//	GET  /api/v1/logs            - Simulation log, paged with offset and limit
//	GET  /api/v1/stream          - NDJSON stream of the state after every change
//	POST /api/v1/failover/{kind} - Start a leader failure on pd or tikv
//	POST /api/v1/reset           - Restore both clusters and clear the log
//
// Errors use a JSON envelope:
//
//	{"error": "simulation_running", "code": 409, "message": "..."}
//
// A failover that cannot start because another one is running returns 409.
// A cluster that is already unavailable or has no UP leader returns 422;
// the simulator also records the reason in its log.
//
// # Example Usage
//
//	curl -X POST http://localhost:8080/api/v1/failover/pd
//	curl http://localhost:8080/api/v1/logs?offset=1
//	curl -N http://localhost:8080/api/v1/stream
package rest
