package rest

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/KilimcininKorOglu/failover/internal/logging"
)

// RequestIDHeader carries the request ID in requests and responses.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID retrieves the request ID from context.
func RequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}

// RequestIDMiddleware reuses the client's X-Request-ID or generates one,
// stores it in the request context and echoes it in the response.
func RequestIDMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = logging.GenerateRequestID()
			}
			w.Header().Set(RequestIDHeader, id)

			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// loggingResponseWriter wraps ResponseWriter and captures the status code.
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *loggingResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *loggingResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// LoggingMiddleware logs HTTP requests.
func LoggingMiddleware(logger logging.Logger) Middleware {
	restLogger := logger.WithSource("rest")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			msg := getAuditMessage(r.Method, r.URL.Path)

			// Skip logging for health checks
			if msg == "" {
				return
			}

			reqLogger := restLogger
			if id := RequestID(r); id != "" {
				reqLogger = reqLogger.WithRequestID(id)
			}

			reqLogger.Info(msg,
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration", time.Since(start).String(),
				"remoteAddr", r.RemoteAddr,
			)
		})
	}
}

// getAuditMessage returns a meaningful audit message based on path and method
func getAuditMessage(method, path string) string {
	switch {
	case path == "/api/v1/health":
		return ""
	case strings.HasPrefix(path, "/api/v1/failover/"):
		return "REST trigger failover"
	case path == "/api/v1/reset":
		return "REST reset simulation"
	case path == "/api/v1/state":
		return "REST get state"
	case strings.HasPrefix(path, "/api/v1/clusters/"):
		return "REST get cluster"
	case path == "/api/v1/logs":
		return "REST get logs"
	case path == "/api/v1/stream":
		return "REST stream closed"
	}
	return "REST request"
}

// CORSMiddleware handles CORS headers.
func CORSMiddleware(allowedOrigins []string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowed := false
			for _, o := range allowedOrigins {
				if o == "*" || o == origin {
					allowed = true
					break
				}
			}

			if allowed && origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
				w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
				w.Header().Set("Access-Control-Max-Age", "86400")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RecoveryMiddleware recovers from panics.
func RecoveryMiddleware(logger logging.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered", "error", err, "path", r.URL.Path)
					writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// limiterIdleTTL is how long a client's limiter is kept without requests.
const limiterIdleTTL = 3 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter keeps one token bucket per client IP and drops buckets of
// clients that went quiet.
type rateLimiter struct {
	rps        int
	trustProxy bool
	now        func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

func newRateLimiter(requestsPerSecond int, trustProxy bool) *rateLimiter {
	return &rateLimiter{
		rps:        requestsPerSecond,
		trustProxy: trustProxy,
		now:        time.Now,
		clients:    make(map[string]*clientLimiter),
	}
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= limiterIdleTTL {
		for key, c := range rl.clients {
			if now.Sub(c.lastSeen) >= limiterIdleTTL {
				delete(rl.clients, key)
			}
		}
		rl.lastSweep = now
	}

	c, ok := rl.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(rl.rps), rl.rps)}
		rl.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// RateLimitMiddleware limits the request rate per client IP. Each client
// may burst up to requestsPerSecond requests. X-Forwarded-For and X-Real-IP
// only identify the client when trustProxy is set.
func RateLimitMiddleware(requestsPerSecond int, trustProxy bool) Middleware {
	rl := newRateLimiter(requestsPerSecond, trustProxy)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(getClientIP(r, rl.trustProxy)) {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func getClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return xri
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ConnectionTrackingMiddleware tracks active connections.
func ConnectionTrackingMiddleware(handlers *Handlers) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlers.IncrementConnections()
			defer handlers.DecrementConnections()
			next.ServeHTTP(w, r)
		})
	}
}
