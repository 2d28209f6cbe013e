package rest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/KilimcininKorOglu/failover/internal/logging"
)

// ServerConfig holds REST server configuration.
type ServerConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	RateLimit    int
	TrustProxy   bool
	CORSOrigins  []string
	Version      string
}

// DefaultServerConfig returns default configuration.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		RateLimit:    100,
		CORSOrigins:  []string{"*"},
		Version:      "dev",
	}
}

// Server is the REST API server.
type Server struct {
	config   *ServerConfig
	logger   logging.Logger
	handlers *Handlers
	router   *Router
	server   *http.Server
}

// NewServer creates a new REST server.
func NewServer(cfg *ServerConfig, sim Simulator, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}

	s := &Server{
		config:   cfg,
		logger:   logger,
		handlers: NewHandlers(sim, cfg.Version),
		router:   NewRouter(),
	}

	s.setupRoutes()
	s.setupMiddleware()

	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/api/v1/health", s.handlers.HandleHealth)

	s.router.GET("/api/v1/state", s.handlers.HandleState)
	s.router.GET("/api/v1/clusters/{kind}", s.handlers.HandleGetCluster)
	s.router.GET("/api/v1/logs", s.handlers.HandleGetLogs)
	s.router.GET("/api/v1/stream", s.handlers.HandleStream)

	s.router.POST("/api/v1/failover/{kind}", s.handlers.HandleFailover)
	s.router.POST("/api/v1/reset", s.handlers.HandleReset)
}

func (s *Server) setupMiddleware() {
	s.router.Use(RecoveryMiddleware(s.logger))
	s.router.Use(RequestIDMiddleware())
	s.router.Use(LoggingMiddleware(s.logger))
	s.router.Use(ConnectionTrackingMiddleware(s.handlers))

	if len(s.config.CORSOrigins) > 0 {
		s.router.Use(CORSMiddleware(s.config.CORSOrigins))
	}

	if s.config.RateLimit > 0 {
		s.router.Use(RateLimitMiddleware(s.config.RateLimit, s.config.TrustProxy))
	}
}

// Handler returns the routed handler with all middleware.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve accepts connections on listener until Stop is called. It returns nil
// after Stop and the accept error if the listener fails.
func (s *Server) Serve(listener net.Listener) error {
	s.logger.Info("REST server started", "address", listener.Addr().String())

	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("REST server: %w", err)
	}
	return nil
}

// Stop gracefully stops the REST server.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}

	s.logger.Info("REST server stopped")
	return nil
}
