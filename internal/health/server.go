// Package health serves the standard gRPC health protocol for the simulated
// clusters.
//
// The service names "pd" and "tikv" report SERVING while their cluster has an
// UP leader and NOT_SERVING otherwise. The empty service name reports SERVING
// for as long as the process runs.
package health

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"

	"github.com/KilimcininKorOglu/failover/internal/cluster"
	"github.com/KilimcininKorOglu/failover/internal/logging"
	"github.com/KilimcininKorOglu/failover/internal/simulation"
)

// Server publishes cluster availability over grpc.health.v1.Health.
type Server struct {
	logger logging.Logger
	grpc   *grpc.Server
	health *health.Server
}

// NewServer creates a health server. The initial statuses are taken from view.
func NewServer(view simulation.View, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}

	opts := []grpc.ServerOption{
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle: 15 * time.Second,
			Time:              5 * time.Second,
			Timeout:           1 * time.Second,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
	}

	s := &Server{
		logger: logger.WithSource("health"),
		grpc:   grpc.NewServer(opts...),
		health: health.NewServer(),
	}

	healthpb.RegisterHealthServer(s.grpc, s.health)
	reflection.Register(s.grpc)

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.Observe(view)

	return s
}

// ServiceName returns the health service name of a cluster.
func ServiceName(kind cluster.Kind) string {
	return kind.Slug()
}

// Observe updates the per-cluster statuses from v. It implements
// simulation.Observer.
func (s *Server) Observe(v simulation.View) {
	for _, kind := range cluster.Kinds {
		status := healthpb.HealthCheckResponse_NOT_SERVING
		if v.Available(kind) {
			status = healthpb.HealthCheckResponse_SERVING
		}
		s.health.SetServingStatus(ServiceName(kind), status)
	}
}

// Serve accepts connections on listener until Stop is called. It returns nil
// after Stop and the accept error if the listener fails.
func (s *Server) Serve(listener net.Listener) error {
	s.logger.Info("gRPC health server started", "address", listener.Addr().String())

	if err := s.grpc.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("gRPC health server: %w", err)
	}
	return nil
}

// Stop marks every service NOT_SERVING and stops gracefully, forcing the
// stop when ctx expires first.
func (s *Server) Stop(ctx context.Context) error {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("gRPC health server stopped")
		return nil
	case <-ctx.Done():
		s.grpc.Stop()
		s.logger.Warn("gRPC health server force stopped")
		return ctx.Err()
	}
}
