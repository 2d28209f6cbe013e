package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/KilimcininKorOglu/failover/internal/config"
	"github.com/KilimcininKorOglu/failover/internal/health"
	"github.com/KilimcininKorOglu/failover/internal/logging"
	"github.com/KilimcininKorOglu/failover/internal/rest"
	"github.com/KilimcininKorOglu/failover/internal/simulation"
)

const shutdownTimeout = 30 * time.Second

type serveOptions struct {
	configFile  string
	address     string
	grpcAddress string
	logLevel    string
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the optional gRPC health endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configFile)
			if err != nil {
				return err
			}
			opts.apply(cfg)

			if errs := config.ValidateConfig(cfg); len(errs) > 0 {
				return errors.Join(errs...)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, opts.configFile, nil)
		},
	}

	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVar(&opts.address, "address", "", "HTTP listen address (overrides config)")
	cmd.Flags().StringVar(&opts.grpcAddress, "grpc-address", "", "gRPC health listen address (overrides config)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	return cmd
}

func (o serveOptions) apply(cfg *config.Config) {
	if o.address != "" {
		cfg.REST.Address = o.address
	}
	if o.grpcAddress != "" {
		cfg.GRPC.Address = o.grpcAddress
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
}

// app wires the simulator to its network surfaces.
type app struct {
	logger     logging.Logger
	sim        *simulation.Simulator
	restServer *rest.Server
	grpcServer *health.Server
	watcher    *config.ConfigWatcher

	restAddress  string
	grpcAddress  string
	restListener net.Listener
	grpcListener net.Listener
}

func newApp(cfg *config.Config, logger logging.Logger) *app {
	sim := simulation.New(simulation.Options{Logger: logger})

	a := &app{
		logger: logger.WithSource("system"),
		sim:    sim,
		restServer: rest.NewServer(&rest.ServerConfig{
			ReadTimeout:  cfg.REST.ReadTimeout,
			WriteTimeout: cfg.REST.WriteTimeout,
			IdleTimeout:  cfg.REST.IdleTimeout,
			RateLimit:    cfg.REST.RateLimit,
			TrustProxy:   cfg.REST.TrustProxy,
			CORSOrigins:  cfg.REST.CORSOrigins,
			Version:      version,
		}, sim, logger),
		restAddress: cfg.REST.Address,
		grpcAddress: cfg.GRPC.Address,
	}

	if cfg.GRPC.Address != "" {
		a.grpcServer = health.NewServer(sim.View(), logger)
		sim.Subscribe(a.grpcServer)
	}

	return a
}

// listen binds every configured address. Nothing is bound when it fails.
func (a *app) listen() error {
	restListener, err := net.Listen("tcp", a.restAddress)
	if err != nil {
		return fmt.Errorf("failed to listen for REST: %w", err)
	}

	if a.grpcServer != nil {
		grpcListener, err := net.Listen("tcp", a.grpcAddress)
		if err != nil {
			restListener.Close()
			return fmt.Errorf("failed to listen for gRPC health: %w", err)
		}
		a.grpcListener = grpcListener
	}

	a.restListener = restListener
	return nil
}

// run serves on the bound listeners until ctx is done or a server fails,
// then shuts everything down. It returns the first server or shutdown error.
func (a *app) run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.restServer.Serve(a.restListener)
	})
	if a.grpcServer != nil {
		g.Go(func() error {
			return a.grpcServer.Serve(a.grpcListener)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")

		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.shutdown(stopCtx)
	})

	return g.Wait()
}

// watch reloads the config file on change. Only the log level is applied
// at runtime; other changes are reported and need a restart.
func (a *app) watch(path string, logger logging.Logger) error {
	w, err := config.NewConfigWatcher(&config.WatcherConfig{
		FilePath: path,
		OnChange: func(oldCfg, newCfg *config.Config) {
			a.handleConfigReload(logger, oldCfg, newCfg)
		},
		OnError: func(err error) {
			a.logger.Warn("config reload failed", "error", err)
		},
	})
	if err != nil {
		return err
	}

	a.watcher = w
	w.Start()
	a.logger.Info("config file watcher started", "file", path)
	return nil
}

func (a *app) handleConfigReload(logger logging.Logger, oldCfg, newCfg *config.Config) {
	if oldCfg.Logging.Level != newCfg.Logging.Level {
		logger.SetLevel(logging.ParseLevel(newCfg.Logging.Level))
		a.logger.Info("log level changed", "from", oldCfg.Logging.Level, "to", newCfg.Logging.Level)
	}
	if oldCfg.REST.Address != newCfg.REST.Address || oldCfg.GRPC.Address != newCfg.GRPC.Address {
		a.logger.Warn("listen address changes require a restart")
	}
}

// shutdown stops accepting requests, lets a running timeline finish, then
// stops the health endpoint.
func (a *app) shutdown(ctx context.Context) error {
	if a.watcher != nil {
		a.watcher.Stop()
	}

	var errs []error
	if err := a.restServer.Stop(ctx); err != nil {
		errs = append(errs, err)
	}

	drained := make(chan struct{})
	go func() {
		a.sim.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-ctx.Done():
		errs = append(errs, fmt.Errorf("waiting for running simulation: %w", ctx.Err()))
	}

	if a.grpcServer != nil {
		if err := a.grpcServer.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// serve runs until ctx is done or a server fails. When logger is nil one is
// built from cfg.
func serve(ctx context.Context, cfg *config.Config, configFile string, logger logging.Logger) error {
	if logger == nil {
		logger = logging.New(logging.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: cfg.Logging.Output,
		})
	}

	a := newApp(cfg, logger)
	if err := a.listen(); err != nil {
		return err
	}

	if configFile != "" {
		if err := a.watch(configFile, logger); err != nil {
			a.logger.Warn("failed to create config watcher", "error", err)
		}
	}

	return a.run(ctx)
}
