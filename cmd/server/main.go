// Package main runs the read-only pools configuration service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/yourorg/pools-config/internal/config"
	"github.com/yourorg/pools-config/internal/network"
	"github.com/yourorg/pools-config/internal/otel"
	"github.com/yourorg/pools-config/internal/pools"
	"github.com/yourorg/pools-config/internal/server"
)

// main is the entry point for the application
func main() {
	if err := run(); err != nil {
		logrus.Fatalf("Server failed: %v", err)
	}
}

// run wires the service and serves until SIGINT or SIGTERM
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	setupLogging(cfg)

	shutdownTracer := otel.InitTracer(cfg)
	defer shutdownTracer()

	table, err := loadTable(cfg)
	if err != nil {
		return fmt.Errorf("failed to load pools table: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Options{
		Port:           cfg.Port,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		EnableMetrics:  cfg.EnableMetrics,
	}, table, resolveIdentity(ctx, cfg))

	return srv.Run(ctx)
}

// setupLogging configures the logging for the application
func setupLogging(cfg config.Config) {
	switch cfg.LogFormat {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	switch cfg.LogLevel {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "warn", "warning":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}

	logrus.Info("Logging configured")
}

func loadTable(cfg config.Config) (*pools.Table, error) {
	if cfg.PoolsFile == "" {
		return pools.NewTable(), nil
	}
	return config.LoadPoolsFile(cfg.PoolsFile)
}

// resolveIdentity asks the RPC endpoint for its chain when one is configured,
// otherwise ACTIVE_NETWORK decides.
func resolveIdentity(ctx context.Context, cfg config.Config) network.Identity {
	if cfg.RPCURL == "" {
		return network.NewStatic(cfg.ActiveNetwork)
	}

	id, err := network.DetectFromRPC(ctx, cfg.RPCURL, cfg.RPCTimeout)
	if err != nil {
		logrus.WithError(err).Warnf("Network detection failed, using ACTIVE_NETWORK=%s", cfg.ActiveNetwork)
		return network.NewStatic(cfg.ActiveNetwork)
	}
	return id
}
