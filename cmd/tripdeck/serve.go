// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TripDeck Contributors

package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/tripdeck/tripdeck/internal/auth"
	authpg "github.com/tripdeck/tripdeck/internal/auth/postgres"
	"github.com/tripdeck/tripdeck/internal/config"
	"github.com/tripdeck/tripdeck/internal/httpapi"
	"github.com/tripdeck/tripdeck/internal/logging"
	"github.com/tripdeck/tripdeck/internal/observability"
	"github.com/tripdeck/tripdeck/internal/store"
	"github.com/tripdeck/tripdeck/pkg/errutil"
)

// shutdownTimeout bounds graceful shutdown of the HTTP servers.
const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the auth API server",
		Long: `Start the HTTP server that exposes registration, login, and
token-protected routes under /api, plus a separate metrics/health endpoint.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("listen-addr", "", "API listen address (default :8080)")
	cmd.Flags().String("metrics-addr", "", "metrics/health HTTP address (empty = disabled)")
	cmd.Flags().String("database-url", "", "PostgreSQL connection string")
	cmd.Flags().String("token-secret", "", "bearer token signing secret")
	cmd.Flags().Duration("token-validity", 0, "bearer token lifetime (default 24h)")
	cmd.Flags().String("log-format", "", "log format (json or text)")
	cmd.Flags().String("log-level", "", "minimum log level (debug, info, warn, error)")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logging.SetDefault("tripdeck", version, cfg.LogFormat, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("starting tripdeck", "listen_addr", cfg.ListenAddr, "log_format", cfg.LogFormat)

	pool, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer pool.Close()

	slog.Info("connected to database")

	tokens, err := auth.NewTokenService([]byte(cfg.TokenSecret), cfg.TokenValidity)
	if err != nil {
		return err
	}

	accounts := authpg.NewAccountRepository(pool)
	service := auth.NewService(accounts, auth.NewArgon2idHasher(), tokens)

	var metrics *observability.Metrics
	var obsServer *observability.Server
	var obsErrCh <-chan error

	if cfg.MetricsAddr != "" {
		obsServer = observability.NewServer(cfg.MetricsAddr, func() bool {
			return pool.Ping(ctx) == nil
		})
		metrics = obsServer.Metrics()

		obsErrCh, err = obsServer.Start()
		if err != nil {
			return err
		}
	}

	api := httpapi.NewAPI(service, metrics)
	apiServer := httpapi.NewServer(cfg.ListenAddr, api.Routes())

	apiErrCh, err := apiServer.Start()
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err = <-apiErrCh:
	case err = <-obsErrCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if stopErr := apiServer.Stop(shutdownCtx); stopErr != nil {
		errutil.LogError(slog.Default(), "api server shutdown failed", stopErr)
	}
	if obsServer != nil {
		if stopErr := obsServer.Stop(shutdownCtx); stopErr != nil {
			errutil.LogError(slog.Default(), "observability server shutdown failed", stopErr)
		}
	}

	return err
}
