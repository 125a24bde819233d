package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"recipe-backend/internal/bootstrap"
	"recipe-backend/internal/shared/config"
	"recipe-backend/internal/shared/server"
	"recipe-backend/internal/shared/telemetry"
)

const shutdownTimeout = 10 * time.Second

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "recipes",
		Short:        "In-memory recipe store with search, favorites and recommendations",
		SilenceUsage: true,
	}
	cmd.AddCommand(serveCmd())
	return cmd
}

func serveCmd() *cobra.Command {
	var (
		port   string
		noSeed bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API in front of a fresh in-memory recipe store.

Configuration is read from config.yaml (or CONFIG_PATH) and environment
variables such as PORT, LOG_LEVEL and RECOMMEND_SEED. State is not persisted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			if noSeed {
				cfg.SeedSamples = false
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides PORT)")
	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "Start with an empty store")

	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	telemetry.Init(telemetry.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	app, err := bootstrap.Build(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              server.Addr(cfg.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		telemetry.Info("server.start", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	telemetry.Info("server.shutdown", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
