package main

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/journalviz/internal/api"
	"github.com/MikeSquared-Agency/journalviz/internal/config"
	"github.com/MikeSquared-Agency/journalviz/internal/hermes"
	"github.com/MikeSquared-Agency/journalviz/internal/processor"
	"github.com/MikeSquared-Agency/journalviz/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			setupLogging(cfg.LogLevel)
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	logger := slog.Default()
	logger.Info("journalviz starting", "port", cfg.Port)

	opts, err := baseOptions(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// Database (optional, render ledger only)
	var counter api.RenderCounter
	if cfg.DatabaseURL != "" {
		db, err := store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		opts.Ledger = db
		counter = db
		logger.Info("database connected")
	} else {
		logger.Warn("DATABASE_URL not set, running without render ledger")
	}

	// NATS/Hermes (optional)
	var hermesClient *hermes.Client
	if cfg.NatsURL != "" {
		hermesClient, err = hermes.NewClient(cfg.NatsURL, cfg.NatsToken, logger)
		if err != nil {
			return err
		}
		defer hermesClient.Close()
		opts.Publisher = hermesClient
		logger.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		logger.Warn("NATS_URL not set, rendered events will not be published")
	}

	proc := processor.New(opts)

	if hermesClient != nil {
		if err := hermesClient.Subscribe(hermes.SubjectRequested, proc.HandleSubmission); err != nil {
			return err
		}
	}

	srv := api.NewServer(cfg.Port, cfg.APIToken, proc, counter, logger)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("journalviz ready", "port", cfg.Port, "collaborator", proc.CollaboratorName())

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		return errors.New("http server stopped")
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}
	logger.Info("journalviz stopped")
	return nil
}
