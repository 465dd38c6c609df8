package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"txn-analytics/internal/config"
	"txn-analytics/internal/middleware"
	"txn-analytics/internal/observability"
	"txn-analytics/internal/server"
	"txn-analytics/internal/services"
	"txn-analytics/internal/store"
)

const ledgerLoadTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the report API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"addr", cfg.Address(),
	)

	ledger := store.NewLedger(logger)
	ctx, cancel := context.WithTimeout(context.Background(), ledgerLoadTimeout)
	defer cancel()

	if err := ledger.LoadCSV(ctx, cfg.Data.TransactionsFile); err != nil {
		return fmt.Errorf("load transaction ledger: %w", err)
	}

	countries := store.NewCountries(cfg.Data.CountriesFile, logger)
	reporter := services.NewReporter(ledger, countries, logger)

	srv := server.NewServer(reporter, ledger, countries, logger)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      middlewareChain(srv),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("shutting down report service")
		return nil
	})

	if err := gracefulServer.ListenAndServe(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	logger.Info("application stopped gracefully")
	return nil
}
