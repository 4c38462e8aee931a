// Command api is the Waiverwire Data API server.
//
// Usage:
//
//	waiverwire-api
//	API_PORT=8080 waiverwire-api

// @title Waiverwire Data API
// @version 1.0.0
// @description Fantasy football API serving cross-platform player identity mappings and materialized waiver candidate features.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/gridironlabs/waiverwire/internal/api"
	"github.com/gridironlabs/waiverwire/internal/cache"
	"github.com/gridironlabs/waiverwire/internal/config"
	"github.com/gridironlabs/waiverwire/internal/db"
	"github.com/gridironlabs/waiverwire/internal/maintenance"
	"github.com/gridironlabs/waiverwire/internal/scheduler"
	"github.com/gridironlabs/waiverwire/internal/storage/postgres"
	"github.com/gridironlabs/waiverwire/internal/waiver"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Storage and refresh service
	stores := postgres.NewStores(pool)
	refresh := waiver.NewService(stores, logger)

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Start the recurring waiver refresh
	if cfg.RefreshEnabled {
		sched := scheduler.New(refresh, cfg, logger)
		go func() {
			if err := sched.Start(ctx); err != nil {
				logger.Error("Scheduler failed", "error", err)
			}
		}()
	} else {
		logger.Info("Waiver refresh scheduler disabled")
	}

	// Start retention sweeps (stale candidates, old snapshots)
	go maintenance.Start(ctx, pool.Pool, maintenance.DefaultConfig(), logger)

	// Create router
	router := api.NewRouter(pool, stores, refresh, appCache, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Waiverwire Data API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
