package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/medops/hospital-bulk/internal/batch"
	"github.com/medops/hospital-bulk/internal/config"
	"github.com/medops/hospital-bulk/internal/core"
	"github.com/medops/hospital-bulk/internal/hospital"
	"github.com/medops/hospital-bulk/internal/logging"
	"github.com/medops/hospital-bulk/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"hospital_api_base", cfg.Hospital.BaseURL,
		"upload_max_rows", cfg.Upload.MaxRows,
		"upload_concurrency", cfg.Upload.Concurrency,
		"upload_max_concurrent", cfg.Upload.MaxConcurrent,
	)

	// Client for the upstream hospital directory
	directory := hospital.New(cfg.Hospital.BaseURL, cfg.Hospital.Timeout)

	// In-memory batch registry; batches do not survive restarts
	registry := batch.NewRegistry()

	// Create service with config
	service := core.NewService(directory, registry, cfg)

	// Create server with config
	server := web.NewServer(service, directory, registry, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Wait for active uploads to complete (with timeout)
		if active := service.ActiveUploads(); active > 0 {
			slog.Info("waiting for uploads to complete", "active", active)
			if err := service.WaitForUploads(shutdownCtx); err != nil {
				slog.Warn("uploads did not complete in time", "error", err)
			} else {
				slog.Info("all uploads completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// Start server (uses addr from config internally)
	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
