package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bookstudio/webui/internal/api"
	"github.com/bookstudio/webui/internal/catalog"
	"github.com/bookstudio/webui/internal/config"
	"github.com/bookstudio/webui/internal/logging"
	"github.com/bookstudio/webui/internal/students"
	"github.com/bookstudio/webui/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"backend", cfg.Backend.BaseURL,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	client, err := api.New(cfg.Backend.BaseURL, cfg.Backend.RequestTimeout)
	if err != nil {
		slog.Error("failed to create backend client", "error", err)
		os.Exit(1)
	}

	loc := cfg.Export.Location()
	books := catalog.NewModule(client, loc, nil)
	studentsMod := students.NewModule(client, loc, nil)

	// Warm the dropdown caches; either page refreshes them again on load.
	warmCtx, cancelWarm := context.WithTimeout(context.Background(), 10*time.Second)
	if err := books.RefreshOptions(warmCtx); err != nil {
		slog.Warn("book options warmup failed", "error", err)
	}
	if err := studentsMod.RefreshOptions(warmCtx); err != nil {
		slog.Warn("student options warmup failed", "error", err)
	}
	cancelWarm()

	server := web.NewServer(cfg, books, studentsMod)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
