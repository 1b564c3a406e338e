package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notesapi/internal/config"
	"notesapi/internal/db"
	"notesapi/internal/notes"
	"notesapi/internal/server"
)

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Context for startup
	startCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	logger.Info("opening store", "driver", cfg.Store.Driver)
	store, err := db.OpenStore(startCtx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close store", "error", err)
		}
	}()

	if err := store.Migrate(startCtx); err != nil {
		return fmt.Errorf("migrate store: %w", err)
	}
	logger.Info("store ready", "driver", cfg.Store.Driver)

	// Wire dependencies
	noteSvc := notes.NewService(store, logger)
	srv := server.New(cfg.Server, server.NewRouter(noteSvc, logger, cfg.Server.EnableMCP))

	// Graceful shutdown
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		logger.Info("endpoints available",
			"api", "http://localhost:"+cfg.Server.Port+"/notes/",
			"web", "http://localhost:"+cfg.Server.Port+"/ui",
			"mcp", "http://localhost:"+cfg.Server.Port+"/mcp",
		)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-sigCtx.Done():
		logger.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}
