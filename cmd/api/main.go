// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

/*
PetVault API server entry point.

Startup sequence:

 1. Load configuration from the environment.
 2. Configure structured logging (JSON in production, text in development).
 3. Apply pending database migrations.
 4. Connect PostgreSQL, Redis, and the two asset directories.
 5. Wire repositories, services, and HTTP handlers.
 6. Serve until SIGINT/SIGTERM, then drain gracefully.
*/
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lamnguyen/petvault/internal/api"
	"github.com/lamnguyen/petvault/internal/documents"
	"github.com/lamnguyen/petvault/internal/pets"
	"github.com/lamnguyen/petvault/internal/platform/assets"
	"github.com/lamnguyen/petvault/internal/platform/config"
	"github.com/lamnguyen/petvault/internal/platform/constants"
	"github.com/lamnguyen/petvault/internal/platform/migration"
	"github.com/lamnguyen/petvault/internal/platform/postgres"
	redisplatform "github.com/lamnguyen/petvault/internal/platform/redis"
	"github.com/lamnguyen/petvault/internal/users/account"
	"github.com/lamnguyen/petvault/internal/users/auth"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 1. Configuration ─────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// ── 2. Logging ───────────────────────────────────────────────────────
	logger := newLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("starting",
		slog.String("service", constants.AppName),
		slog.String("version", constants.AppVersion),
		slog.String("environment", cfg.Environment),
	)

	// ── 3. Schema migrations ─────────────────────────────────────────────
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
		return err
	}

	// ── 4. Infrastructure ────────────────────────────────────────────────
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	cache, err := redisplatform.NewClient(ctx, cfg.RedisURL, logger)
	if err != nil {
		return err
	}
	defer func() { _ = cache.Close() }()

	pictureStore, err := assets.NewStore(cfg.PictureDir)
	if err != nil {
		return err
	}
	documentStore, err := assets.NewStore(cfg.DocumentDir)
	if err != nil {
		return err
	}

	// ── 5. Domain wiring ─────────────────────────────────────────────────
	authService := auth.NewService(
		auth.NewPostgresUserRepository(pool),
		auth.NewRedisSessionRepository(cache),
		logger,
	)
	accountService := account.NewService(
		account.NewPostgresRepository(pool),
		pictureStore,
		documentStore,
		logger,
	)
	petService := pets.NewService(
		pets.NewPostgresRepository(pool),
		pictureStore,
		documentStore,
		logger,
	)
	documentService := documents.NewService(
		documents.NewPostgresRepository(pool),
		petService,
		documentStore,
		logger,
	)

	handlers := api.Handlers{
		Auth:      auth.NewHandler(authService, !cfg.IsDevelopment()),
		Account:   account.NewHandler(accountService, authService),
		Pets:      pets.NewHandler(petService),
		Documents: documents.NewHandler(documentService, petService),
	}

	server := api.NewServer(cfg, logger, authService, handlers, pool, cache)

	// ── 6. Serve and drain ───────────────────────────────────────────────
	serveErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("stopped")
	return nil
}

// newLogger builds the process-wide structured logger.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.IsDevelopment() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}
