// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

/*
Package api assembles the HTTP surface of the PetVault server.

It owns the router, the middleware chain, and the http.Server lifecycle.
Domain handlers are injected through the [Handlers] registry, keeping this
package free of business logic.

# Route Map

	POST   /api/signup                    auth
	POST   /api/login                     auth
	POST   /api/logout                    auth
	GET    /api/user/info                 account
	PUT    /api/user/update-email         account
	PUT    /api/user/change-password      account
	DELETE /api/user/delete-account       account
	GET    /api/pets                      pets
	POST   /api/pets                      pets
	DELETE /api/pets/{petID}              pets
	GET    /api/documents/pets            documents
	POST   /api/documents                 documents
	GET    /api/documents/pet/{petID}     documents
	DELETE /api/documents/{documentID}    documents
	GET    /health                        liveness
	GET    /ready                         readiness
*/
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/lamnguyen/petvault/internal/platform/config"
	"github.com/lamnguyen/petvault/internal/platform/constants"
	"github.com/lamnguyen/petvault/internal/platform/middleware"
)

// Handlers is the registry of domain handlers mounted by the server.
type Handlers struct {
	Auth      Mountable
	Account   Mountable
	Pets      Mountable
	Documents Mountable
}

// Mountable is anything that can hand the server a sub-router.
type Mountable interface {
	Routes() chi.Router
}

// Server wraps the http.Server with its dependencies.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger

	// Infrastructure handles, kept for readiness probes.
	pool  *pgxpool.Pool
	cache *redis.Client
}

// NewServer builds the fully wired HTTP server.
//
// # Middleware Order
//
//  1. RequestID: correlation before anything can log.
//  2. StructuredLogger: observes the final status of every request.
//  3. Timeout: global request deadline.
//  4. PanicRecovery: converts panics into clean 500s.
//  5. Authenticate: resolves the session cookie into a caller identity.
//  6. CORS: origin checks for browser clients.
//
// RequireAuth is applied per route group, not globally, because the
// signup/login/logout and health endpoints must accept anonymous callers.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	resolver middleware.SessionResolver,
	handlers Handlers,
	pool *pgxpool.Pool,
	cache *redis.Client,
) *Server {
	router := chi.NewRouter()

	// ── Global middleware chain ──────────────────────────────────────────
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	router.Use(middleware.PanicRecovery(logger))
	router.Use(middleware.Authenticate(resolver))
	router.Use(middleware.CORS(cfg))
	router.Use(chimw.CleanPath)

	server := &Server{
		logger: logger,
		pool:   pool,
		cache:  cache,
	}

	// ── Operational probes ───────────────────────────────────────────────
	router.Get("/health", server.health)
	router.Get("/ready", server.ready)

	// ── API surface ──────────────────────────────────────────────────────
	router.Route("/api", func(api chi.Router) {

		// Authenticated resource groups
		api.Group(func(authenticated chi.Router) {
			authenticated.Use(middleware.RequireAuth)
			authenticated.Mount("/user", handlers.Account.Routes())
			authenticated.Mount("/pets", handlers.Pets.Routes())
			authenticated.Mount("/documents", handlers.Documents.Routes())
		})

		// Anonymous-capable endpoints (signup, login, logout)
		api.Mount("/", handlers.Auth.Routes())
	})

	server.httpServer = &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadTimeout:       constants.DefaultReadTimeout,
		WriteTimeout:      constants.DefaultWriteTimeout,
		IdleTimeout:       constants.DefaultIdleTimeout,
		ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
	}

	return server
}

// Handler exposes the fully assembled router, mainly for in-process tests.
func (server *Server) Handler() http.Handler {
	return server.httpServer.Handler
}

// Start begins serving HTTP traffic. It blocks until the server stops.
func (server *Server) Start() error {
	server.logger.Info("http_server_starting", slog.String("addr", server.httpServer.Addr))
	return server.httpServer.ListenAndServe()
}

// Shutdown gracefully drains in-flight requests.
func (server *Server) Shutdown(ctx context.Context) error {
	server.logger.Info("http_server_stopping")
	return server.httpServer.Shutdown(ctx)
}
