// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api assembles the Tasklist HTTP surface: the middleware chain, the
/auth, /users and /tasks route groups, health probes, metrics and the static
avatar files, behind one [http.Server].
*/
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/tasklist/internal/auth"
	"github.com/taibuivan/tasklist/internal/platform/constants"
	"github.com/taibuivan/tasklist/internal/platform/metrics"
	"github.com/taibuivan/tasklist/internal/platform/middleware"
	"github.com/taibuivan/tasklist/internal/tasks"
	"github.com/taibuivan/tasklist/internal/users"
)

// FilesPrefix is the public path locally stored avatars are served under.
const FilesPrefix = "/files"

// # Server Definitions

// Server owns the router and the [http.Server] listening on Settings.Port.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Settings carries the config values the server needs.
type Settings struct {
	Port    string
	Origins middleware.AppConfig

	// Metrics instruments every request and serves /metrics. Optional.
	Metrics *metrics.Metrics
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler, 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler, 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the login route.
	Auth *auth.Handler

	// Users handles registration, profiles and avatars.
	Users *users.Handler

	// Tasks handles the task board.
	Tasks *tasks.Handler

	// Files serves locally stored avatars. Nil when avatars live in S3.
	Files http.Handler
}

// # Server Initialization

// NewServer builds the router. ctx bounds background middleware work such as
// the rate limiter sweeper.
func NewServer(context context.Context, settings Settings, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// Order: identify, log, measure, bound, throttle, recover, authenticate.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	if settings.Metrics != nil {
		r.Use(settings.Metrics.Middleware)
	}
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(settings.Origins))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	if settings.Metrics != nil {
		r.Handle("/metrics", settings.Metrics.Handler())
	}

	// # Application API
	r.Mount("/auth", h.Auth.Routes())
	r.Mount("/users", h.Users.Routes())
	r.Mount("/tasks", h.Tasks.Routes())

	if h.Files != nil {
		r.Handle(FilesPrefix+"/*", http.StripPrefix(FilesPrefix, h.Files))
	}

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + settings.Port,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// Run serves until ctx is cancelled, then drains in-flight requests for up to
// [constants.ShutdownTimeout]. A listener failure is returned immediately.
func (s *Server) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api_server_listen_failed: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api_server_shutdown_failed: %w", err)
	}
	return nil
}
