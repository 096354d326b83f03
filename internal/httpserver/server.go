// internal/httpserver/server.go
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/hfqr/internal/config"
	"github.com/MrSnakeDoc/hfqr/internal/httpserver/deps"
	"github.com/MrSnakeDoc/hfqr/internal/httpserver/mw"
	"github.com/MrSnakeDoc/hfqr/internal/httpserver/routes"
	"github.com/MrSnakeDoc/hfqr/internal/logger"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	http    *http.Server
	logger  logger.Logger
	started time.Time
}

// NewRouter builds the router (middlewares and route registration).
func NewRouter(requestTimeout time.Duration, d deps.Deps) http.Handler {
	r := chi.NewRouter()

	if requestTimeout <= 0 {
		requestTimeout = 15 * time.Second
	}

	// --- Global middlewares (safe defaults)
	r.Use(middleware.GetHead)
	r.Use(middleware.RequestID)                      // X-Request-ID on each request
	r.Use(middleware.Recoverer)                      // never crash the process on panic
	r.Use(middleware.Timeout(requestTimeout))        // per-request budget, upstream fetches included
	r.Use(mw.Log(d.Logger, d.Metrics, d.TrustProxy)) // structured access logs + request metrics
	r.Use(mw.CORS(mw.DefaultCORS()))                 // open CORS on every route

	routes.RegisterAll(r, d)

	return r
}

// New builds the HTTP server around NewRouter.
func New(cfg *config.Config, loggerClient logger.Logger, d deps.Deps) *Server {
	s := &http.Server{
		Addr:              cfg.ListenPort,
		Handler:           NewRouter(cfg.RequestTimeout, d),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return &Server{
		http:    s,
		logger:  loggerClient,
		started: d.StartTime,
	}
}

// Start runs the HTTP server (blocks until error or shutdown).
func (s *Server) Start() error {
	s.logger.Infof("HTTP server listening on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	// http.ErrServerClosed is expected on graceful shutdown.
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down...",
		logger.Duration("uptime", time.Since(s.started)))
	return s.http.Shutdown(ctx)
}
