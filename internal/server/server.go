package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/coast-guide/agent-fleet/internal/config"
	"github.com/coast-guide/agent-fleet/internal/handler"
	"github.com/coast-guide/agent-fleet/internal/metrics"
	appmw "github.com/coast-guide/agent-fleet/internal/middleware"
	"github.com/coast-guide/agent-fleet/pkg/version"
)

// Server runs one status service.
type Server struct {
	cfg    *config.Config
	log    *zap.Logger
	router chi.Router
	http   *http.Server
}

// New creates a new server.
func New(cfg *config.Config, log *zap.Logger, deps *Deps) *Server {
	r := chi.NewRouter()

	metrics.SetBuildInfo(cfg.App.Name, version.Version, version.Commit)

	// Recoverer runs innermost so Metrics and Logging see the 500.
	r.Use(appmw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(appmw.Metrics)
	r.Use(appmw.Logging(log))
	r.Use(chimw.Recoverer)

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/", deps.Info.Info)
	r.Get("/status", handler.Status)
	r.Get("/ready", deps.Ready.Ready)
	r.Handle("/metrics", promhttp.Handler())

	return &Server{
		cfg:    cfg,
		log:    log,
		router: r,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           r,
			ReadHeaderTimeout: cfg.ReadTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.log.Info("starting server",
		zap.String("addr", s.http.Addr),
		zap.String("title", s.cfg.App.Title),
	)
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
