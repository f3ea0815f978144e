// Package server serves the dashboard over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/matsen/confnet/internal/dashboard"
	"github.com/matsen/confnet/internal/metrics"
	"github.com/matsen/confnet/internal/record"
	"github.com/matsen/confnet/internal/viz"
)

// DatasetSource hands out the current dataset snapshot.
type DatasetSource interface {
	Dataset() *record.Dataset
}

// PaperIndex looks up the records a participant appears on.
type PaperIndex interface {
	PapersByParticipant(name string) ([]record.Record, error)
}

// Options configures a Server.
type Options struct {
	Render         dashboard.Options
	Page           viz.HTMLOptions
	RateLimit      float64 // requests per second; 0 disables limiting
	AllowedOrigins []string
}

// Server renders the dashboard for each request from the current snapshot.
type Server struct {
	source  DatasetSource
	index   PaperIndex
	opts    Options
	logger  *zap.Logger
	metrics *metrics.Collector
}

// New creates a server. A nil collector gets a private one.
func New(source DatasetSource, index PaperIndex, opts Options, logger *zap.Logger, m *metrics.Collector) *Server {
	if m == nil {
		m = metrics.NewCollector("confnet")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		source:  source,
		index:   index,
		opts:    opts,
		logger:  logger,
		metrics: m,
	}
}

// Router configures all routes and middleware.
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()

	router.Use(RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(Logger(s.logger))
	router.Use(chimiddleware.Recoverer)
	router.Use(s.metrics.Middleware)
	if s.opts.RateLimit > 0 {
		router.Use(RateLimit(s.opts.RateLimit, rateBurst(s.opts.RateLimit)))
	}
	if len(s.opts.AllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
			ExposedHeaders: []string{RequestIDHeader},
			MaxAge:         300,
		}))
	}

	router.Get("/", s.handleIndex)
	router.Get("/health", s.handleHealth)
	router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/render", s.handleRender)
		r.Get("/people/{name}/papers", s.handlePeoplePapers)
	})

	return router
}

func rateBurst(limit float64) int {
	if limit < 1 {
		return 1
	}
	return int(limit)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Dashboard listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("Shutting down dashboard")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
