// Package web serves the dataset pages over HTTP.
//
// Pages are rendered server-side from embedded html/template files. The
// filter and page state travel in the query string, so every view is a
// plain GET that can be bookmarked. The detail handoff is stored per
// browser session, identified by a cookie.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/custodia-labs/hioder/internal/logger"
)

// Config holds web server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// CarouselInterval is the issue carousel's auto-advance period.
	CarouselInterval time.Duration
}

// Server renders the dataset pages.
type Server struct {
	ports  *Ports
	cfg    Config
	pages  map[string]*template.Template
	router chi.Router
	log    *zap.SugaredLogger

	// now is replaced in tests to pin the issue feed's current month.
	now func() time.Time
}

// NewServer creates a web server for the given ports.
func NewServer(ports *Ports, cfg Config) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.CarouselInterval <= 0 {
		cfg.CarouselInterval = 5 * time.Second
	}

	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		ports: ports,
		cfg:   cfg,
		pages: pages,
		log:   logger.Named("web"),
		now:   time.Now,
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(sessions)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/", s.handleIssues)
	r.Get("/guide", s.handleBrowse("guide"))
	r.Get("/manual", s.handleBrowse("manual"))
	r.Get("/voc", s.handleVOC)
	r.Get("/detail", s.handleDetail)
	r.Post("/select", s.handleSelect)

	r.Route("/api", func(r chi.Router) {
		r.Get("/datasets", s.handleAPIDatasets)
		r.Get("/datasets/{name}", s.handleAPIBrowse)
		r.Get("/datasets/{name}/categories", s.handleAPICategories)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Infow("web listening", "addr", s.cfg.Addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
