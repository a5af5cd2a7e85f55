// Package server exposes the extraction pipeline and inventory reads as a
// JSON API consumed by the mobile UI.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmaresco/cellarscan/internal/pipeline"
	"github.com/dmaresco/cellarscan/internal/repository"
)

// Server carries the handlers' dependencies.
type Server struct {
	pipeline *pipeline.Pipeline
	wines    repository.WineRepository
	auth     Authenticator
	logger   *slog.Logger
	timeout  time.Duration
}

// New builds the server.
func New(p *pipeline.Pipeline, wines repository.WineRepository, auth Authenticator, timeout time.Duration, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Server{
		pipeline: p,
		wines:    wines,
		auth:     auth,
		logger:   logger,
		timeout:  timeout,
	}
}

// Router assembles the chi router. The request timeout bounds the whole
// pipeline run, external calls included.
func (s *Server) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))
	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		}))
	}
	r.Use(authMiddleware(s.auth))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/extractions", s.handleExtract)
		r.Get("/wines", s.handleListWines)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
