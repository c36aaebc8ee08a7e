// Package api exposes the ranking and plan engine over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"ai-meal-ranker/internal/config"
	"ai-meal-ranker/internal/metrics"
	"ai-meal-ranker/internal/reco"
)

// maxBodyBytes bounds request bodies; candidate lists with embeddings are large.
const maxBodyBytes = 16 << 20

// TasteEmbedder turns a profile and free text into a taste embedding.
type TasteEmbedder interface {
	Embed(ctx context.Context, user reco.UserProfile, text string) (reco.Embedding, error)
}

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	cfg      *config.Config
	logger   zerolog.Logger
	recorder *metrics.Recorder
	gatherer prometheus.Gatherer
	taste    TasteEmbedder
}

// Deps are the collaborators of a Server. Taste may be nil.
type Deps struct {
	Logger   zerolog.Logger
	Registry *prometheus.Registry
	Taste    TasteEmbedder
}

// NewServer creates a new Server and registers its metrics on deps.Registry.
func NewServer(cfg *config.Config, deps Deps) *Server {
	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	return &Server{
		cfg:      cfg,
		logger:   deps.Logger,
		recorder: metrics.NewRecorder(reg),
		gatherer: reg,
		taste:    deps.Taste,
	}
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		if s.cfg.RateLimitPerMinute > 0 {
			r.Use(httprate.LimitByIP(s.cfg.RateLimitPerMinute, time.Minute))
		}
		if s.cfg.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(s.cfg.RequestTimeout))
		}
		if s.cfg.JWTSecret != "" {
			r.Use(JWTAuth([]byte(s.cfg.JWTSecret)))
		}
		r.Post("/rank", s.handleRank)
		r.Post("/plan/suggest", s.handlePlanSuggest)
	})

	return r
}
