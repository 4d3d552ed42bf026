package http

import (
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"

	"authsvc/internal/auth"
	"authsvc/internal/config"
	"authsvc/internal/metrics"
	"authsvc/internal/token"
)

// NewRouter wires application routes and middleware using chi.
func NewRouter(cfg config.Config, oauthHandler *OAuthHandler, issuer *token.Issuer, repo auth.Repository, recorder metrics.Recorder, registry *prometheus.Registry, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(newRecovererMiddleware(logger))
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(newSlogMiddleware(logger, recorder))

	r.Get("/health", healthHandler(cfg.Environment))
	if registry != nil {
		r.Handle("/metrics", metrics.Handler(registry))
	}

	r.Route("/auth", func(r chi.Router) {
		r.Get("/google", oauthHandler.Initiate)
		r.Get("/google/callback", oauthHandler.Callback)
	})

	postsHandler := NewPostsHandler(logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(newGuardMiddleware(issuer, repo, recorder, logger))
		r.Get("/posts", postsHandler.List)
	})

	r.NotFound(notFoundHandler)

	return r
}
