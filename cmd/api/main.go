package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"authsvc/internal/auth"
	"authsvc/internal/config"
	transporthttp "authsvc/internal/http"
	"authsvc/internal/metrics"
	"authsvc/internal/platform/database"
	"authsvc/internal/platform/logging"
	"authsvc/internal/platform/migrate"
	"authsvc/internal/token"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New(cfg.LogLevel)

	repo, cleanup, err := buildRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize repository", "error", err)
		os.Exit(1)
	}
	if cleanup != nil {
		defer cleanup()
	}

	issuer, err := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.Error("failed to initialize token issuer", "error", err)
		os.Exit(1)
	}

	google, err := auth.NewGoogleAuthenticator(ctx, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleCallbackURL)
	if err != nil {
		logger.Error("failed to initialize google authenticator", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	recorder := metrics.NewCollector(registry)

	authSvc := auth.NewService(repo)
	oauthHandler := transporthttp.NewOAuthHandler(google, authSvc, issuer, recorder, logger, !cfg.IsDevelopment())
	router := transporthttp.NewRouter(cfg, oauthHandler, issuer, repo, recorder, registry, logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}

	go func() {
		logger.Info("auth service listening", "addr", srv.Addr, "store", cfg.DataStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func buildRepository(ctx context.Context, cfg config.Config, logger *slog.Logger) (auth.Repository, func(), error) {
	if cfg.UseInMemoryStore() {
		logger.Info("using in-memory repository")
		return auth.NewInMemoryRepository(), nil, nil
	}

	db, err := database.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = db.Close()
	}

	if err := migrate.Apply(ctx, db, logger); err != nil {
		cleanup()
		return nil, nil, err
	}

	logger.Info("connected to postgres")
	return auth.NewPostgresRepository(db), cleanup, nil
}
