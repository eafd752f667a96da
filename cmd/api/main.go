// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/pokedex/internal/app"
	"github.com/briangreenhill/pokedex/internal/config"
	"github.com/briangreenhill/pokedex/internal/http/routes"
	"github.com/briangreenhill/pokedex/internal/jobs"
	"github.com/briangreenhill/pokedex/internal/logging"
	"github.com/briangreenhill/pokedex/internal/metrics"
)

func main() {
	boot := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		boot.Fatal().Err(err).Msg("invalid config")
	}

	// Logger
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	if err != nil {
		boot.Fatal().Err(err).Msg("configure logging")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Catalog
	svc := app.NewCatalog(cfg, logger)
	if err := metrics.RegisterCacheSize(svc.CacheSize); err != nil {
		logger.Fatal().Err(err).Msg("register cache metrics")
	}

	// Favorites
	store, closeStore, err := app.OpenFavorites(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("open favorites")
	}
	defer closeStore()

	opts := routes.ServerOptions{
		Catalog:   svc,
		Favorites: store,
		Cfg:       *cfg,
		Logger:    logger,
	}

	// Background jobs
	if cfg.HasRedis() {
		enq := jobs.NewEnqueuer(cfg.RedisAddr)
		defer func() { _ = enq.Close() }()
		opts.Jobs = enq
	}

	s := routes.New(opts)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
	}()

	logger.Info().
		Str("port", cfg.Port).
		Str("upstream", cfg.Upstream.BaseURL).
		Bool("database", cfg.HasDatabase()).
		Bool("jobs", cfg.HasRedis()).
		Msg("starting api")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("serve")
	}
	logger.Info().Msg("api stopped")
}
