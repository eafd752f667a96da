package main

import (
	"context"
	"os"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/pokedex/internal/app"
	"github.com/briangreenhill/pokedex/internal/config"
	"github.com/briangreenhill/pokedex/internal/jobs"
	"github.com/briangreenhill/pokedex/internal/logging"
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
	if !cfg.HasRedis() {
		boot.Fatal().Msg("REDIS_ADDR is required for the worker")
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	if err != nil {
		boot.Fatal().Err(err).Msg("configure logging")
	}

	svc := app.NewCatalog(cfg, logger)
	store, closeStore, err := app.OpenFavorites(context.Background(), cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("open favorites")
	}
	defer closeStore()

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, asynq.Config{
		Concurrency: 4,
		Queues: map[string]int{
			jobs.QueueFavorites: 1,
		},
		RetryDelayFunc: jobs.RetryDelay,
	})
	mux := jobs.NewServeMux(svc, store, logger.With().Str("component", "worker").Logger())

	logger.Info().Str("redis", cfg.RedisAddr).Msg("worker running")
	if err := srv.Run(mux); err != nil {
		logger.Fatal().Err(err).Msg("worker stopped")
	}
}
