// Package app wires configuration into the concrete components shared by the
// api, worker and dex binaries.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gregjones/httpcache"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/pokedex/cache"
	"github.com/briangreenhill/pokedex/internal/catalog"
	"github.com/briangreenhill/pokedex/internal/config"
	"github.com/briangreenhill/pokedex/internal/favorites"
	"github.com/briangreenhill/pokedex/pokeapi"
)

// NewUpstream creates the PokeAPI client, optionally behind an RFC 7234
// caching transport.
func NewUpstream(cfg config.UpstreamConfig) *pokeapi.Client {
	opts := []pokeapi.Option{
		pokeapi.WithBaseURL(cfg.BaseURL),
		pokeapi.WithTimeout(cfg.Timeout),
		pokeapi.WithUserAgent(cfg.UserAgent),
	}
	if cfg.HTTPCache {
		transport := httpcache.NewMemoryCacheTransport()
		opts = append(opts, pokeapi.WithHTTPClient(&http.Client{Transport: transport}))
	}
	return pokeapi.New(opts...)
}

// NewCatalog builds the catalog service over an instrumented in-memory cache
func NewCatalog(cfg *config.Config, log zerolog.Logger) *catalog.Service {
	return catalog.NewService(catalog.Options{
		Upstream:    NewUpstream(cfg.Upstream),
		Cache:       cache.NewInstrumented(cache.NewMemory()),
		TTL:         cfg.Cache.TTL,
		FanoutLimit: cfg.Cache.FanoutLimit,
		Coalesce:    cfg.Cache.Coalesce,
		Logger:      log,
	})
}

// OpenFavorites returns the PostgreSQL store when a database is configured
// and the JSON file store otherwise. The returned func releases the store.
func OpenFavorites(ctx context.Context, cfg *config.Config) (favorites.Store, func(), error) {
	if !cfg.HasDatabase() {
		fs, err := favorites.NewFileStore(cfg.FavoritesFile)
		if err != nil {
			return nil, nil, fmt.Errorf("open favorites file: %w", err)
		}
		return fs, func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	store := favorites.NewPostgresStore(pool)
	if err := store.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("migrate favorites: %w", err)
	}
	return store, pool.Close, nil
}
