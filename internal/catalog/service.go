// Package catalog aggregates PokeAPI resources into the list and detail
// shapes served to clients. Every resolver reads through the cache, and
// optional sub-fetches degrade to placeholders instead of failing.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/briangreenhill/pokedex/cache"
	"github.com/briangreenhill/pokedex/pokeapi"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL applies to every cached aggregate when Options.TTL is unset
const DefaultTTL = time.Hour

// Upstream is the subset of *pokeapi.Client the aggregators depend on
type Upstream interface {
	Pokemon(ctx context.Context, id int) (*pokeapi.Pokemon, error)
	PokemonPage(ctx context.Context, offset, limit int) (*pokeapi.Page, error)
	Species(ctx context.Context, rawURL string) (*pokeapi.Species, error)
	Ability(ctx context.Context, rawURL string) (*pokeapi.Ability, error)
	EvolutionChain(ctx context.Context, rawURL string) (*pokeapi.EvolutionChain, error)
}

var _ Upstream = (*pokeapi.Client)(nil)

type Options struct {
	Upstream Upstream
	Cache    cache.Cache
	TTL      time.Duration

	// FanoutLimit bounds concurrent sub-fetches per aggregation; zero is unbounded
	FanoutLimit int

	// Coalesce shares one in-flight aggregation between concurrent identical requests
	Coalesce bool

	Logger zerolog.Logger
}

type Service struct {
	upstream Upstream
	cache    cache.Cache
	list     *ListAggregator
	detail   *DetailAggregator
	inflight *singleflight.Group // nil unless coalescing
	log      zerolog.Logger
}

func NewService(opts Options) *Service {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := opts.Cache
	if c == nil {
		c = cache.NewMemory()
	}
	log := opts.Logger.With().Str("component", "catalog").Logger()

	abilities := NewAbilityResolver(opts.Upstream, c, ttl, log)
	evolution := NewEvolutionResolver(opts.Upstream, c, ttl, log)

	s := &Service{
		upstream: opts.Upstream,
		cache:    c,
		list:     NewListAggregator(opts.Upstream, c, ttl, opts.FanoutLimit, log),
		detail:   NewDetailAggregator(opts.Upstream, c, ttl, opts.FanoutLimit, abilities, evolution, log),
		log:      log,
	}
	if opts.Coalesce {
		s.inflight = &singleflight.Group{}
	}
	return s
}

// GetList returns one page of summaries in upstream order.
// Errors: ErrInvalidArgument, ErrRateLimited, ErrFailure.
func (s *Service) GetList(ctx context.Context, offset, limit int) ([]EntitySummary, error) {
	if offset < 0 || limit <= 0 {
		return nil, fmt.Errorf("%w: offset must be >= 0 and limit > 0, got offset=%d limit=%d", ErrInvalidArgument, offset, limit)
	}
	ctx = context.WithoutCancel(ctx)
	return coalesce(s.inflight, cache.ListKey(offset, limit), func() ([]EntitySummary, error) {
		return s.list.Get(ctx, offset, limit)
	})
}

// GetDetail returns the composite entity.
// Errors: ErrInvalidArgument, ErrNotFound, ErrRateLimited, ErrFailure.
func (s *Service) GetDetail(ctx context.Context, id int) (*EntityDetail, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive, got %d", ErrInvalidArgument, id)
	}
	ctx = context.WithoutCancel(ctx)
	return coalesce(s.inflight, cache.EntityKey(id), func() (*EntityDetail, error) {
		return s.detail.Get(ctx, id)
	})
}

// LookupName returns the name of an entity, from the cache when any view of
// it is cached and from upstream otherwise.
func (s *Service) LookupName(ctx context.Context, id int) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("%w: id must be positive, got %d", ErrInvalidArgument, id)
	}
	if d, ok := cache.Get[EntityDetail](s.cache, cache.EntityKey(id)); ok {
		return d.Name, nil
	}
	if sum, ok := cache.Get[EntitySummary](s.cache, cache.EntitySummaryKey(id)); ok {
		return sum.Name, nil
	}
	p, err := s.upstream.Pokemon(ctx, id)
	if err != nil {
		return "", mandatory(err)
	}
	return p.Name, nil
}

func (s *Service) CacheSize() int {
	return s.cache.Size()
}

func (s *Service) ClearCache() {
	s.cache.Clear()
	s.log.Info().Msg("cache cleared")
}

// coalesce runs fn through g keyed like the cache, or directly when g is nil
func coalesce[T any](g *singleflight.Group, key string, fn func() (T, error)) (T, error) {
	if g == nil {
		return fn()
	}
	v, err, _ := g.Do(key, func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
