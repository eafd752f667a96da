package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/briangreenhill/pokedex/cache"
	"github.com/briangreenhill/pokedex/pokeapi"
	"github.com/rs/zerolog"
)

// ListAggregator assembles one page of summaries. The paged index is
// mandatory; per-entry enrichment is not.
type ListAggregator struct {
	upstream Upstream
	cache    cache.ReadWriter
	ttl      time.Duration
	limit    int
	log      zerolog.Logger
}

func NewListAggregator(upstream Upstream, c cache.ReadWriter, ttl time.Duration, limit int, log zerolog.Logger) *ListAggregator {
	return &ListAggregator{upstream: upstream, cache: c, ttl: ttl, limit: limit, log: log}
}

func (l *ListAggregator) Get(ctx context.Context, offset, limit int) ([]EntitySummary, error) {
	key := cache.ListKey(offset, limit)
	if list, ok := cache.Get[[]EntitySummary](l.cache, key); ok {
		return list, nil
	}

	page, err := l.upstream.PokemonPage(ctx, offset, limit)
	if err != nil {
		if pokeapi.OutcomeOf(err) == pokeapi.OutcomeNotFound {
			// the index itself is never legitimately missing
			return nil, fmt.Errorf("%w: %w", ErrFailure, err)
		}
		return nil, mandatory(err)
	}

	entries := page.Results
	list := settleAll(ctx, l.limit, len(entries),
		func(ctx context.Context, i int) (EntitySummary, error) {
			return l.summary(ctx, offset+i+1, entries[i].Name)
		},
		func(i int, err error) EntitySummary {
			id := offset + i + 1
			degraded(l.log, "summary", cache.EntitySummaryKey(id), err)
			return EntitySummary{ID: id, Name: entries[i].Name}
		},
	)

	l.cache.Set(key, list, l.ttl)
	return list, nil
}

// summary enriches one index entry. A rate-limited enrichment is cached in its
// degraded form so later pages do not retry it until it expires; any other
// failure is returned and left uncached.
func (l *ListAggregator) summary(ctx context.Context, id int, name string) (EntitySummary, error) {
	key := cache.EntitySummaryKey(id)
	if s, ok := cache.Get[EntitySummary](l.cache, key); ok {
		return s, nil
	}

	p, err := l.upstream.Pokemon(ctx, id)
	if err != nil {
		if pokeapi.OutcomeOf(err) != pokeapi.OutcomeRateLimited {
			return EntitySummary{}, err
		}
		degraded(l.log, "summary", key, err)
		s := EntitySummary{ID: id, Name: name}
		l.cache.Set(key, s, l.ttl)
		return s, nil
	}

	s := EntitySummary{ID: id, Name: name, Types: typeNames(p.Types)}
	if p.Sprites.FrontDefault != nil {
		s.Sprite = *p.Sprites.FrontDefault
	}
	l.cache.Set(key, s, l.ttl)
	return s, nil
}
