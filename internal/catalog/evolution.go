package catalog

import (
	"context"
	"regexp"
	"strconv"
	"time"

	"github.com/briangreenhill/pokedex/cache"
	"github.com/briangreenhill/pokedex/pokeapi"
	"github.com/rs/zerolog"
)

// EvolutionResolver flattens an evolution chain into the path taken by the
// first listed branch at every step.
type EvolutionResolver struct {
	upstream Upstream
	cache    cache.ReadWriter
	ttl      time.Duration
	log      zerolog.Logger
}

func NewEvolutionResolver(upstream Upstream, c cache.ReadWriter, ttl time.Duration, log zerolog.Logger) *EvolutionResolver {
	return &EvolutionResolver{upstream: upstream, cache: c, ttl: ttl, log: log}
}

// Resolve never fails. An unavailable chain is an empty sequence, which
// callers must not read as "does not evolve".
func (r *EvolutionResolver) Resolve(ctx context.Context, chainURL string) []EvolutionNode {
	nodes, err := r.lookup(ctx, chainURL)
	if err != nil {
		degraded(r.log, "evolution", chainURL, err)
		return []EvolutionNode{}
	}
	return nodes
}

func (r *EvolutionResolver) lookup(ctx context.Context, chainURL string) ([]EvolutionNode, error) {
	chainID, hasID := idFromURL(chainURL)
	key := cache.EvolutionKey(chainID)

	// Without an id there is no key to share, so the cache is bypassed.
	if hasID {
		if nodes, ok := cache.Get[[]EvolutionNode](r.cache, key); ok {
			return nodes, nil
		}
	}

	chain, err := r.upstream.EvolutionChain(ctx, chainURL)
	if err != nil {
		return nil, err
	}

	nodes := walkChain(chain.Chain)
	if hasID {
		r.cache.Set(key, nodes, r.ttl)
	}
	return nodes, nil
}

// walkChain pushes the root, then follows evolves_to[0] until the end
func walkChain(link pokeapi.ChainLink) []EvolutionNode {
	nodes := []EvolutionNode{speciesNode(link, nil)}
	for len(link.EvolvesTo) > 0 {
		link = link.EvolvesTo[0]
		var minLevel *int
		if len(link.EvolutionDetails) > 0 {
			minLevel = link.EvolutionDetails[0].MinLevel
		}
		nodes = append(nodes, speciesNode(link, minLevel))
	}
	return nodes
}

func speciesNode(link pokeapi.ChainLink, minLevel *int) EvolutionNode {
	id, _ := idFromURL(link.Species.URL)
	return EvolutionNode{ID: id, Name: link.Species.Name, MinLevel: minLevel}
}

var trailingID = regexp.MustCompile(`/(\d+)/$`)

// idFromURL extracts the trailing numeric path segment of a resource URL
func idFromURL(raw string) (int, bool) {
	m := trailingID.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return id, true
}
