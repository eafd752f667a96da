package catalog

import (
	"context"
	"time"

	"github.com/briangreenhill/pokedex/cache"
	"github.com/briangreenhill/pokedex/pokeapi"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DetailAggregator assembles an EntityDetail from the entity, its species,
// its evolution chain and its abilities. Only the entity itself is mandatory.
type DetailAggregator struct {
	upstream  Upstream
	cache     cache.ReadWriter
	ttl       time.Duration
	limit     int
	abilities *AbilityResolver
	evolution *EvolutionResolver
	log       zerolog.Logger
}

func NewDetailAggregator(upstream Upstream, c cache.ReadWriter, ttl time.Duration, limit int, abilities *AbilityResolver, evolution *EvolutionResolver, log zerolog.Logger) *DetailAggregator {
	return &DetailAggregator{
		upstream:  upstream,
		cache:     c,
		ttl:       ttl,
		limit:     limit,
		abilities: abilities,
		evolution: evolution,
		log:       log,
	}
}

func (d *DetailAggregator) Get(ctx context.Context, id int) (*EntityDetail, error) {
	key := cache.EntityKey(id)
	if detail, ok := cache.Get[EntityDetail](d.cache, key); ok {
		return &detail, nil
	}

	p, err := d.upstream.Pokemon(ctx, id)
	if err != nil {
		return nil, mandatory(err)
	}

	refs := p.Abilities
	if len(refs) > MaxAbilities {
		refs = refs[:MaxAbilities]
	}

	var (
		abilities []AbilityInfo
		chain     []EvolutionNode
		g         errgroup.Group
	)
	g.Go(func() error {
		abilities = d.abilities.ResolveAll(ctx, refs, d.limit)
		return nil
	})
	g.Go(func() error {
		chain = d.evolutionFor(ctx, p.Species)
		return nil
	})
	_ = g.Wait()

	detail := assemble(p, abilities, chain)
	d.cache.Set(key, detail, d.ttl)
	return &detail, nil
}

// evolutionFor resolves the species and then its chain. Any failure on the
// way is an empty chain.
func (d *DetailAggregator) evolutionFor(ctx context.Context, species pokeapi.NamedResource) []EvolutionNode {
	sp, err := d.upstream.Species(ctx, species.URL)
	if err != nil {
		degraded(d.log, "species", species.URL, err)
		return []EvolutionNode{}
	}
	if sp.EvolutionChain == nil || sp.EvolutionChain.URL == "" {
		return []EvolutionNode{}
	}
	return d.evolution.Resolve(ctx, sp.EvolutionChain.URL)
}

func assemble(p *pokeapi.Pokemon, abilities []AbilityInfo, chain []EvolutionNode) EntityDetail {
	detail := EntityDetail{
		ID:             p.ID,
		Name:           p.Name,
		Height:         p.Height,
		Weight:         p.Weight,
		BaseExperience: p.BaseExperience,
		Types:          typeNames(p.Types),
		Abilities:      abilities,
		Stats:          make([]Stat, 0, len(p.Stats)),
		Moves:          make([]string, 0, min(len(p.Moves), MaxMoves)),
		EvolutionChain: chain,
	}
	for _, s := range p.Stats {
		detail.Stats = append(detail.Stats, Stat{Name: s.Stat.Name, Value: s.BaseStat})
	}
	for _, m := range p.Moves {
		if len(detail.Moves) == MaxMoves {
			break
		}
		detail.Moves = append(detail.Moves, m.Move.Name)
	}
	if detail.Abilities == nil {
		detail.Abilities = []AbilityInfo{}
	}
	if detail.EvolutionChain == nil {
		detail.EvolutionChain = []EvolutionNode{}
	}
	return detail
}

func typeNames(types []pokeapi.PokemonType) []string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.Type.Name)
	}
	return names
}
