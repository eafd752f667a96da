package catalog

import (
	"context"
	"time"

	"github.com/briangreenhill/pokedex/cache"
	"github.com/briangreenhill/pokedex/pokeapi"
	"github.com/rs/zerolog"
)

// AbilityResolver resolves the descriptive text of an ability, read-through
// the cache. Only fully resolved abilities are cached.
type AbilityResolver struct {
	upstream Upstream
	cache    cache.ReadWriter
	ttl      time.Duration
	log      zerolog.Logger
}

func NewAbilityResolver(upstream Upstream, c cache.ReadWriter, ttl time.Duration, log zerolog.Logger) *AbilityResolver {
	return &AbilityResolver{upstream: upstream, cache: c, ttl: ttl, log: log}
}

// Resolve never fails; upstream failures produce a placeholder effect
func (r *AbilityResolver) Resolve(ctx context.Context, ref pokeapi.PokemonAbility) AbilityInfo {
	info, err := r.lookup(ctx, ref)
	if err != nil {
		return r.fallback(ref, err)
	}
	return info
}

// ResolveAll resolves refs concurrently, preserving their order
func (r *AbilityResolver) ResolveAll(ctx context.Context, refs []pokeapi.PokemonAbility, limit int) []AbilityInfo {
	return settleAll(ctx, limit, len(refs),
		func(ctx context.Context, i int) (AbilityInfo, error) { return r.lookup(ctx, refs[i]) },
		func(i int, err error) AbilityInfo { return r.fallback(refs[i], err) },
	)
}

func (r *AbilityResolver) lookup(ctx context.Context, ref pokeapi.PokemonAbility) (AbilityInfo, error) {
	key := cache.AbilityKey(ref.Ability.Name)
	if info, ok := cache.Get[AbilityInfo](r.cache, key); ok {
		// the cached text is shared by every entity; hidden is per entity
		info.IsHidden = ref.IsHidden
		return info, nil
	}

	a, err := r.upstream.Ability(ctx, ref.Ability.URL)
	if err != nil {
		return AbilityInfo{}, err
	}

	info := AbilityInfo{
		Name:     ref.Ability.Name,
		IsHidden: ref.IsHidden,
		Effect:   englishEffect(a),
	}
	r.cache.Set(key, info, r.ttl)
	return info, nil
}

func (r *AbilityResolver) fallback(ref pokeapi.PokemonAbility, err error) AbilityInfo {
	degraded(r.log, "ability", cache.AbilityKey(ref.Ability.Name), err)

	effect := EffectUnavailable
	if pokeapi.OutcomeOf(err) == pokeapi.OutcomeRateLimited {
		effect = EffectRateLimited
	}
	return AbilityInfo{Name: ref.Ability.Name, IsHidden: ref.IsHidden, Effect: effect}
}

// englishEffect returns the first English effect entry
func englishEffect(a *pokeapi.Ability) string {
	for _, e := range a.EffectEntries {
		if e.Language.Name == "en" {
			return e.Effect
		}
	}
	return EffectMissing
}
