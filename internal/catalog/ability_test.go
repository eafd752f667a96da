package catalog

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/briangreenhill/pokedex/cache"
	"github.com/briangreenhill/pokedex/pokeapi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func abilityRef(name string, hidden bool) pokeapi.PokemonAbility {
	return pokeapi.PokemonAbility{
		Ability:  pokeapi.NamedResource{Name: name, URL: "https://pokeapi.co/api/v2/ability/" + name + "/"},
		IsHidden: hidden,
	}
}

func TestAbilityCacheHitAppliesCallerHidden(t *testing.T) {
	var calls atomic.Int32
	up := &stubUpstream{
		ability: func(ctx context.Context, rawURL string) (*pokeapi.Ability, error) {
			calls.Add(1)
			return &pokeapi.Ability{
				Name: "chlorophyll",
				EffectEntries: []pokeapi.EffectEntry{
					{Effect: "Verdoppelt die Initiative.", Language: pokeapi.NamedResource{Name: "de"}},
					{Effect: "Doubles Speed during strong sunlight.", Language: pokeapi.NamedResource{Name: "en"}},
					{Effect: "Second English entry.", Language: pokeapi.NamedResource{Name: "en"}},
				},
			}, nil
		},
	}
	r := NewAbilityResolver(up, cache.NewMemory(), DefaultTTL, zerolog.Nop())

	hidden := r.Resolve(context.Background(), abilityRef("chlorophyll", true))
	assert.True(t, hidden.IsHidden)
	assert.Equal(t, "Doubles Speed during strong sunlight.", hidden.Effect)

	visible := r.Resolve(context.Background(), abilityRef("chlorophyll", false))
	assert.False(t, visible.IsHidden)
	assert.Equal(t, hidden.Effect, visible.Effect)

	assert.Equal(t, int32(1), calls.Load())
}

func TestAbilityFailuresUsePlaceholders(t *testing.T) {
	tests := []struct {
		outcome pokeapi.Outcome
		want    string
	}{
		{pokeapi.OutcomeRateLimited, EffectRateLimited},
		{pokeapi.OutcomeNotFound, EffectUnavailable},
		{pokeapi.OutcomeUpstreamError, EffectUnavailable},
		{pokeapi.OutcomeNetworkFailure, EffectUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			up := &stubUpstream{
				ability: func(ctx context.Context, rawURL string) (*pokeapi.Ability, error) {
					return nil, &pokeapi.Error{Outcome: tt.outcome, URL: rawURL}
				},
			}
			mem := cache.NewMemory()
			r := NewAbilityResolver(up, mem, DefaultTTL, zerolog.Nop())

			info := r.Resolve(context.Background(), abilityRef("static", true))
			assert.Equal(t, AbilityInfo{Name: "static", IsHidden: true, Effect: tt.want}, info)
			assert.Equal(t, 0, mem.Size())
		})
	}
}

func TestResolveAllKeepsOrder(t *testing.T) {
	up := &stubUpstream{
		ability: func(ctx context.Context, rawURL string) (*pokeapi.Ability, error) {
			if rawURL == "https://pokeapi.co/api/v2/ability/b/" {
				return nil, &pokeapi.Error{Outcome: pokeapi.OutcomeRateLimited, URL: rawURL}
			}
			return &pokeapi.Ability{EffectEntries: []pokeapi.EffectEntry{
				{Effect: "fx " + rawURL, Language: pokeapi.NamedResource{Name: "en"}},
			}}, nil
		},
	}
	r := NewAbilityResolver(up, cache.NewMemory(), DefaultTTL, zerolog.Nop())

	infos := r.ResolveAll(context.Background(), []pokeapi.PokemonAbility{
		abilityRef("a", false), abilityRef("b", false), abilityRef("c", true),
	}, 1)

	assert.Len(t, infos, 3)
	assert.Equal(t, "a", infos[0].Name)
	assert.Equal(t, EffectRateLimited, infos[1].Effect)
	assert.Equal(t, "c", infos[2].Name)
	assert.True(t, infos[2].IsHidden)
}
