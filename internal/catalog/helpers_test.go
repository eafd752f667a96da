package catalog

import (
	"context"
	"testing"

	"github.com/briangreenhill/pokedex/cache"
	"github.com/briangreenhill/pokedex/internal/pokeapitest"
	"github.com/briangreenhill/pokedex/pokeapi"
	"github.com/rs/zerolog"
)

// newTestService wires a Service to a seeded fake upstream
func newTestService(t *testing.T, mutate ...func(*Options)) (*Service, *pokeapitest.Server, *cache.Memory) {
	t.Helper()

	srv := pokeapitest.NewServer()
	t.Cleanup(srv.Close)

	mem := cache.NewMemory()
	opts := Options{
		Upstream: pokeapi.New(pokeapi.WithBaseURL(srv.BaseURL())),
		Cache:    mem,
		Logger:   zerolog.Nop(),
	}
	for _, m := range mutate {
		m(&opts)
	}
	return NewService(opts), srv, mem
}

// stubUpstream is an Upstream whose responses are set per test
type stubUpstream struct {
	pokemon func(ctx context.Context, id int) (*pokeapi.Pokemon, error)
	chain   func(ctx context.Context, rawURL string) (*pokeapi.EvolutionChain, error)
	ability func(ctx context.Context, rawURL string) (*pokeapi.Ability, error)
}

func (s *stubUpstream) Pokemon(ctx context.Context, id int) (*pokeapi.Pokemon, error) {
	return s.pokemon(ctx, id)
}

func (s *stubUpstream) PokemonPage(ctx context.Context, offset, limit int) (*pokeapi.Page, error) {
	return nil, &pokeapi.Error{Outcome: pokeapi.OutcomeUpstreamError, StatusCode: 501}
}

func (s *stubUpstream) Species(ctx context.Context, rawURL string) (*pokeapi.Species, error) {
	return nil, &pokeapi.Error{Outcome: pokeapi.OutcomeNotFound, StatusCode: 404}
}

func (s *stubUpstream) Ability(ctx context.Context, rawURL string) (*pokeapi.Ability, error) {
	return s.ability(ctx, rawURL)
}

func (s *stubUpstream) EvolutionChain(ctx context.Context, rawURL string) (*pokeapi.EvolutionChain, error) {
	return s.chain(ctx, rawURL)
}
