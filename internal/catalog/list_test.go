package catalog

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/briangreenhill/pokedex/cache"
	"github.com/briangreenhill/pokedex/internal/pokeapitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetListPreservesUpstreamOrder(t *testing.T) {
	svc, srv, _ := newTestService(t)

	// later entries settle first
	for id := 1; id <= 20; id++ {
		srv.SetDelay(pokeapitest.PokemonPath(id), time.Duration((21-id)*(id%7+1))*time.Millisecond)
	}

	list, err := svc.GetList(context.Background(), 0, 20)
	require.NoError(t, err)
	require.Len(t, list, 20)

	for i, s := range list {
		assert.Equal(t, i+1, s.ID)
		assert.NotEmpty(t, s.Types, "entry %d should be enriched", s.ID)
	}
	assert.Equal(t, "bulbasaur", list[0].Name)
	assert.Equal(t, "blastoise", list[8].Name)
	assert.Equal(t, "mon-20", list[19].Name)
}

func TestGetListWithFanoutLimit(t *testing.T) {
	svc, _, _ := newTestService(t, func(o *Options) { o.FanoutLimit = 2 })

	list, err := svc.GetList(context.Background(), 10, 10)
	require.NoError(t, err)
	require.Len(t, list, 10)
	for i, s := range list {
		assert.Equal(t, 11+i, s.ID)
	}
}

func TestGetListCachesPage(t *testing.T) {
	svc, srv, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.GetList(ctx, 0, 5)
	require.NoError(t, err)

	srv.ResetCalls()
	second, err := svc.GetList(ctx, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 0, srv.TotalCalls())
}

func TestGetListRateLimitedSummaryIsCached(t *testing.T) {
	svc, srv, mem := newTestService(t)
	ctx := context.Background()
	srv.SetStatus(pokeapitest.PokemonPath(3), http.StatusTooManyRequests)

	list, err := svc.GetList(ctx, 0, 5)
	require.NoError(t, err)
	require.Len(t, list, 5)
	assert.Equal(t, EntitySummary{ID: 3, Name: "venusaur"}, list[2])
	assert.Equal(t, []string{"grass", "poison"}, list[1].Types)

	cached, ok := cache.Get[EntitySummary](mem, cache.EntitySummaryKey(3))
	require.True(t, ok, "rate-limited summary should be cached")
	assert.Empty(t, cached.Types)

	// even once the limiter clears, the degraded summary is reused
	srv.SetStatus(pokeapitest.PokemonPath(3), 0)
	mem.Delete(cache.ListKey(0, 5))

	list, err = svc.GetList(ctx, 0, 5)
	require.NoError(t, err)
	assert.Empty(t, list[2].Types)
	assert.Equal(t, 1, srv.Calls(pokeapitest.PokemonPath(3)))
}

func TestGetListFailedSummaryIsNotCached(t *testing.T) {
	svc, srv, mem := newTestService(t)
	ctx := context.Background()
	srv.SetStatus(pokeapitest.PokemonPath(4), http.StatusInternalServerError)

	list, err := svc.GetList(ctx, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, EntitySummary{ID: 4, Name: "charmander"}, list[3])

	_, ok := mem.Get(cache.EntitySummaryKey(4))
	assert.False(t, ok)

	srv.SetStatus(pokeapitest.PokemonPath(4), 0)
	mem.Delete(cache.ListKey(0, 5))

	list, err = svc.GetList(ctx, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"fire"}, list[3].Types)
	assert.Equal(t, 2, srv.Calls(pokeapitest.PokemonPath(4)))
}

func TestGetListMandatoryIndex(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"server error", http.StatusBadGateway, ErrFailure},
		{"missing index", http.StatusNotFound, ErrFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, srv, mem := newTestService(t)
			srv.SetStatus(pokeapitest.PagePath, tt.status)

			list, err := svc.GetList(context.Background(), 0, 20)
			assert.Nil(t, list)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 1, srv.TotalCalls())
			assert.Equal(t, 0, mem.Size())
		})
	}
}

func TestGetListInvalidArguments(t *testing.T) {
	svc, srv, _ := newTestService(t)

	for _, args := range [][2]int{{-1, 20}, {0, 0}, {0, -5}} {
		_, err := svc.GetList(context.Background(), args[0], args[1])
		assert.ErrorIs(t, err, ErrInvalidArgument, "offset=%d limit=%d", args[0], args[1])
	}
	assert.Equal(t, 0, srv.TotalCalls())
}

func TestGetListPastTheEnd(t *testing.T) {
	svc, _, _ := newTestService(t)

	list, err := svc.GetList(context.Background(), pokeapitest.SeedCount+10, 20)
	require.NoError(t, err)
	assert.Empty(t, list)
}
