package favorites

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore(t *testing.T) {
	// Skip if no database URL provided
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping PostgreSQL store test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err)
	defer pool.Close()

	s := NewPostgresStore(pool)
	require.NoError(t, s.Migrate(ctx))

	const a, b = 900001, 900002
	cleanup := func() {
		_, _ = pool.Exec(ctx, `DELETE FROM favorites WHERE id IN ($1, $2)`, a, b)
	}
	cleanup()
	defer cleanup()

	require.NoError(t, s.Add(ctx, Favorite{ID: a, Name: "testmon"}))
	require.NoError(t, s.Add(ctx, Favorite{ID: b}))
	assert.ErrorIs(t, s.Add(ctx, Favorite{ID: a}), ErrExists)

	require.NoError(t, s.SetName(ctx, b, "othermon"))

	favs, err := s.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, favs, Favorite{ID: a, Name: "testmon"})
	assert.Contains(t, favs, Favorite{ID: b, Name: "othermon"})

	require.NoError(t, s.Remove(ctx, a))
	assert.ErrorIs(t, s.Remove(ctx, a), ErrNotFound)
	assert.ErrorIs(t, s.SetName(ctx, a, "gone"), ErrNotFound)
}
