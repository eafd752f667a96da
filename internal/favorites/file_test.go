package favorites

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "favorites.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)
	return s, path
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	s, _ := newFileStore(t)

	favs, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, favs)
	assert.Empty(t, favs)
}

func TestFileStoreAddListRemove(t *testing.T) {
	s, path := newFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, Favorite{ID: 25, Name: "pikachu"}))
	require.NoError(t, s.Add(ctx, Favorite{ID: 1}))
	assert.ErrorIs(t, s.Add(ctx, Favorite{ID: 25, Name: "again"}), ErrExists)

	favs, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Favorite{{ID: 25, Name: "pikachu"}, {ID: 1}}, favs)

	require.NoError(t, s.SetName(ctx, 1, "bulbasaur"))
	assert.ErrorIs(t, s.SetName(ctx, 2, "ivysaur"), ErrNotFound)

	require.NoError(t, s.Remove(ctx, 25))
	assert.ErrorIs(t, s.Remove(ctx, 25), ErrNotFound)

	// state survives a new store on the same file
	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	favs, err = reopened.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Favorite{{ID: 1, Name: "bulbasaur"}}, favs)

	// no temporary files are left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStoreCorruptFile(t *testing.T) {
	s, path := newFileStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := s.List(context.Background())
	assert.Error(t, err)
}

func TestFileStoreConcurrentAdds(t *testing.T) {
	s, _ := newFileStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for id := 1; id <= 20; id++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Add(ctx, Favorite{ID: id}))
		}()
	}
	wg.Wait()

	favs, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, favs, 20)
}
