package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// FileStore implements Store on a single JSON file
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store at path, creating its directory if needed.
// A missing file is an empty list.
func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, err
		}
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) List(ctx context.Context) ([]Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) Add(ctx context.Context, fav Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	favs, err := s.load()
	if err != nil {
		return err
	}
	if slices.ContainsFunc(favs, func(f Favorite) bool { return f.ID == fav.ID }) {
		return ErrExists
	}
	return s.save(append(favs, fav))
}

func (s *FileStore) Remove(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	favs, err := s.load()
	if err != nil {
		return err
	}
	i := slices.IndexFunc(favs, func(f Favorite) bool { return f.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	return s.save(slices.Delete(favs, i, i+1))
}

func (s *FileStore) SetName(ctx context.Context, id int, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	favs, err := s.load()
	if err != nil {
		return err
	}
	i := slices.IndexFunc(favs, func(f Favorite) bool { return f.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	favs[i].Name = name
	return s.save(favs)
}

func (s *FileStore) load() ([]Favorite, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Favorite{}, nil
	}
	if err != nil {
		return nil, err
	}

	favs := []Favorite{}
	if err := json.Unmarshal(data, &favs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return favs, nil
}

func (s *FileStore) save(favs []Favorite) error {
	data, err := json.MarshalIndent(favs, "", "  ")
	if err != nil {
		return err
	}

	// Write to temporary file first, then rename (atomic operation)
	tmpPath := s.path + fmt.Sprintf(".tmp.%d", rand.Int())
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpPath, s.path)
}
