// Package favorites persists the user's flat list of favorite entities.
// It is consulted by the HTTP layer and the worker, never by the catalog.
package favorites

import (
	"context"
	"errors"
)

var (
	ErrExists   = errors.New("favorite already exists")
	ErrNotFound = errors.New("favorite not found")
)

// Favorite is one entry of the list. Name is optional and may be filled in later.
type Favorite struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// Store is an append/remove list keyed by entity id
type Store interface {
	// List returns favorites in the order they were added
	List(ctx context.Context) ([]Favorite, error)
	// Add appends fav, or returns ErrExists when the id is already present
	Add(ctx context.Context, fav Favorite) error
	// Remove deletes the entry with id, or returns ErrNotFound
	Remove(ctx context.Context, id int) error
	// SetName fills in the name of an existing entry, or returns ErrNotFound
	SetName(ctx context.Context, id int, name string) error
}
