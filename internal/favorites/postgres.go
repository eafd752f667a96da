package favorites

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
}

// PostgresStore implements Store on a favorites table
type PostgresStore struct {
	db DBTX
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

const createFavorites = `CREATE TABLE IF NOT EXISTS favorites (
  id         integer PRIMARY KEY,
  name       text,
  created_at timestamptz NOT NULL DEFAULT now()
)`

// Migrate creates the favorites table if it does not exist
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, createFavorites)
	return err
}

const listFavorites = `SELECT id, name FROM favorites ORDER BY created_at, id`

func (s *PostgresStore) List(ctx context.Context) ([]Favorite, error) {
	rows, err := s.db.Query(ctx, listFavorites)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favs := []Favorite{}
	for rows.Next() {
		var (
			id   int32
			name pgtype.Text
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		favs = append(favs, Favorite{ID: int(id), Name: name.String})
	}
	return favs, rows.Err()
}

const addFavorite = `INSERT INTO favorites (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`

func (s *PostgresStore) Add(ctx context.Context, fav Favorite) error {
	tag, err := s.db.Exec(ctx, addFavorite, int32(fav.ID), optionalText(fav.Name))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExists
	}
	return nil
}

const removeFavorite = `DELETE FROM favorites WHERE id = $1`

func (s *PostgresStore) Remove(ctx context.Context, id int) error {
	tag, err := s.db.Exec(ctx, removeFavorite, int32(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const setFavoriteName = `UPDATE favorites SET name = $2 WHERE id = $1`

func (s *PostgresStore) SetName(ctx context.Context, id int, name string) error {
	tag, err := s.db.Exec(ctx, setFavoriteName, int32(id), optionalText(name))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func optionalText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
