// Package store persists the client's access token between runs in a
// small local sqlite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const tokenKey = "access_token"

type Store struct {
	db *sql.DB
}

// Open creates or opens the local database at path and ensures the
// metadata table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening token store: %w", err)
	}

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS metadata (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing token store: %w", err)
	}

	return &Store{db: db}, nil
}

// Token returns the stored access token, or "" when none is stored.
func (s *Store) Token(ctx context.Context) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = ?", tokenKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *Store) SaveToken(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value`, tokenKey, token)
	return err
}

func (s *Store) DestroyToken(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM metadata WHERE key = ?", tokenKey)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}
