package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage keeps values in a single key/value table
type PostgresStorage struct {
	pool     *pgxpool.Pool
	ownsPool bool
}

// NewPostgresStorage wraps an existing pool; the caller keeps ownership
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

// EnsureSchema creates the session table if it does not exist
func (s *PostgresStorage) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS fundsight_session (
			key     TEXT PRIMARY KEY,
			value   TEXT NOT NULL,
			updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create session table: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM fundsight_session WHERE key = $1`
	var v string
	err := s.pool.QueryRow(ctx, query, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return v, nil
}

func (s *PostgresStorage) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO fundsight_session (key, value, updated)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated = NOW()
	`
	if _, err := s.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStorage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	query := `DELETE FROM fundsight_session WHERE key = ANY($1)`
	if _, err := s.pool.Exec(ctx, query, keys); err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}
	return nil
}

// Close releases the pool when Open created it
func (s *PostgresStorage) Close() error {
	if s.ownsPool {
		s.pool.Close()
	}
	return nil
}
