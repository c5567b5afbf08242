package store

import (
	"context"
	"errors"
	"fmt"

	"collections/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const createStateTable = `
CREATE TABLE IF NOT EXISTS collections_state (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore keeps state documents in a single jsonb table.
type PostgresStore struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewPostgresStore connects to databaseURL and ensures the state table exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	const op = "NewPostgresStore"

	if databaseURL == "" {
		return nil, fmt.Errorf("%s: DATABASE_URL is required", op)
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to parse DATABASE_URL: %w", op, err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to create connection pool: %w", op, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: unable to ping database: %w", op, err)
	}

	if _, err := pool.Exec(ctx, createStateTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: ensure schema: %w", op, err)
	}

	return &PostgresStore{pool: pool, log: logger.WithComponent("postgres-store")}, nil
}

// Get implements Store.
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "PostgresStore.Get"

	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT value FROM collections_state WHERE key = $1`, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: select %s: %w", op, key, err)
	}
	return raw, nil
}

// Put implements Store.
func (s *PostgresStore) Put(ctx context.Context, key string, value []byte) error {
	const op = "PostgresStore.Put"

	_, err := s.pool.Exec(ctx, `
		INSERT INTO collections_state (key, value, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, string(value))
	if err != nil {
		return fmt.Errorf("%s: upsert %s: %w", op, key, err)
	}

	s.log.Debug().Str("key", key).Int("bytes", len(value)).Msg("State saved")
	return nil
}

// Delete implements Store.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	const op = "PostgresStore.Delete"

	if _, err := s.pool.Exec(ctx, `DELETE FROM collections_state WHERE key = $1`, key); err != nil {
		return fmt.Errorf("%s: delete %s: %w", op, key, err)
	}
	return nil
}

// Close implements Store.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
