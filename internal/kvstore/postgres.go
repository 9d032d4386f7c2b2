package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// PostgresStore is a PostgreSQL-backed Store over the kv_entries table.
type PostgresStore struct {
	pool      *pgxpool.Pool
	namespace string
}

// NewPostgresStore creates a store scoped to namespace. The schema is created
// by database.New.
func NewPostgresStore(pool *pgxpool.Pool, namespace string) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool, namespace: namespace}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var value []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM kv_entries WHERE namespace = $1 AND key = $2`,
		s.namespace, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO kv_entries (namespace, key, value, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (namespace, key) DO UPDATE
		 SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		s.namespace, key, value,
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if _, err := s.pool.Exec(ctx,
		`DELETE FROM kv_entries WHERE namespace = $1 AND key = $2`,
		s.namespace, key,
	); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if _, err := s.pool.Exec(ctx,
		`DELETE FROM kv_entries WHERE namespace = $1`,
		s.namespace,
	); err != nil {
		return fmt.Errorf("clear namespace %s: %w", s.namespace, err)
	}
	return nil
}

// Close is a no-op; the pool is owned by database.DB.
func (s *PostgresStore) Close() error {
	return nil
}
