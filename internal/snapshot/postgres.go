package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medmatch/intake/internal/record"
)

// PostgresStore keeps snapshots in a single-row-per-key table. The record
// is stored as JSONB so the whole aggregate round-trips without a relational
// mapping of its nested lists.
type PostgresStore struct {
	pool *pgxpool.Pool
	key  string
}

// NewPostgresStore bootstraps the snapshot table and returns a store bound
// to one snapshot key.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool, key string) (*PostgresStore, error) {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS intake_snapshots (
			key        TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot table: %w", err)
	}
	return &PostgresStore{pool: pool, key: key}, nil
}

// ForKey returns a store over the same pool and table for another key.
func (s *PostgresStore) ForKey(key string) *PostgresStore {
	return &PostgresStore{pool: s.pool, key: key}
}

func (s *PostgresStore) Load(ctx context.Context) (*record.Record, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM intake_snapshots WHERE key = $1`, s.key).Scan(&raw)
	if err == pgx.ErrNoRows {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return decode(raw)
}

func (s *PostgresStore) Save(ctx context.Context, r *record.Record) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO intake_snapshots (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = $2, updated_at = now()`,
		s.key, raw)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM intake_snapshots WHERE key = $1`, s.key); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}
	return nil
}
