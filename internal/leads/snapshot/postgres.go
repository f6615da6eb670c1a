package snapshot

import (
	"context"
	"errors"

	"agencyhunter_backend/internal/leads/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore holds the snapshot document in a single row of the
// lead_snapshots table, keyed by namespace. Used as the alternative primary
// backend and as the backup target for the scheduler's copy job.
type PostgresStore struct {
	pool      *pgxpool.Pool
	namespace string
}

// NewPostgresStore creates a Postgres-backed snapshot store for the given namespace.
func NewPostgresStore(pool *pgxpool.Pool, namespace string) *PostgresStore {
	return &PostgresStore{pool: pool, namespace: namespace}
}

// Load implements Store.
func (s *PostgresStore) Load(ctx context.Context) ([]domain.SavedLead, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM lead_snapshots WHERE namespace = $1`,
		s.namespace,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return Decode(payload)
}

// Save implements Store.
func (s *PostgresStore) Save(ctx context.Context, leads []domain.SavedLead) error {
	payload, err := Encode(leads)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO lead_snapshots (namespace, version, payload, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (namespace)
		DO UPDATE SET version = EXCLUDED.version, payload = EXCLUDED.payload, updated_at = NOW()
	`, s.namespace, Version, payload)
	return err
}

var _ Store = (*PostgresStore)(nil)
