package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultPoolSize = 4

// PostgresStore implements Store using pgxpool. It exists for deployments
// running multiple proxy replicas that must share one vendor token instead of
// racing to mint their own. The table holds at most one row.
//
// TODO(test): PostgresStore methods require live Postgres, tested via integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgresStore with connection pooling and
// ensures the backing table exists.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS cj_token (
			id            INT PRIMARY KEY CHECK (id = 1),
			access_token  TEXT NOT NULL,
			expiry        TIMESTAMPTZ NOT NULL,
			refresh_token TEXT NOT NULL,
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("creating cj_token table: %w", err)
	}
	return nil
}

// Load reads the single token row. No row means absent, not an error.
func (s *PostgresStore) Load(ctx context.Context) (*Record, error) {
	var rec Record
	err := s.pool.QueryRow(ctx,
		"SELECT access_token, expiry, refresh_token FROM cj_token WHERE id = 1",
	).Scan(&rec.AccessToken, &rec.Expiry, &rec.RefreshToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		// Treat read failures the same as a corrupt file: absent. The guard
		// falls through to re-authentication rather than failing the call.
		return nil, nil
	}

	rec.Expiry = rec.Expiry.UTC()
	return &rec, nil
}

// Save upserts the single token row. Row-level atomicity in Postgres gives
// the no-torn-reads guarantee for free.
func (s *PostgresStore) Save(ctx context.Context, r *Record) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO cj_token (id, access_token, expiry, refresh_token, updated_at)
		VALUES (1, @access_token, @expiry, @refresh_token, now())
		ON CONFLICT (id) DO UPDATE SET
			access_token  = EXCLUDED.access_token,
			expiry        = EXCLUDED.expiry,
			refresh_token = EXCLUDED.refresh_token,
			updated_at    = now()
	`, pgx.NamedArgs{
		"access_token":  r.AccessToken,
		"expiry":        r.Expiry.UTC(),
		"refresh_token": r.RefreshToken,
	})
	if err != nil {
		return fmt.Errorf("saving token record: %w", err)
	}
	return nil
}
