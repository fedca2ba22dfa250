package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

// Store wraps DB access.
type Store struct {
	Pool *pgxpool.Pool
}

func New(dsn string) (*Store, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Pool.Ping(ctx)
}

// Migrate creates the schema when missing. Wallet addresses are stored
// lowercased; callers normalize before they get here.
func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS user_xp (
			wallet_address TEXT PRIMARY KEY,
			xp BIGINT NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS dog_collection (
			wallet_address TEXT NOT NULL,
			dog_id TEXT NOT NULL,
			unlocked_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (wallet_address, dog_id)
		)`,
		`CREATE TABLE IF NOT EXISTS user_challenges (
			wallet_address TEXT PRIMARY KEY,
			progress JSONB NOT NULL DEFAULT '{}',
			daily_stats JSONB NOT NULL DEFAULT '{}',
			total_pets BIGINT NOT NULL DEFAULT 0,
			last_reset_date TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS xp_events (
			id TEXT PRIMARY KEY,
			wallet_address TEXT NOT NULL,
			xp BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS xp_events_wallet_idx ON xp_events (wallet_address, created_at)`,
		`CREATE INDEX IF NOT EXISTS user_xp_xp_idx ON user_xp (xp DESC)`,
	}
	for _, stmt := range stmts {
		if _, err := s.Pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
