package store

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
)

// xp_events ids are ULIDs so the history sorts by insertion time even
// across server restarts.
var (
	eventEntropyMu sync.Mutex
	eventEntropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

func newEventID() string {
	eventEntropyMu.Lock()
	defer eventEntropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), eventEntropy).String()
}

func (s *Store) GetUserXP(ctx context.Context, address string) (*UserXP, error) {
	row := s.Pool.QueryRow(ctx, `SELECT wallet_address, xp, updated_at FROM user_xp WHERE wallet_address = $1`, address)
	var u UserXP
	if err := row.Scan(&u.WalletAddress, &u.XP, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpsertUserXP stores the latest XP value for a wallet and appends an
// event to the history. The client always sends its full balance, so
// last write wins.
func (s *Store) UpsertUserXP(ctx context.Context, address string, xp int64) error {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO user_xp (wallet_address, xp, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (wallet_address) DO UPDATE
		SET xp = EXCLUDED.xp, updated_at = now()
	`, address, xp); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO xp_events (id, wallet_address, xp) VALUES ($1, $2, $3)`, newEventID(), address, xp); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) ListXPEvents(ctx context.Context, address string, limit int) ([]XPEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT id, wallet_address, xp, created_at FROM xp_events
		WHERE wallet_address = $1 ORDER BY created_at DESC LIMIT $2
	`, address, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []XPEvent{}
	for rows.Next() {
		var e XPEvent
		if err := rows.Scan(&e.ID, &e.WalletAddress, &e.XP, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) ListLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT wallet_address, xp, updated_at FROM user_xp
		ORDER BY xp DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LeaderboardEntry{}
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.WalletAddress, &e.XP, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
