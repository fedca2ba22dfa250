package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) GetUserChallenges(ctx context.Context, address string) (*UserChallenges, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT wallet_address, progress, daily_stats, total_pets, last_reset_date, updated_at
		FROM user_challenges WHERE wallet_address = $1
	`, address)
	var (
		u             UserChallenges
		progressRaw   []byte
		dailyStatsRaw []byte
	)
	if err := row.Scan(&u.WalletAddress, &progressRaw, &dailyStatsRaw, &u.TotalPets, &u.LastResetDate, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(progressRaw, &u.Progress); err != nil {
		u.Progress = map[string]int64{}
	}
	if err := json.Unmarshal(dailyStatsRaw, &u.DailyStats); err != nil {
		u.DailyStats = map[string]int64{}
	}
	return &u, nil
}

func (s *Store) UpsertUserChallenges(ctx context.Context, address string, progress, dailyStats map[string]int64, lastResetDate string) error {
	progressRaw, err := json.Marshal(orEmpty(progress))
	if err != nil {
		return err
	}
	dailyStatsRaw, err := json.Marshal(orEmpty(dailyStats))
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx, `
		INSERT INTO user_challenges (wallet_address, progress, daily_stats, last_reset_date, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (wallet_address) DO UPDATE
		SET progress = EXCLUDED.progress,
		    daily_stats = EXCLUDED.daily_stats,
		    last_reset_date = EXCLUDED.last_reset_date,
		    updated_at = now()
	`, address, progressRaw, dailyStatsRaw, lastResetDate)
	return err
}

func orEmpty(m map[string]int64) map[string]int64 {
	if m == nil {
		return map[string]int64{}
	}
	return m
}
