package store

import "context"

func (s *Store) GetCollection(ctx context.Context, address string) ([]CollectionEntry, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT wallet_address, dog_id, unlocked_at FROM dog_collection
		WHERE wallet_address = $1 ORDER BY unlocked_at ASC
	`, address)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []CollectionEntry{}
	for rows.Next() {
		var e CollectionEntry
		if err := rows.Scan(&e.WalletAddress, &e.DogID, &e.UnlockedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ReplaceCollection sets the owned set for a wallet. Already-present
// breeds keep their original unlock timestamp.
func (s *Store) ReplaceCollection(ctx context.Context, address string, dogIDs []string, totalPets int64) error {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, id := range dogIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO dog_collection (wallet_address, dog_id)
			VALUES ($1, $2)
			ON CONFLICT (wallet_address, dog_id) DO NOTHING
		`, address, id); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO user_challenges (wallet_address, total_pets, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (wallet_address) DO UPDATE
		SET total_pets = EXCLUDED.total_pets, updated_at = now()
	`, address, totalPets); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
