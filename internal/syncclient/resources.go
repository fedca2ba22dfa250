package syncclient

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/monad-dog/dogpark/internal/localstore"
	"github.com/monad-dog/dogpark/internal/wallet"
	"github.com/rs/zerolog/log"
)

// GetXP returns the remote XP balance, falling back through cache, local
// mirror, and zero. It never fails.
func (c *Client) GetXP(ctx context.Context, address string) int64 {
	key := localstore.KeyXP(address)
	if raw, ok := c.cacheGet(key); ok {
		var xp int64
		if json.Unmarshal(raw, &xp) == nil {
			return xp
		}
	}
	if c.Offline() {
		return c.localXP(address)
	}
	raw, err := c.request(ctx, http.MethodGet, "/xp/"+wallet.Normalize(address), nil)
	if err != nil {
		log.Warn().Err(err).Msg("xp fetch failed, using local fallback")
		c.enterOffline()
		return c.localXP(address)
	}
	var payload xpPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return c.localXP(address)
	}
	c.cacheSet(key, payload.XP)
	_ = c.local.Set(key, payload.XP)
	return payload.XP
}

func (c *Client) localXP(address string) int64 {
	var xp int64
	_, _ = c.local.Get(localstore.KeyXP(address), &xp)
	return xp
}

// GetCollection returns the owned-dog collection with the same fallback
// chain as GetXP. Remote payloads are normalized before they escape.
func (c *Client) GetCollection(ctx context.Context, address string) Collection {
	key := localstore.KeyCollection(address)
	if raw, ok := c.cacheGet(key); ok {
		var col Collection
		if json.Unmarshal(raw, &col) == nil {
			return col
		}
	}
	if c.Offline() {
		return c.localCollection(address)
	}
	raw, err := c.request(ctx, http.MethodGet, "/collection/"+wallet.Normalize(address), nil)
	if err != nil {
		log.Warn().Err(err).Msg("collection fetch failed, using local fallback")
		c.enterOffline()
		return c.localCollection(address)
	}
	var payload collectionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return c.localCollection(address)
	}
	col := Collection{OwnedDogs: payload.OwnedDogs, TotalPets: payload.TotalPets}
	c.cacheSet(key, col)
	_ = c.local.Set(key, col)
	return col
}

func (c *Client) localCollection(address string) Collection {
	var col Collection
	_, _ = c.local.Get(localstore.KeyCollection(address), &col)
	return col
}

// GetChallenges returns challenge progress and daily stats together.
func (c *Client) GetChallenges(ctx context.Context, address string) Challenges {
	key := localstore.KeyChallenges(address)
	if raw, ok := c.cacheGet(key); ok {
		var ch Challenges
		if json.Unmarshal(raw, &ch) == nil {
			return ch
		}
	}
	if c.Offline() {
		return c.localChallenges(address)
	}
	raw, err := c.request(ctx, http.MethodGet, "/challenges/"+wallet.Normalize(address), nil)
	if err != nil {
		log.Warn().Err(err).Msg("challenges fetch failed, using local fallback")
		c.enterOffline()
		return c.localChallenges(address)
	}
	var payload challengesPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return c.localChallenges(address)
	}
	ch := Challenges{Progress: payload.Progress, DailyStats: payload.DailyStats, LastResetDate: payload.LastResetDate}
	c.cacheSet(key, ch)
	_ = c.local.Set(key, ch)
	return ch
}

func (c *Client) localChallenges(address string) Challenges {
	var ch Challenges
	_, _ = c.local.Get(localstore.KeyChallenges(address), &ch)
	return ch
}

// SetCollection mirrors the collection locally and pushes it remotely,
// queueing the write when the API is unreachable.
func (c *Client) SetCollection(ctx context.Context, address string, col Collection) {
	key := localstore.KeyCollection(address)
	_ = c.local.Set(key, col)
	c.cacheSet(key, col)
	body := map[string]any{"owned_dogs": col.OwnedDogs, "total_pets": col.TotalPets}
	c.setResource(ctx, ResourceCollection, address, "/collection/"+wallet.Normalize(address), body)
}

// SetChallenges mirrors and pushes challenge progress plus daily stats.
func (c *Client) SetChallenges(ctx context.Context, address string, ch Challenges) {
	key := localstore.KeyChallenges(address)
	_ = c.local.Set(key, ch)
	c.cacheSet(key, ch)
	body := map[string]any{
		"progress":        ch.Progress,
		"daily_stats":     ch.DailyStats,
		"last_reset_date": ch.LastResetDate,
	}
	c.setResource(ctx, ResourceChallenges, address, "/challenges/"+wallet.Normalize(address), body)
}

func (c *Client) setResource(ctx context.Context, res Resource, address, path string, body any) {
	if c.Offline() {
		c.enqueue(res, address, path, body)
		return
	}
	if _, err := c.request(ctx, http.MethodPost, path, body); err != nil {
		log.Warn().Err(err).Str("resource", string(res)).Msg("remote write failed, queueing")
		c.enterOffline()
		c.enqueue(res, address, path, body)
	}
}

// Leaderboard fetches the global ranking. Unlike player state it has no
// meaningful local fallback, so the error surfaces to the caller.
func (c *Client) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	raw, err := c.request(ctx, http.MethodGet, "/leaderboard", nil)
	if err != nil {
		return nil, err
	}
	var entries []LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
