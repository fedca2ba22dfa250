package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/monad-dog/dogpark/internal/config"
	"github.com/monad-dog/dogpark/internal/game"
	"github.com/monad-dog/dogpark/internal/store"
)

// Store is the slice of the persistence layer the handlers need.
type Store interface {
	Ping(ctx context.Context) error
	GetUserXP(ctx context.Context, address string) (*store.UserXP, error)
	UpsertUserXP(ctx context.Context, address string, xp int64) error
	GetCollection(ctx context.Context, address string) ([]store.CollectionEntry, error)
	ReplaceCollection(ctx context.Context, address string, dogIDs []string, totalPets int64) error
	GetUserChallenges(ctx context.Context, address string) (*store.UserChallenges, error)
	UpsertUserChallenges(ctx context.Context, address string, progress, dailyStats map[string]int64, lastResetDate string) error
	ListLeaderboard(ctx context.Context, limit int) ([]store.LeaderboardEntry, error)
}

type Handlers struct {
	st      Store
	cfg     config.ServerConfig
	limiter *writeLimiter
}

func NewHandlers(st Store, cfg config.ServerConfig) *Handlers {
	return &Handlers{
		st:      st,
		cfg:     cfg,
		limiter: newWriteLimiter(time.Duration(cfg.XPWriteWindowMS) * time.Millisecond),
	}
}

func (h *Handlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		database := "connected"
		if err := h.st.Ping(r.Context()); err != nil {
			database = "disconnected"
		}
		writeJSON(w, map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database":  database,
		})
	}
}

type xpResponse struct {
	XP        int64      `json:"xp"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// GetXP never fails: a missing row, and even a storage error, read as a
// zero balance. The client treats any non-2xx as an outage and drops to
// offline mode, which a fresh wallet should not trigger.
func (h *Handlers) GetXP() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := walletParam(r)
		u, err := h.st.GetUserXP(r.Context(), address)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				log.Warn().Err(err).Str("wallet", address).Msg("xp read failed, serving zero balance")
			}
			writeJSON(w, xpResponse{XP: 0, UpdatedAt: nil})
			return
		}
		writeJSON(w, xpResponse{XP: u.XP, UpdatedAt: &u.UpdatedAt})
	}
}

func (h *Handlers) PostXP() http.HandlerFunc {
	type request struct {
		XP *int64 `json:"xp"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		address := walletParam(r)
		if !h.limiter.Allow(address) {
			metricXPWriteRateLimited.Add(1)
			WriteHTTPError(w, http.StatusTooManyRequests, "too_many_xp_updates")
			return
		}
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.XP == nil || *req.XP < 0 {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_xp_amount")
			return
		}
		metricXPWriteTotal.Add(1)
		if err := h.st.UpsertUserXP(r.Context(), address, *req.XP); err != nil {
			// Writes are best effort. The client resends its full
			// balance on the next tick, so a dropped write heals
			// itself and a 5xx would only push the client offline.
			metricXPWriteErrors.Add(1)
			log.Warn().Err(err).Str("wallet", address).Msg("xp write failed")
		}
		writeJSON(w, map[string]any{"success": true, "xp": *req.XP})
	}
}

func (h *Handlers) Stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := walletParam(r)
		var xp int64
		if u, err := h.st.GetUserXP(r.Context(), address); err == nil {
			xp = u.XP
		}
		dailyStats := map[string]int64{}
		if c, err := h.st.GetUserChallenges(r.Context(), address); err == nil && c.DailyStats != nil {
			dailyStats = c.DailyStats
		}
		writeJSON(w, map[string]any{
			"xp":          xp,
			"daily_stats": dailyStats,
			"level":       xp/game.XPPerLevel + 1,
		})
	}
}

type collectionResponse struct {
	OwnedDogs   []string   `json:"owned_dogs"`
	TotalPets   int64      `json:"total_pets"`
	LastUpdated *time.Time `json:"last_updated"`
}

func (h *Handlers) GetCollection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := walletParam(r)
		entries, err := h.st.GetCollection(r.Context(), address)
		if err != nil {
			log.Warn().Err(err).Str("wallet", address).Msg("collection read failed, serving empty set")
			writeJSON(w, collectionResponse{OwnedDogs: []string{}})
			return
		}
		resp := collectionResponse{OwnedDogs: make([]string, 0, len(entries))}
		for _, e := range entries {
			resp.OwnedDogs = append(resp.OwnedDogs, e.DogID)
			if resp.LastUpdated == nil || e.UnlockedAt.After(*resp.LastUpdated) {
				t := e.UnlockedAt
				resp.LastUpdated = &t
			}
		}
		if c, err := h.st.GetUserChallenges(r.Context(), address); err == nil {
			resp.TotalPets = c.TotalPets
		}
		writeJSON(w, resp)
	}
}

func (h *Handlers) PostCollection() http.HandlerFunc {
	type request struct {
		OwnedDogs []string `json:"owned_dogs"`
		TotalPets int64    `json:"total_pets"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		address := walletParam(r)
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := h.st.ReplaceCollection(r.Context(), address, req.OwnedDogs, req.TotalPets); err != nil {
			log.Error().Err(err).Str("wallet", address).Msg("collection write failed")
			WriteHTTPError(w, http.StatusInternalServerError, "failed_to_update_collection")
			return
		}
		writeJSON(w, map[string]any{"success": true})
	}
}

type challengesResponse struct {
	Progress      map[string]int64 `json:"progress"`
	DailyStats    map[string]int64 `json:"daily_stats"`
	LastResetDate *string          `json:"last_reset_date"`
}

func (h *Handlers) GetChallenges() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := walletParam(r)
		c, err := h.st.GetUserChallenges(r.Context(), address)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				log.Warn().Err(err).Str("wallet", address).Msg("challenges read failed, serving empty progress")
			}
			writeJSON(w, challengesResponse{Progress: map[string]int64{}, DailyStats: map[string]int64{}})
			return
		}
		resp := challengesResponse{Progress: c.Progress, DailyStats: c.DailyStats}
		if resp.Progress == nil {
			resp.Progress = map[string]int64{}
		}
		if resp.DailyStats == nil {
			resp.DailyStats = map[string]int64{}
		}
		if c.LastResetDate != "" {
			resp.LastResetDate = &c.LastResetDate
		}
		writeJSON(w, resp)
	}
}

func (h *Handlers) PostChallenges() http.HandlerFunc {
	type request struct {
		Progress      map[string]int64 `json:"progress"`
		DailyStats    map[string]int64 `json:"daily_stats"`
		LastResetDate string           `json:"last_reset_date"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		address := walletParam(r)
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := h.st.UpsertUserChallenges(r.Context(), address, req.Progress, req.DailyStats, req.LastResetDate); err != nil {
			log.Error().Err(err).Str("wallet", address).Msg("challenges write failed")
			WriteHTTPError(w, http.StatusInternalServerError, "failed_to_update_challenges")
			return
		}
		writeJSON(w, map[string]any{"success": true})
	}
}

type leaderboardEntry struct {
	WalletAddress string    `json:"wallet_address"`
	XP            int64     `json:"xp"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (h *Handlers) Leaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricLeaderboardTotal.Add(1)
		rows, err := h.st.ListLeaderboard(r.Context(), h.cfg.LeaderboardLimit)
		if err != nil {
			metricLeaderboardErrors.Add(1)
			log.Error().Err(err).Msg("leaderboard query failed")
			WriteHTTPError(w, http.StatusInternalServerError, "failed_to_fetch_leaderboard")
			return
		}
		out := make([]leaderboardEntry, 0, len(rows))
		for _, e := range rows {
			out = append(out, leaderboardEntry{WalletAddress: e.WalletAddress, XP: e.XP, UpdatedAt: e.UpdatedAt})
		}
		writeJSON(w, out)
	}
}
