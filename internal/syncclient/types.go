package syncclient

import (
	"encoding/json"

	"github.com/monad-dog/dogpark/internal/catalog"
)

type Resource string

const (
	ResourceXP         Resource = "xp"
	ResourceCollection Resource = "collection"
	ResourceChallenges Resource = "challenges"
	ResourceDailyStats Resource = "dailyStats"
)

// Collection is the canonical shape of the remote collection resource.
type Collection struct {
	OwnedDogs []string `json:"owned_dogs"`
	TotalPets int64    `json:"total_pets"`
}

// Challenges bundles challenge progress and daily stats; the remote API
// stores and returns them together.
type Challenges struct {
	Progress      map[catalog.Action]int64 `json:"progress"`
	DailyStats    map[catalog.Action]int64 `json:"daily_stats"`
	LastResetDate string                   `json:"last_reset_date"`
}

type LeaderboardEntry struct {
	WalletAddress string `json:"wallet_address"`
	XP            int64  `json:"xp"`
	UpdatedAt     string `json:"updated_at"`
}

// stringSlice tolerates the two shapes the backend has been seen to
// produce for owned_dogs: a JSON array, or that same array re-encoded
// as a JSON string. Everything downstream only ever sees the array.
type stringSlice []string

func (s *stringSlice) UnmarshalJSON(raw []byte) error {
	var direct []string
	if err := json.Unmarshal(raw, &direct); err == nil {
		*s = direct
		return nil
	}
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return err
	}
	var nested []string
	if err := json.Unmarshal([]byte(encoded), &nested); err != nil {
		*s = nil
		return nil
	}
	*s = nested
	return nil
}

type xpPayload struct {
	XP        int64   `json:"xp"`
	UpdatedAt *string `json:"updated_at"`
}

type collectionPayload struct {
	OwnedDogs stringSlice `json:"owned_dogs"`
	TotalPets int64       `json:"total_pets"`
}

type challengesPayload struct {
	Progress      map[catalog.Action]int64 `json:"progress"`
	DailyStats    map[catalog.Action]int64 `json:"daily_stats"`
	LastResetDate string                   `json:"last_reset_date"`
}
