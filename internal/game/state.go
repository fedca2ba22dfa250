package game

import (
	"time"

	"github.com/monad-dog/dogpark/internal/catalog"
)

const (
	ComboWindow        = 5 * time.Second
	ComboStep          = 0.1
	MaxComboMultiplier = 2.0

	XPPerLevel = 1000

	// ClaimRate is the XP cost of one token.
	ClaimRate = 10
)

// Base rewards per action. Slot rewards come from the payout table in
// slots.go instead.
const (
	BasePetXP      = 10
	BaseGreetXP    = 5
	BaseFlipWinXP  = 20
	BaseFlipLossXP = 3
)

// PlayerState is the full per-wallet game state. Level is always derived
// from TotalXP and never trusted from storage.
type PlayerState struct {
	Address         string
	XP              int64
	TotalXP         int64
	Combo           int64
	ComboMultiplier float64
	OwnedDogs       []string
	Progress        map[catalog.Action]int64
	DailyStats      map[catalog.Action]int64
	LastActionTime  time.Time
}

func NewPlayerState(address string) PlayerState {
	return PlayerState{
		Address:         address,
		ComboMultiplier: 1.0,
		Progress:        map[catalog.Action]int64{},
		DailyStats:      map[catalog.Action]int64{},
	}
}

// Level derives the current level from lifetime XP.
func (s PlayerState) Level() int64 {
	return s.TotalXP/XPPerLevel + 1
}

func (s PlayerState) Owns(breedID string) bool {
	for _, id := range s.OwnedDogs {
		if id == breedID {
			return true
		}
	}
	return false
}

// CollectionBonus is the best XP bonus among owned breeds. Bonuses do not
// stack; one good dog is as good as a kennel.
func (s PlayerState) CollectionBonus() float64 {
	bonus := 1.0
	for _, id := range s.OwnedDogs {
		if b, ok := catalog.BreedByID(id); ok && b.XPBonus > bonus {
			bonus = b.XPBonus
		}
	}
	return bonus
}

// Clone returns a deep copy safe to hand across goroutine boundaries.
func (s PlayerState) Clone() PlayerState {
	out := s
	out.OwnedDogs = append([]string(nil), s.OwnedDogs...)
	out.Progress = make(map[catalog.Action]int64, len(s.Progress))
	for k, v := range s.Progress {
		out.Progress[k] = v
	}
	out.DailyStats = make(map[catalog.Action]int64, len(s.DailyStats))
	for k, v := range s.DailyStats {
		out.DailyStats[k] = v
	}
	return out
}
