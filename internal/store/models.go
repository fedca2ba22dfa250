package store

import "time"

type UserXP struct {
	WalletAddress string
	XP            int64
	UpdatedAt     time.Time
}

type CollectionEntry struct {
	WalletAddress string
	DogID         string
	UnlockedAt    time.Time
}

type UserChallenges struct {
	WalletAddress string
	Progress      map[string]int64
	DailyStats    map[string]int64
	TotalPets     int64
	LastResetDate string
	UpdatedAt     time.Time
}

type LeaderboardEntry struct {
	WalletAddress string
	XP            int64
	UpdatedAt     time.Time
}

type XPEvent struct {
	ID            string
	WalletAddress string
	XP            int64
	CreatedAt     time.Time
}
