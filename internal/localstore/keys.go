package localstore

import "github.com/monad-dog/dogpark/internal/wallet"

// Key layout shared with the remote mirror. Everything is scoped by the
// lowercased wallet address.
func KeyXP(addr string) string         { return "xp_" + wallet.Normalize(addr) }
func KeyCollection(addr string) string { return "collection_" + wallet.Normalize(addr) }
func KeyChallenges(addr string) string { return "challenges_" + wallet.Normalize(addr) }
func KeyDailyStats(addr string) string { return "daily_stats_" + wallet.Normalize(addr) }
func KeyLastReset(addr string) string  { return "last_daily_reset_" + wallet.Normalize(addr) }
func KeyTotalXP(addr string) string    { return "total_xp_" + wallet.Normalize(addr) }
func KeyTotalStats(addr string) string { return "total_stats_" + wallet.Normalize(addr) }

func KeyCompleted(challengeID, addr string) string {
	return "challenge_completed_" + challengeID + "_" + wallet.Normalize(addr)
}
