package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/monad-dog/dogpark/internal/store"
	"github.com/monad-dog/dogpark/internal/testutil"
)

const testAddr = "0xabcdef1234567890abcdef1234567890abcdef12"

func TestUserXPRoundTrip(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := st.GetUserXP(ctx, testAddr); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("missing row err = %v, want ErrNotFound", err)
	}

	if err := st.UpsertUserXP(ctx, testAddr, 150); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	u, err := st.GetUserXP(ctx, testAddr)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u.XP != 150 {
		t.Fatalf("xp = %d, want 150", u.XP)
	}

	// Last write wins.
	if err := st.UpsertUserXP(ctx, testAddr, 95); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	u, err = st.GetUserXP(ctx, testAddr)
	if err != nil {
		t.Fatalf("get after overwrite: %v", err)
	}
	if u.XP != 95 {
		t.Fatalf("xp = %d, want 95", u.XP)
	}

	// Every write appends to the event history.
	events, err := st.ListXPEvents(ctx, testAddr, 10)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
}

func TestCollectionKeepsUnlockTimestamps(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	if err := st.ReplaceCollection(ctx, testAddr, []string{"shiba"}, 10); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	first, err := st.GetCollection(ctx, testAddr)
	if err != nil || len(first) != 1 {
		t.Fatalf("get: %v, entries %d", err, len(first))
	}

	if err := st.ReplaceCollection(ctx, testAddr, []string{"shiba", "wolf"}, 20); err != nil {
		t.Fatalf("second replace: %v", err)
	}
	entries, err := st.GetCollection(ctx, testAddr)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if !entries[0].UnlockedAt.Equal(first[0].UnlockedAt) {
		t.Fatalf("shiba unlock timestamp changed on re-replace")
	}
}

func TestChallengesUpsert(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	progress := map[string]int64{"pet": 7, "greet": 2}
	daily := map[string]int64{"pet": 7}
	if err := st.UpsertUserChallenges(ctx, testAddr, progress, daily, "2025-06-01"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	c, err := st.GetUserChallenges(ctx, testAddr)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.Progress["pet"] != 7 || c.LastResetDate != "2025-06-01" {
		t.Fatalf("got %+v", c)
	}
}

func TestLeaderboardOrdersByXPDesc(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	wallets := map[string]int64{
		"0x1111111111111111111111111111111111111111": 50,
		"0x2222222222222222222222222222222222222222": 900,
		"0x3333333333333333333333333333333333333333": 300,
	}
	for addr, xp := range wallets {
		if err := st.UpsertUserXP(ctx, addr, xp); err != nil {
			t.Fatalf("upsert %s: %v", addr, err)
		}
	}
	entries, err := st.ListLeaderboard(ctx, 10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].XP > entries[i-1].XP {
			t.Fatalf("leaderboard not descending: %+v", entries)
		}
	}
}
