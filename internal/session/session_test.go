package session

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/monad-dog/dogpark/internal/catalog"
	"github.com/monad-dog/dogpark/internal/config"
	"github.com/monad-dog/dogpark/internal/game"
	"github.com/monad-dog/dogpark/internal/localstore"
	"github.com/monad-dog/dogpark/internal/syncclient"
)

const testAddr = "0xabcdef1234567890abcdef1234567890abcdef12"

// fakeBackend is an in-memory stand-in for the API server.
type fakeBackend struct {
	mu         sync.Mutex
	xp         map[string]int64
	xpWrites   int
	challenges map[string]map[string]any
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		xp:         map[string]int64{},
		challenges: map[string]map[string]any{},
	}
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
	})
	mux.HandleFunc("/xp/", func(w http.ResponseWriter, r *http.Request) {
		addr := strings.TrimPrefix(r.URL.Path, "/xp/")
		f.mu.Lock()
		defer f.mu.Unlock()
		if r.Method == http.MethodPost {
			var body struct {
				XP int64 `json:"xp"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			f.xp[addr] = body.XP
			f.xpWrites++
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "xp": body.XP})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"xp": f.xp[addr]})
	})
	mux.HandleFunc("/collection/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"owned_dogs": []string{}, "total_pets": 0})
	})
	mux.HandleFunc("/challenges/", func(w http.ResponseWriter, r *http.Request) {
		addr := strings.TrimPrefix(r.URL.Path, "/challenges/")
		f.mu.Lock()
		defer f.mu.Unlock()
		if r.Method == http.MethodPost {
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			f.challenges[addr] = body
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
			return
		}
		if ch, ok := f.challenges[addr]; ok {
			_ = json.NewEncoder(w).Encode(ch)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"progress": map[string]int64{}, "daily_stats": map[string]int64{}})
	})
	return mux
}

func (f *fakeBackend) getXP(addr string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.xp[addr]
}

type fixture struct {
	backend *fakeBackend
	session *Session
	sync    *syncclient.Client
	advance func(time.Duration)
}

func newFixture(t *testing.T, mutate func(*config.ClientConfig)) *fixture {
	t.Helper()
	backend := newFakeBackend()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	cfg := config.ClientConfig{
		APIBaseURL:      srv.URL,
		RetryAttempts:   1,
		AttemptTimeout:  2 * time.Second,
		CacheTTL:        time.Millisecond, // tests read their own writes
		XPWriteInterval: time.Second,
		XPWriteDebounce: 20 * time.Millisecond,
		ProbeInterval:   time.Minute,
		DailyReset:      true,
	}
	if mutate != nil {
		mutate(&cfg)
	}

	local, err := localstore.Open(filepath.Join(t.TempDir(), "local.json"))
	if err != nil {
		t.Fatalf("open local store: %v", err)
	}
	sc := syncclient.New(cfg, local)
	t.Cleanup(sc.Close)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		now = now.Add(d)
		mu.Unlock()
	}

	sess := New(cfg, sc, local,
		WithClock(clock),
		WithRand(rand.New(rand.NewSource(7))),
	)
	return &fixture{backend: backend, session: sess, sync: sc, advance: advance}
}

func TestConnectRejectsInvalidAddress(t *testing.T) {
	f := newFixture(t, nil)
	if err := f.session.Connect(context.Background(), "not-an-address"); !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("err = %v, want ErrInvalidAddress", err)
	}
}

func TestConnectHydratesRemoteXP(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.xp[testAddr] = 120

	if err := f.session.Connect(context.Background(), testAddr); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	state, err := f.session.State()
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if state.XP != 120 || state.TotalXP != 120 {
		t.Fatalf("xp = %d totalXP = %d, want 120", state.XP, state.TotalXP)
	}
	if state.Level() != 1 {
		t.Fatalf("level = %d, want 1", state.Level())
	}
}

func TestConnectNormalizesAddressCase(t *testing.T) {
	f := newFixture(t, nil)
	upper := "0x" + strings.ToUpper(testAddr[2:])
	if err := f.session.Connect(context.Background(), upper); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	state, _ := f.session.State()
	if state.Address != testAddr {
		t.Fatalf("address = %s, want normalized %s", state.Address, testAddr)
	}
}

func TestActionsRequireConnection(t *testing.T) {
	f := newFixture(t, nil)
	if _, err := f.session.Pet(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("err = %v, want ErrNotConnected", err)
	}
	if _, err := f.session.Claim(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("claim err = %v, want ErrNotConnected", err)
	}
}

func TestPetRewardAndUnlockAndChallenge(t *testing.T) {
	f := newFixture(t, nil)
	if err := f.session.Connect(context.Background(), testAddr); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	var sawShiba, sawPetMaster bool
	for i := 0; i < 10; i++ {
		res, err := f.session.Pet(context.Background())
		if err != nil {
			t.Fatalf("pet %d: %v", i, err)
		}
		if i == 0 && res.Reward.Applied != game.BasePetXP {
			t.Fatalf("first pet applied = %d, want %d", res.Reward.Applied, game.BasePetXP)
		}
		for _, b := range res.Unlocked {
			if b.ID == "shiba" {
				sawShiba = true
			}
		}
		for _, c := range res.Completed {
			if c.Challenge.ID == "pet_master" {
				sawPetMaster = true
			}
		}
		// Stay outside the combo window to keep the math flat.
		f.advance(game.ComboWindow + time.Second)
	}
	if !sawShiba {
		t.Fatalf("shiba never unlocked across 10 pets")
	}
	if !sawPetMaster {
		t.Fatalf("pet_master never completed across 10 pets")
	}
	state, _ := f.session.State()
	if !state.Owns("shiba") {
		t.Fatalf("owned set missing shiba: %v", state.OwnedDogs)
	}
}

func TestChallengeNotReawardedSameDay(t *testing.T) {
	f := newFixture(t, nil)
	if err := f.session.Connect(context.Background(), testAddr); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	completions := 0
	for i := 0; i < 12; i++ {
		res, err := f.session.Pet(context.Background())
		if err != nil {
			t.Fatalf("pet %d: %v", i, err)
		}
		for _, c := range res.Completed {
			if c.Challenge.ID == "pet_master" {
				completions++
			}
		}
		f.advance(game.ComboWindow + time.Second)
	}
	if completions != 1 {
		t.Fatalf("pet_master completed %d times in one day, want 1", completions)
	}
}

func TestClaimPushesBalanceImmediately(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.xp[testAddr] = 25
	if err := f.session.Connect(context.Background(), testAddr); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	res, err := f.session.Claim(context.Background())
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if res.Tokens != 2 || res.RemainingXP != 5 {
		t.Fatalf("claim = %+v, want 2 tokens, 5 remaining", res)
	}
	if got := f.backend.getXP(testAddr); got != 5 {
		t.Fatalf("backend xp = %d, want 5 written synchronously", got)
	}
	// Lifetime XP survives the claim.
	state, _ := f.session.State()
	if state.TotalXP != 25 {
		t.Fatalf("totalXP = %d, want 25", state.TotalXP)
	}
}

func TestClaimInsufficientXP(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.xp[testAddr] = 9
	if err := f.session.Connect(context.Background(), testAddr); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if _, err := f.session.Claim(context.Background()); !errors.Is(err, game.ErrInsufficientXP) {
		t.Fatalf("err = %v, want ErrInsufficientXP", err)
	}
}

func TestDisconnectFlushesScheduledXP(t *testing.T) {
	f := newFixture(t, func(cfg *config.ClientConfig) {
		cfg.XPWriteDebounce = time.Hour // the flush must not wait for it
	})
	if err := f.session.Connect(context.Background(), testAddr); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if _, err := f.session.Pet(context.Background()); err != nil {
		t.Fatalf("Pet: %v", err)
	}

	f.session.Disconnect(context.Background())
	if f.session.Connected() {
		t.Fatalf("still connected after disconnect")
	}
	if got := f.backend.getXP(testAddr); got != game.BasePetXP {
		t.Fatalf("backend xp = %d, want %d flushed on disconnect", got, game.BasePetXP)
	}
	if _, err := f.session.State(); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("state after disconnect: %v, want ErrNotConnected", err)
	}
}

func TestDailyResetClearsRemoteProgress(t *testing.T) {
	f := newFixture(t, nil)
	f.backend.challenges[testAddr] = map[string]any{
		"progress":    map[string]int64{"pet": 8},
		"daily_stats": map[string]int64{"pet": 8},
	}

	// No stored reset day: connecting applies the reset.
	if err := f.session.Connect(context.Background(), testAddr); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	state, _ := f.session.State()
	if got := state.Progress[catalog.ActionPet]; got != 0 {
		t.Fatalf("pet progress = %d after reset, want 0", got)
	}
}

func TestDailyResetDisabledKeepsProgress(t *testing.T) {
	f := newFixture(t, func(cfg *config.ClientConfig) {
		cfg.DailyReset = false
	})
	f.backend.challenges[testAddr] = map[string]any{
		"progress":    map[string]int64{"pet": 8},
		"daily_stats": map[string]int64{"pet": 8},
	}

	if err := f.session.Connect(context.Background(), testAddr); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	state, _ := f.session.State()
	if got := state.Progress[catalog.ActionPet]; got != 8 {
		t.Fatalf("pet progress = %d, want 8 preserved", got)
	}
}

func TestUnlockThresholdSpansSessions(t *testing.T) {
	f := newFixture(t, nil)
	if err := f.session.Connect(context.Background(), testAddr); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	// Nine pets this session, then reconnect: the tenth should still
	// unlock the shiba because lifetime stats persist locally.
	for i := 0; i < 9; i++ {
		if _, err := f.session.Pet(context.Background()); err != nil {
			t.Fatalf("pet %d: %v", i, err)
		}
		f.advance(game.ComboWindow + time.Second)
	}
	f.session.Disconnect(context.Background())

	if err := f.session.Connect(context.Background(), testAddr); err != nil {
		t.Fatalf("reconnect: %v", err)
	}
	res, err := f.session.Pet(context.Background())
	if err != nil {
		t.Fatalf("tenth pet: %v", err)
	}
	found := false
	for _, b := range res.Unlocked {
		if b.ID == "shiba" {
			found = true
		}
	}
	if !found {
		t.Fatalf("shiba not unlocked on tenth lifetime pet: %v", res.Unlocked)
	}
}

func TestCompleteSocialAwardsOnce(t *testing.T) {
	f := newFixture(t, nil)
	if err := f.session.Connect(context.Background(), testAddr); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	res, err := f.session.CompleteSocial(context.Background())
	if err != nil {
		t.Fatalf("CompleteSocial: %v", err)
	}
	if len(res.Completed) != 1 || res.Completed[0].Challenge.ID != "x_follower" {
		t.Fatalf("completed = %+v, want x_follower", res.Completed)
	}
	state, _ := f.session.State()
	if state.XP != 1000 {
		t.Fatalf("xp = %d, want 1000", state.XP)
	}

	// Repeating never pays again, not even across a day boundary.
	f.advance(25 * time.Hour)
	res, err = f.session.CompleteSocial(context.Background())
	if err != nil {
		t.Fatalf("second CompleteSocial: %v", err)
	}
	if len(res.Completed) != 0 {
		t.Fatalf("one-time challenge completed again: %+v", res.Completed)
	}
}

func TestSameDayReconnectDoesNotDoubleCountUnlocks(t *testing.T) {
	f := newFixture(t, nil)
	if err := f.session.Connect(context.Background(), testAddr); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := f.session.Pet(context.Background()); err != nil {
			t.Fatalf("pet %d: %v", i, err)
		}
		f.advance(game.ComboWindow + time.Second)
	}
	f.session.Disconnect(context.Background())

	// Reconnecting the same day hydrates today's five pets from the
	// remote progress; they must not stack on the lifetime counters.
	if err := f.session.Connect(context.Background(), testAddr); err != nil {
		t.Fatalf("reconnect: %v", err)
	}
	res, err := f.session.Pet(context.Background())
	if err != nil {
		t.Fatalf("sixth pet: %v", err)
	}
	if len(res.Unlocked) != 0 {
		t.Fatalf("unlocked %v after 6 lifetime pets, threshold is 10", res.Unlocked)
	}
	f.advance(game.ComboWindow + time.Second)

	for i := 7; i <= 9; i++ {
		if _, err := f.session.Pet(context.Background()); err != nil {
			t.Fatalf("pet %d: %v", i, err)
		}
		f.advance(game.ComboWindow + time.Second)
	}
	res, err = f.session.Pet(context.Background())
	if err != nil {
		t.Fatalf("tenth pet: %v", err)
	}
	found := false
	for _, b := range res.Unlocked {
		if b.ID == "shiba" {
			found = true
		}
	}
	if !found {
		t.Fatalf("shiba not unlocked on tenth lifetime pet: %v", res.Unlocked)
	}
}
