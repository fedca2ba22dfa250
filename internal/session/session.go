package session

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/monad-dog/dogpark/internal/catalog"
	"github.com/monad-dog/dogpark/internal/config"
	"github.com/monad-dog/dogpark/internal/game"
	"github.com/monad-dog/dogpark/internal/localstore"
	"github.com/monad-dog/dogpark/internal/syncclient"
	"github.com/monad-dog/dogpark/internal/wallet"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidAddress = errors.New("invalid_address")
	ErrNotConnected   = errors.New("not_connected")
)

// Session wires the reward engine, the sync client, and local storage
// for one wallet. It is the explicit context object handlers receive;
// there is no process-wide game state.
type Session struct {
	cfg   config.ClientConfig
	sync  *syncclient.Client
	local *localstore.Store

	mu     sync.Mutex
	engine *game.Engine
	marker *localstore.Marker
	// lifetime is the persisted all-time action count. baseline is
	// lifetime minus whatever daily progress the engine was hydrated
	// with, so that baseline plus the engine's counters equals the
	// all-time count and no action is counted twice.
	lifetime map[catalog.Action]int64
	baseline map[catalog.Action]int64
	now      func() time.Time

	rndMu sync.Mutex
	rnd   *rand.Rand
}

type Option func(*Session)

// WithRand overrides the randomness source for flips and slots.
func WithRand(rnd *rand.Rand) Option {
	return func(s *Session) { s.rnd = rnd }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func New(cfg config.ClientConfig, sc *syncclient.Client, local *localstore.Store, opts ...Option) *Session {
	s := &Session{
		cfg:   cfg,
		sync:  sc,
		local: local,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect hydrates player state for the wallet, remote-first with local
// fallback, and applies the daily reset policy.
func (s *Session) Connect(ctx context.Context, address string) error {
	if !wallet.IsValid(address) {
		return ErrInvalidAddress
	}
	address = wallet.Normalize(address)

	s.mu.Lock()
	defer s.mu.Unlock()

	xp := s.sync.GetXP(ctx, address)
	col := s.sync.GetCollection(ctx, address)
	ch := s.sync.GetChallenges(ctx, address)

	state := game.NewPlayerState(address)
	state.XP = xp
	// Lifetime XP lives in the local store only. A fresh device starts
	// from the spendable balance, so a heavy claimer reconnects at a
	// lower level there until new rewards accrue.
	state.TotalXP = xp
	if total := s.localTotalXP(address); total > xp {
		state.TotalXP = total
	}
	state.OwnedDogs = col.OwnedDogs
	for k, v := range ch.Progress {
		state.Progress[k] = v
	}
	for k, v := range ch.DailyStats {
		state.DailyStats[k] = v
	}

	s.engine = game.NewEngine(address, game.WithClock(s.now))
	s.engine.Hydrate(state)
	s.marker = localstore.NewMarker(s.local, address)
	s.lifetime = map[catalog.Action]int64{}
	_, _ = s.local.Get(localstore.KeyTotalStats(address), &s.lifetime)
	// The hydrated progress already holds today's actions, which are
	// also in the lifetime counters. Subtract them so baseline plus
	// the engine's counters always equals the all-time count.
	s.baseline = cloneCounts(s.lifetime)
	for action, n := range state.Progress {
		s.baseline[action] -= n
		if s.baseline[action] < 0 {
			s.baseline[action] = 0
		}
	}

	if s.cfg.DailyReset {
		s.resetIfNewDay(ctx, address)
	}
	log.Info().Str("address", address).Int64("xp", xp).Msg("session connected")
	return nil
}

// Disconnect flushes pending writes and drops the in-memory state.
func (s *Session) Disconnect(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		return
	}
	state := s.engine.State()
	s.sync.FlushXP(ctx, state.Address)
	s.pushChallengesLocked(ctx, state)
	s.engine = nil
	s.marker = nil
	s.lifetime = nil
	s.baseline = nil
	log.Info().Str("address", state.Address).Msg("session disconnected")
}

func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine != nil
}

// State returns a copy of the current player state.
func (s *Session) State() (game.PlayerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		return game.PlayerState{}, ErrNotConnected
	}
	return s.engine.State(), nil
}

func (s *Session) localTotalXP(address string) int64 {
	var total int64
	_, _ = s.local.Get(localstore.KeyTotalXP(address), &total)
	return total
}

// resetIfNewDay clears daily counters and completion markers when the
// stored reset day is not today. Marker keys would expire on their own;
// this is the one explicit path that clears both together.
func (s *Session) resetIfNewDay(ctx context.Context, address string) {
	today := game.Day(s.now())
	var last string
	_, _ = s.local.Get(localstore.KeyLastReset(address), &last)
	if last == today {
		return
	}
	s.engine.ResetDaily()
	s.baseline = cloneCounts(s.lifetime)
	if err := s.marker.Clear(); err != nil {
		log.Warn().Err(err).Msg("marker clear failed during daily reset")
	}
	_ = s.local.Set(localstore.KeyLastReset(address), today)
	s.pushChallengesLocked(ctx, s.engine.State())
	log.Info().Str("address", address).Str("day", today).Msg("daily reset applied")
}

func cloneCounts(m map[catalog.Action]int64) map[catalog.Action]int64 {
	out := make(map[catalog.Action]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Session) pushChallengesLocked(ctx context.Context, state game.PlayerState) {
	s.sync.SetChallenges(ctx, state.Address, syncclient.Challenges{
		Progress:      state.Progress,
		DailyStats:    state.DailyStats,
		LastResetDate: game.Day(s.now()),
	})
}

func (s *Session) pushCollectionLocked(ctx context.Context, state game.PlayerState) {
	s.sync.SetCollection(ctx, state.Address, syncclient.Collection{
		OwnedDogs: state.OwnedDogs,
		TotalPets: s.lifetime[catalog.ActionPet],
	})
}
