package session

import (
	"context"

	"github.com/monad-dog/dogpark/internal/catalog"
	"github.com/monad-dog/dogpark/internal/game"
	"github.com/monad-dog/dogpark/internal/localstore"
	"github.com/monad-dog/dogpark/internal/syncclient"
	"github.com/rs/zerolog/log"
)

// ActionResult is everything one user action produced: the applied
// reward plus any unlocks and challenge completions it cascaded into.
type ActionResult struct {
	Action    catalog.Action
	Reward    game.RewardResult
	Unlocked  []catalog.Breed
	Completed []game.ChallengeCompletion

	// Set for flips and slot spins.
	FlipWin bool
	Spin    *game.SpinResult
}

// Pet pets the dog.
func (s *Session) Pet(ctx context.Context) (ActionResult, error) {
	return s.perform(ctx, catalog.ActionPet, game.BasePetXP)
}

// GreetGM and GreetGN are the two greeting actions; they share the
// greet challenge counter.
func (s *Session) GreetGM(ctx context.Context) (ActionResult, error) {
	return s.perform(ctx, catalog.ActionGreet, game.BaseGreetXP)
}

func (s *Session) GreetGN(ctx context.Context) (ActionResult, error) {
	return s.perform(ctx, catalog.ActionGreet, game.BaseGreetXP)
}

// FlipCoin flips a coin; wins pay more, but even a loss pays something.
func (s *Session) FlipCoin(ctx context.Context) (ActionResult, error) {
	s.rndMu.Lock()
	win, base := game.FlipCoin(s.rnd)
	s.rndMu.Unlock()
	res, err := s.perform(ctx, catalog.ActionFlip, base)
	res.FlipWin = win
	return res, err
}

// PlaySlots spins the four reels and pays out by the payout table.
func (s *Session) PlaySlots(ctx context.Context) (ActionResult, error) {
	s.rndMu.Lock()
	spin := game.Spin(s.rnd)
	s.rndMu.Unlock()
	res, err := s.perform(ctx, catalog.ActionSlots, spin.XP)
	res.Spin = &spin
	return res, err
}

// CompleteSocial awards the one-time social challenge by bumping its
// counter and letting challenge evaluation pay out.
func (s *Session) CompleteSocial(ctx context.Context) (ActionResult, error) {
	return s.perform(ctx, catalog.ActionSocial, 0)
}

func (s *Session) perform(ctx context.Context, action catalog.Action, base int64) (ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		return ActionResult{}, ErrNotConnected
	}

	out := ActionResult{Action: action}
	if base > 0 {
		reward, err := s.engine.ApplyReward(base, false)
		if err != nil {
			return ActionResult{}, err
		}
		out.Reward = reward
	}
	s.engine.RecordAction(action, 1)
	s.lifetime[action]++

	out.Unlocked = s.engine.EvaluateUnlocks(s.baseline)
	for range out.Unlocked {
		s.lifetime[catalog.ActionCollection]++
	}

	completed, err := s.engine.EvaluateChallenges(s.marker)
	if err != nil {
		log.Warn().Err(err).Msg("challenge evaluation failed")
	}
	out.Completed = completed

	state := s.engine.State()
	s.persistLocked(ctx, state, len(out.Unlocked) > 0)
	return out, nil
}

// persistLocked mirrors state locally right away and schedules the
// remote sync. XP rides the debounce; challenge progress and any new
// unlocks go out immediately.
func (s *Session) persistLocked(ctx context.Context, state game.PlayerState, collectionChanged bool) {
	addr := state.Address
	_ = s.local.Set(localstore.KeyTotalXP(addr), state.TotalXP)
	_ = s.local.Set(localstore.KeyTotalStats(addr), s.lifetime)
	_ = s.local.Set(localstore.KeyDailyStats(addr), state.DailyStats)

	s.sync.ScheduleXP(addr, state.XP)
	s.pushChallengesLocked(ctx, state)
	if collectionChanged {
		s.pushCollectionLocked(ctx, state)
	}
}

// Claim converts spendable XP into tokens and pushes the reduced
// balance immediately rather than waiting for the debounce.
func (s *Session) Claim(ctx context.Context) (game.ClaimResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		return game.ClaimResult{}, ErrNotConnected
	}
	res, err := s.engine.Claim(game.ClaimRate)
	if err != nil {
		return game.ClaimResult{}, err
	}
	state := s.engine.State()
	s.sync.SetXP(ctx, state.Address, state.XP)
	log.Info().Int64("tokens", res.Tokens).Int64("remaining_xp", res.RemainingXP).Msg("claimed tokens")
	return res, nil
}

// Leaderboard proxies the global ranking.
func (s *Session) Leaderboard(ctx context.Context) ([]syncclient.LeaderboardEntry, error) {
	return s.sync.Leaderboard(ctx)
}
