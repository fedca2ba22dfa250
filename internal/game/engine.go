package game

import (
	"math"
	"time"

	"github.com/monad-dog/dogpark/internal/catalog"
)

// Engine owns a single wallet's in-memory state and applies the reward
// rules to it. It is not safe for concurrent use; the session layer
// serializes access.
type Engine struct {
	state PlayerState
	now   func() time.Time
}

type Option func(*Engine)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(address string, opts ...Option) *Engine {
	e := &Engine{state: NewPlayerState(address), now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Hydrate replaces the engine state with values loaded from storage.
// Level and the combo multiplier are recomputed, not trusted.
func (e *Engine) Hydrate(s PlayerState) {
	s.Address = e.state.Address
	if s.Progress == nil {
		s.Progress = map[catalog.Action]int64{}
	}
	if s.DailyStats == nil {
		s.DailyStats = map[catalog.Action]int64{}
	}
	if s.ComboMultiplier < 1.0 {
		s.ComboMultiplier = 1.0
	}
	e.state = s
}

func (e *Engine) State() PlayerState {
	return e.state.Clone()
}

// RewardResult reports one applied reward.
type RewardResult struct {
	Base            int64
	Applied         int64
	XP              int64
	TotalXP         int64
	Level           int64
	LeveledUp       bool
	Combo           int64
	ComboMultiplier float64
	CollectionBonus float64
}

// ApplyReward converts a base amount into an applied XP delta. Actions
// within the combo window stretch the streak multiplier up to the hard
// cap; a stale streak resets to 1. The best owned-dog bonus multiplies
// on top, and the product is floored.
func (e *Engine) ApplyReward(base int64, bypassGate bool) (RewardResult, error) {
	if !bypassGate && e.state.Address == "" {
		return RewardResult{}, ErrWalletNotConnected
	}
	if base < 0 {
		return RewardResult{}, ErrNegativeReward
	}

	now := e.now()
	if !e.state.LastActionTime.IsZero() && now.Sub(e.state.LastActionTime) < ComboWindow {
		// The multiplier trails the counter by one step: the second
		// action in a streak pays x1.1, the third x1.2, capped at x2.
		e.state.ComboMultiplier = math.Min(1+ComboStep*float64(e.state.Combo), MaxComboMultiplier)
		e.state.Combo++
	} else {
		e.state.Combo = 1
		e.state.ComboMultiplier = 1.0
	}
	e.state.LastActionTime = now

	bonus := e.state.CollectionBonus()
	applied := int64(math.Floor(float64(base) * e.state.ComboMultiplier * bonus))

	prevLevel := e.state.Level()
	e.state.XP += applied
	e.state.TotalXP += applied

	return RewardResult{
		Base:            base,
		Applied:         applied,
		XP:              e.state.XP,
		TotalXP:         e.state.TotalXP,
		Level:           e.state.Level(),
		LeveledUp:       e.state.Level() > prevLevel,
		Combo:           e.state.Combo,
		ComboMultiplier: e.state.ComboMultiplier,
		CollectionBonus: bonus,
	}, nil
}

// RecordAction bumps challenge progress and daily stats for an action.
func (e *Engine) RecordAction(action catalog.Action, n int64) {
	if n <= 0 {
		return
	}
	e.state.Progress[action] += n
	e.state.DailyStats[action] += n
}

// ClaimResult reports an XP-to-token conversion.
type ClaimResult struct {
	Tokens      int64
	ConsumedXP  int64
	RemainingXP int64
}

// Claim converts spendable XP to whole tokens at the given rate. The
// remainder below one token stays on the balance. Lifetime XP and level
// are untouched: claiming spends XP, it does not unlive it.
func (e *Engine) Claim(rate int64) (ClaimResult, error) {
	if rate <= 0 {
		rate = ClaimRate
	}
	if e.state.XP < rate {
		return ClaimResult{}, ErrInsufficientXP
	}
	tokens := e.state.XP / rate
	consumed := tokens * rate
	e.state.XP -= consumed
	return ClaimResult{Tokens: tokens, ConsumedXP: consumed, RemainingXP: e.state.XP}, nil
}
