package game

import "math/rand"

type Symbol string

const (
	SymbolBone  Symbol = "bone"
	SymbolBall  Symbol = "ball"
	SymbolHeart Symbol = "heart"
	SymbolCrown Symbol = "crown"
	SymbolWolf  Symbol = "wolf"
)

var slotSymbols = []Symbol{SymbolBone, SymbolBall, SymbolHeart, SymbolCrown, SymbolWolf}

// Slot payouts by best matching count across the four reels. Four wolves
// pay the mythical jackpot instead of the regular one.
const (
	SlotPairXP        = 50
	SlotTripleXP      = 500
	SlotJackpotXP     = 5000
	SlotWolfJackpotXP = 15000
)

type SpinResult struct {
	Reels   [4]Symbol
	Matched int
	Symbol  Symbol
	XP      int64
	Jackpot bool
}

// Spin draws four reels from the given source and scores them.
func Spin(rnd *rand.Rand) SpinResult {
	var reels [4]Symbol
	for i := range reels {
		reels[i] = slotSymbols[rnd.Intn(len(slotSymbols))]
	}
	return ScoreReels(reels)
}

// ScoreReels computes the payout for a fixed reel layout.
func ScoreReels(reels [4]Symbol) SpinResult {
	counts := map[Symbol]int{}
	for _, s := range reels {
		counts[s]++
	}
	res := SpinResult{Reels: reels, Matched: 1}
	for s, n := range counts {
		if n > res.Matched {
			res.Matched = n
			res.Symbol = s
		}
	}
	switch {
	case res.Matched == 4 && res.Symbol == SymbolWolf:
		res.XP = SlotWolfJackpotXP
		res.Jackpot = true
	case res.Matched == 4:
		res.XP = SlotJackpotXP
		res.Jackpot = true
	case res.Matched == 3:
		res.XP = SlotTripleXP
	case res.Matched == 2:
		res.XP = SlotPairXP
	}
	return res
}

// FlipCoin resolves one coin flip and its base reward.
func FlipCoin(rnd *rand.Rand) (win bool, base int64) {
	if rnd.Intn(2) == 0 {
		return true, BaseFlipWinXP
	}
	return false, BaseFlipLossXP
}
