package game

import "errors"

var (
	ErrWalletNotConnected = errors.New("wallet_not_connected")
	ErrInsufficientXP     = errors.New("insufficient_xp")
	ErrNegativeReward     = errors.New("negative_reward")
)
