package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/monad-dog/dogpark/internal/game"
)

func newClaimCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "claim",
		Short: "Convert claimable XP into tokens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rootOpts.Wallet == "" {
				return fmt.Errorf("--wallet is required")
			}
			sess, _, cleanup, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			if err := sess.Connect(ctx, rootOpts.Wallet); err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer sess.Disconnect(ctx)

			res, err := sess.Claim(ctx)
			if err != nil {
				if errors.Is(err, game.ErrInsufficientXP) {
					fmt.Println("not enough XP to claim")
					return nil
				}
				return fmt.Errorf("claim: %w", err)
			}
			fmt.Printf("claimed %d tokens (spent %d XP, %d XP left)\n",
				res.Tokens, res.ConsumedXP, res.RemainingXP)
			return nil
		},
	}
}
