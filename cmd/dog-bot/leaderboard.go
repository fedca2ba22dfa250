package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLeaderboardCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the top wallets by XP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, sc, cleanup, err := openSession(rootOpts)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := sc.Leaderboard(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch leaderboard: %w", err)
			}
			if len(entries) == 0 {
				fmt.Println("leaderboard is empty")
				return nil
			}
			for i, e := range entries {
				fmt.Printf("%2d. %s  %d XP\n", i+1, e.WalletAddress, e.XP)
			}
			return nil
		},
	}
}
