package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rs/zerolog/log"

	"github.com/monad-dog/dogpark/internal/config"
	"github.com/monad-dog/dogpark/internal/logging"
)

type rootOptions struct {
	Wallet string
	Seed   int64
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "dog-bot",
		Short:         "Headless dog park player",
		Long:          "Plays the dog park through the same sync client the browser game uses.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Wallet, "wallet", "", "wallet address (0x...)")
	cmd.PersistentFlags().Int64Var(&opts.Seed, "seed", 0, "RNG seed (0 means time-based)")

	cmd.AddCommand(newPlayCommand(opts))
	cmd.AddCommand(newLeaderboardCommand(opts))
	cmd.AddCommand(newClaimCommand(opts))
	return cmd
}

func main() {
	logCfg, err := config.LoadLog()
	if err != nil {
		panic(err)
	}
	logging.Init(logCfg)

	if err := newRootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("dog-bot failed")
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
