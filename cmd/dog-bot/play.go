package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/monad-dog/dogpark/internal/config"
	"github.com/monad-dog/dogpark/internal/localstore"
	"github.com/monad-dog/dogpark/internal/session"
	"github.com/monad-dog/dogpark/internal/syncclient"
)

type playOptions struct {
	*rootOptions
	Actions  int
	Interval time.Duration
}

func newPlayCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &playOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play random actions as the given wallet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Wallet == "" {
				return fmt.Errorf("--wallet is required")
			}
			return runPlay(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.Actions, "actions", 20, "number of actions to play")
	cmd.Flags().DurationVar(&opts.Interval, "interval", 500*time.Millisecond, "pause between actions")
	return cmd
}

func runPlay(ctx context.Context, opts *playOptions) error {
	sess, sc, cleanup, err := openSession(opts.rootOptions)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := sess.Connect(ctx, opts.Wallet); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer sess.Disconnect(ctx)

	rnd := newRand(opts.Seed)
	for i := 0; i < opts.Actions; i++ {
		res, err := playOne(ctx, sess, rnd)
		if err != nil {
			return err
		}
		fmt.Println(formatAction(res))

		if sc.Offline() {
			fmt.Println("(offline, progress queued locally)")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(opts.Interval):
		}
	}

	state, err := sess.State()
	if err != nil {
		return err
	}
	fmt.Printf("done: xp=%d total=%d level=%d dogs=%d\n",
		state.XP, state.TotalXP, state.Level(), len(state.OwnedDogs))
	return nil
}

func formatAction(res session.ActionResult) string {
	line := fmt.Sprintf("%-10s +%d XP (total %d, level %d, combo x%.1f)",
		res.Action, res.Reward.Applied, res.Reward.TotalXP, res.Reward.Level, res.Reward.ComboMultiplier)
	if res.Spin != nil {
		line += fmt.Sprintf("  reels=%v", res.Spin.Reels)
	}
	for _, b := range res.Unlocked {
		line += fmt.Sprintf("  unlocked %s!", b.Name)
	}
	for _, c := range res.Completed {
		line += fmt.Sprintf("  challenge %s +%d", c.Challenge.ID, c.Reward.Applied)
	}
	return line
}

func playOne(ctx context.Context, sess *session.Session, rnd *rand.Rand) (session.ActionResult, error) {
	switch rnd.Intn(5) {
	case 0:
		return sess.Pet(ctx)
	case 1:
		return sess.GreetGM(ctx)
	case 2:
		return sess.GreetGN(ctx)
	case 3:
		return sess.FlipCoin(ctx)
	default:
		return sess.PlaySlots(ctx)
	}
}

func openSession(opts *rootOptions) (*session.Session, *syncclient.Client, func(), error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load client config: %w", err)
	}
	local, err := localstore.Open(cfg.LocalStorePath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open local store: %w", err)
	}
	sc := syncclient.New(cfg, local)
	sess := session.New(cfg, sc, local, session.WithRand(newRand(opts.Seed)))
	return sess, sc, sc.Close, nil
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
