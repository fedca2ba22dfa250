package game

import (
	"time"

	"github.com/monad-dog/dogpark/internal/catalog"
)

// CompletionMarker persists which challenges were already awarded. Daily
// challenges are keyed by calendar day, one-time challenges by an empty
// day, so "daily reset" is just a fresh key the next morning.
type CompletionMarker interface {
	Completed(challengeID, day string) (bool, error)
	MarkCompleted(challengeID, day string) error
}

type ChallengeCompletion struct {
	Challenge catalog.Challenge
	Reward    RewardResult
}

// Day formats a timestamp as the marker day key.
func Day(t time.Time) string {
	return t.Format("2006-01-02")
}

// EvaluateChallenges awards every catalog challenge whose progress meets
// its target and which has not been completed for the current day (or
// ever, for one-time challenges). Rewards go through ApplyReward with
// the wallet gate bypassed, so they stack combos like any other action.
func (e *Engine) EvaluateChallenges(marker CompletionMarker) ([]ChallengeCompletion, error) {
	today := Day(e.now())
	var out []ChallengeCompletion

	evaluate := func(c catalog.Challenge) error {
		if e.state.Progress[c.Action] < c.Target {
			return nil
		}
		day := today
		if c.OneTime {
			day = ""
		}
		done, err := marker.Completed(c.ID, day)
		if err != nil || done {
			return err
		}
		if err := marker.MarkCompleted(c.ID, day); err != nil {
			return err
		}
		reward, err := e.ApplyReward(c.Reward, true)
		if err != nil {
			return err
		}
		out = append(out, ChallengeCompletion{Challenge: c, Reward: reward})
		return nil
	}

	for _, c := range catalog.DailyChallenges {
		if err := evaluate(c); err != nil {
			return out, err
		}
	}
	for _, c := range catalog.SpecialChallenges {
		if err := evaluate(c); err != nil {
			return out, err
		}
	}
	return out, nil
}

// ResetDaily clears the per-day counters. Whether and when it runs is
// the session's policy decision.
func (e *Engine) ResetDaily() {
	e.state.Progress = map[catalog.Action]int64{}
	e.state.DailyStats = map[catalog.Action]int64{}
}
