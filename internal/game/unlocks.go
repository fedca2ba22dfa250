package game

import "github.com/monad-dog/dogpark/internal/catalog"

// EvaluateUnlocks walks the breed catalog and adds every breed whose
// unlock condition is met by historical plus current-session counters.
// Re-evaluation with unchanged stats is a no-op; a breed is never added
// twice. New unlocks also count toward the collection challenge.
func (e *Engine) EvaluateUnlocks(historical map[catalog.Action]int64) []catalog.Breed {
	var unlocked []catalog.Breed
	for _, b := range catalog.Breeds {
		if e.state.Owns(b.ID) {
			continue
		}
		total := historical[b.Unlock.Action] + e.state.Progress[b.Unlock.Action]
		if total >= b.Unlock.Count {
			e.state.OwnedDogs = append(e.state.OwnedDogs, b.ID)
			unlocked = append(unlocked, b)
		}
	}
	if len(unlocked) > 0 {
		e.RecordAction(catalog.ActionCollection, int64(len(unlocked)))
	}
	return unlocked
}
