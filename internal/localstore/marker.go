package localstore

import "github.com/monad-dog/dogpark/internal/catalog"

// Marker tracks per-challenge completion for one wallet. The stored
// value is the day the challenge was awarded; a mismatched day reads as
// not completed, so daily resets are implicit. One-time challenges store
// an empty day and stay completed forever.
type Marker struct {
	store   *Store
	address string
}

func NewMarker(store *Store, address string) *Marker {
	return &Marker{store: store, address: address}
}

func (m *Marker) Completed(challengeID, day string) (bool, error) {
	var stored string
	ok, err := m.store.Get(KeyCompleted(challengeID, m.address), &stored)
	if err != nil || !ok {
		return false, err
	}
	if day == "" {
		return true, nil
	}
	return stored == day, nil
}

func (m *Marker) MarkCompleted(challengeID, day string) error {
	return m.store.Set(KeyCompleted(challengeID, m.address), day)
}

// Clear removes every completion marker for the wallet. This is the
// explicit reset path; normal day rollover needs no clearing at all.
func (m *Marker) Clear() error {
	for _, c := range catalog.DailyChallenges {
		if err := m.store.Delete(KeyCompleted(c.ID, m.address)); err != nil {
			return err
		}
	}
	for _, c := range catalog.SpecialChallenges {
		if c.OneTime {
			continue
		}
		if err := m.store.Delete(KeyCompleted(c.ID, m.address)); err != nil {
			return err
		}
	}
	return nil
}
