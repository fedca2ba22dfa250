package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition is an unlock requirement: perform Action at least Count times.
type Condition struct {
	Action Action
	Count  int64
}

func (c Condition) String() string {
	return fmt.Sprintf("%s_%d", c.Action, c.Count)
}

// ParseCondition parses the wire form "pet_10". The action name may itself
// contain underscores, so the split is on the last one.
func ParseCondition(s string) (Condition, error) {
	idx := strings.LastIndex(s, "_")
	if idx <= 0 || idx == len(s)-1 {
		return Condition{}, fmt.Errorf("malformed unlock condition %q", s)
	}
	count, err := strconv.ParseInt(s[idx+1:], 10, 64)
	if err != nil || count <= 0 {
		return Condition{}, fmt.Errorf("malformed unlock threshold in %q", s)
	}
	action := Action(s[:idx])
	switch action {
	case ActionPet, ActionGreet, ActionFlip, ActionSlots, ActionCollection, ActionSocial:
	default:
		return Condition{}, fmt.Errorf("unknown action in unlock condition %q", s)
	}
	return Condition{Action: action, Count: count}, nil
}
