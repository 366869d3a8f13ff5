// Package reassign applies manual overrides to a single quarter lineup.
//
// Both operations copy their input. Slots never move; only occupants do.
// Neither operation checks role fit or touches fairness accounting.
package reassign

import (
	"fmt"

	"github.com/okian/lineup/internal/domain/model"
)

// ApplySwap puts incoming into the starter slot at slotIndex. The displaced
// occupant joins the substitutes and incoming leaves them. If incoming
// already starts in another slot, the two occupants trade places instead.
func ApplySwap(l model.QuarterLineup, slotIndex int, incoming string) (model.QuarterLineup, error) {
	if slotIndex < 0 || slotIndex >= len(l.Starters) {
		return l, fmt.Errorf("%w: %d", ErrSlotOutOfRange, slotIndex)
	}
	if incoming == "" {
		return l, fmt.Errorf("%w: empty id", ErrUnknownPerson)
	}

	out := l.Clone()
	current := out.Starters[slotIndex].PersonID
	if current == incoming {
		return out, nil
	}

	if other := out.StarterIndex(incoming); other >= 0 {
		out.Starters[other].PersonID = current
		out.Starters[slotIndex].PersonID = incoming
		return out, nil
	}

	sub := out.SubIndex(incoming)
	if sub < 0 {
		return l, fmt.Errorf("%w: %s", ErrUnknownPerson, incoming)
	}
	out.Subs = append(out.Subs[:sub], out.Subs[sub+1:]...)
	out.Starters[slotIndex].PersonID = incoming
	if current != "" {
		out.Subs = append(out.Subs, current)
	}
	return out, nil
}

// SwapSlots exchanges the occupants of two starter slots. Substitutes are
// unchanged.
func SwapSlots(l model.QuarterLineup, a, b int) (model.QuarterLineup, error) {
	for _, i := range []int{a, b} {
		if i < 0 || i >= len(l.Starters) {
			return l, fmt.Errorf("%w: %d", ErrSlotOutOfRange, i)
		}
	}
	out := l.Clone()
	out.Starters[a].PersonID, out.Starters[b].PersonID = out.Starters[b].PersonID, out.Starters[a].PersonID
	return out, nil
}
