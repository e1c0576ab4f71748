// Package successor decides which tab should gain focus after the active tab
// closes. The decider is a pure function over a snapshot of the survivors.
package successor

import "github.com/example/tabmagnet/internal/core/tabs"

// SuccessorInput is the snapshot of a window right after a tab was removed.
type SuccessorInput struct {
	Remaining       []tabs.TabRecord // survivors, any order
	ClosedIndex     int              // former index of the removed tab
	ClosedWasActive bool
	ClosedOpenerID  tabs.TabID
}

// DecideSuccessor returns the tab to activate, or ok=false when the host
// default should stand.
//
// Survivors have already been renumbered by the host, so the former right
// neighbour of the closed tab now sits at ClosedIndex.
func DecideSuccessor(input SuccessorInput, policy tabs.CloseBehaviorPolicy) (tabs.TabRecord, bool) {
	if !input.ClosedWasActive {
		return tabs.TabRecord{}, false
	}
	if policy != tabs.CloseLeft && policy != tabs.CloseSmart {
		return tabs.TabRecord{}, false
	}
	if len(input.Remaining) == 0 {
		return tabs.TabRecord{}, false
	}

	remaining := tabs.SortByIndex(input.Remaining)

	var target tabs.TabRecord
	switch policy {
	case tabs.CloseLeft:
		if left, ok := leftNeighbour(remaining, input.ClosedIndex); ok {
			target = left
		} else {
			target = remaining[0]
		}
	case tabs.CloseSmart:
		if opener, ok := tabs.FindByID(remaining, input.ClosedOpenerID); ok {
			target = opener
		} else if left, ok := leftNeighbour(remaining, input.ClosedIndex); ok {
			target = left
		} else if right, ok := rightNeighbour(remaining, input.ClosedIndex); ok {
			target = right
		} else {
			target = remaining[len(remaining)-1]
		}
	}

	if target.Active {
		return tabs.TabRecord{}, false
	}
	return target, true
}

// leftNeighbour returns the survivor with the greatest index below closedIndex.
// remaining must be sorted.
func leftNeighbour(remaining []tabs.TabRecord, closedIndex int) (tabs.TabRecord, bool) {
	for i := len(remaining) - 1; i >= 0; i-- {
		if remaining[i].Index < closedIndex {
			return remaining[i], true
		}
	}
	return tabs.TabRecord{}, false
}

// rightNeighbour returns the survivor with the smallest index at or above closedIndex.
func rightNeighbour(remaining []tabs.TabRecord, closedIndex int) (tabs.TabRecord, bool) {
	for _, r := range remaining {
		if r.Index >= closedIndex {
			return r, true
		}
	}
	return tabs.TabRecord{}, false
}
