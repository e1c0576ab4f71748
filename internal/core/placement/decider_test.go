package placement

import (
	"testing"

	"github.com/example/tabmagnet/internal/core/tabs"
)

func tab(id string, window string, index int) *tabs.TabRecord {
	return &tabs.TabRecord{ID: tabs.TabID(id), WindowID: tabs.WindowID(window), Index: index}
}

func TestDecidePlacement(t *testing.T) {
	tests := []struct {
		name      string
		newTab    tabs.TabRecord
		opener    *tabs.TabRecord
		active    *tabs.TabRecord
		policy    tabs.PositionPolicy
		wantIndex int
		wantMove  bool
	}{
		{
			name:      "right of opener",
			newTab:    *tab("new", "w1", 5),
			opener:    tab("op", "w1", 1),
			policy:    tabs.PositionRight,
			wantIndex: 2,
			wantMove:  true,
		},
		{
			name:      "left takes the opener index",
			newTab:    *tab("new", "w1", 3),
			opener:    tab("op", "w1", 1),
			policy:    tabs.PositionLeft,
			wantIndex: 1,
			wantMove:  true,
		},
		{
			name:      "start moves to zero",
			newTab:    *tab("new", "w1", 3),
			opener:    tab("op", "w1", 2),
			policy:    tabs.PositionStart,
			wantIndex: 0,
			wantMove:  true,
		},
		{
			name:     "end never moves through index arithmetic",
			newTab:   *tab("new", "w1", 3),
			opener:   tab("op", "w1", 1),
			active:   tab("act", "w1", 0),
			policy:   tabs.PositionEnd,
			wantMove: false,
		},
		{
			name:      "cross window opener is ignored",
			newTab:    *tab("new", "w1", 6),
			opener:    tab("op", "w2", 0),
			active:    tab("act", "w1", 3),
			policy:    tabs.PositionRight,
			wantIndex: 4,
			wantMove:  true,
		},
		{
			name:      "missing opener falls back to active tab",
			newTab:    *tab("new", "w1", 6),
			active:    tab("act", "w1", 2),
			policy:    tabs.PositionRight,
			wantIndex: 3,
			wantMove:  true,
		},
		{
			name:     "no source resolves",
			newTab:   *tab("new", "w1", 6),
			policy:   tabs.PositionRight,
			wantMove: false,
		},
		{
			name:     "fallback in another window does not resolve",
			newTab:   *tab("new", "w1", 6),
			active:   tab("act", "w2", 2),
			policy:   tabs.PositionRight,
			wantMove: false,
		},
		{
			name:     "active fallback that is the new tab itself",
			newTab:   *tab("new", "w1", 6),
			active:   tab("new", "w1", 6),
			policy:   tabs.PositionStart,
			wantMove: false,
		},
		{
			name:     "already right of opener",
			newTab:   *tab("new", "w1", 2),
			opener:   tab("op", "w1", 1),
			policy:   tabs.PositionRight,
			wantMove: false,
		},
		{
			name:     "already at start",
			newTab:   *tab("new", "w1", 0),
			active:   tab("act", "w1", 1),
			policy:   tabs.PositionStart,
			wantMove: false,
		},
		{
			name:     "unknown policy",
			newTab:   *tab("new", "w1", 4),
			opener:   tab("op", "w1", 1),
			policy:   tabs.PositionPolicy("middle"),
			wantMove: false,
		},
		{
			name:     "new tab without window",
			newTab:   *tab("new", "", 4),
			opener:   tab("op", "", 1),
			policy:   tabs.PositionRight,
			wantMove: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotIndex, gotMove := DecidePlacement(tt.newTab, tt.opener, tt.active, tt.policy)
			if gotMove != tt.wantMove {
				t.Fatalf("move = %v, want %v", gotMove, tt.wantMove)
			}
			if tt.wantMove && gotIndex != tt.wantIndex {
				t.Errorf("index = %d, want %d", gotIndex, tt.wantIndex)
			}
		})
	}
}

func TestDecidePlacement_Idempotent(t *testing.T) {
	policies := []tabs.PositionPolicy{tabs.PositionRight, tabs.PositionLeft, tabs.PositionStart}

	for _, policy := range policies {
		for s := 0; s < 5; s++ {
			opener := tab("op", "w1", s)
			probe := *tab("new", "w1", 9)
			target, move := DecidePlacement(probe, opener, nil, policy)
			if !move {
				t.Fatalf("%s/%d: expected a move from index 9", policy, s)
			}

			settled := *tab("new", "w1", target)
			if _, again := DecidePlacement(settled, opener, nil, policy); again {
				t.Errorf("%s/%d: tab already at %d should not move again", policy, s, target)
			}
		}
	}
}

func TestDecidePlacement_EndAlwaysNoMove(t *testing.T) {
	for i := 0; i < 4; i++ {
		_, move := DecidePlacement(*tab("new", "w1", i), tab("op", "w1", 0), tab("act", "w1", 1), tabs.PositionEnd)
		if move {
			t.Errorf("index %d: end policy must not produce a move", i)
		}
	}
}
