// Package effects defines effect types as data structures representing tab mutations.
// This is the foundation of the Functional Core / Imperative Shell pattern.
// Effects are pure data - they describe what should happen, not how.
package effects

import "github.com/example/tabmagnet/internal/core/tabs"

// Effect is the base interface for all effects.
// Effects represent I/O operations as data that can be interpreted by the shell.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// LogEffect records why a plan mutates the tab strip.
type LogEffect struct {
	Level   string
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// MoveEffect moves a tab to an absolute index within its window.
type MoveEffect struct {
	TabID    tabs.TabID
	WindowID tabs.WindowID
	Index    int
}

func (e MoveEffect) EffectType() string { return "move" }

// MoveToEndEffect moves a tab to the last position of its window.
// It is kept separate from MoveEffect because "end" is host relative.
type MoveToEndEffect struct {
	TabID    tabs.TabID
	WindowID tabs.WindowID
}

func (e MoveToEndEffect) EffectType() string { return "move_to_end" }

// ActivateEffect gives focus to a tab.
type ActivateEffect struct {
	TabID    tabs.TabID
	WindowID tabs.WindowID
}

func (e ActivateEffect) EffectType() string { return "activate" }
