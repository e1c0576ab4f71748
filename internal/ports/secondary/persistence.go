// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"

	"github.com/example/tabmagnet/internal/core/tabs"
)

// Settings keys, shared with the store layout of the options page.
const (
	SettingPosition      = "position"
	SettingCloseBehavior = "closeTabBehavior"
	SettingLanguage      = "language"
)

// SettingsRepository defines the secondary port for the settings key-value store.
type SettingsRepository interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a value, replacing any previous one.
	Set(ctx context.Context, key, value string) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// All returns every stored key.
	All(ctx context.Context) (map[string]string, error)
}

// TabStateRepository defines the secondary port for the event adapter's view
// of each window between events.
type TabStateRepository interface {
	// GetFocus returns the last snapshot of a window, or nil when none exists.
	GetFocus(ctx context.Context, windowID tabs.WindowID) (*WindowFocusRecord, error)

	// SaveFocus replaces the snapshot of a window.
	SaveFocus(ctx context.Context, record *WindowFocusRecord) error

	// DeleteFocus forgets a window.
	DeleteFocus(ctx context.Context, windowID tabs.WindowID) error

	// MarkExplicit flags a tab as placed by a command rather than by policy.
	MarkExplicit(ctx context.Context, tabID tabs.TabID) error

	// IsExplicit reports whether a tab was flagged by MarkExplicit.
	IsExplicit(ctx context.Context, tabID tabs.TabID) (bool, error)

	// ClearExplicit removes the flag.
	ClearExplicit(ctx context.Context, tabID tabs.TabID) error
}

// WindowFocusRecord is the last observed state of a window.
type WindowFocusRecord struct {
	WindowID            tabs.WindowID
	ActiveTabID         tabs.TabID
	PreviousActiveTabID tabs.TabID
	Tabs                []tabs.TabRecord
	UpdatedAt           string
}
