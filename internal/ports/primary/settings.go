package primary

import (
	"context"

	"github.com/example/tabmagnet/internal/core/tabs"
)

// SettingsService defines the primary port for user preferences.
type SettingsService interface {
	// GetSettings returns the stored settings with defaults applied.
	GetSettings(ctx context.Context) (tabs.Settings, error)

	// UpdateSettings validates and stores the provided fields.
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (tabs.Settings, error)

	// ResolveLanguage returns the interface language for a UI locale.
	ResolveLanguage(ctx context.Context, uiLocale string) (*LanguageResolution, error)

	// ResetSettings removes every stored preference.
	ResetSettings(ctx context.Context) error
}

// UpdateSettingsRequest carries optional new values. Nil fields are left untouched.
type UpdateSettingsRequest struct {
	Position      *string
	CloseBehavior *string
	Language      *string
}

// LanguageResolution reports the chosen language and where it came from.
type LanguageResolution struct {
	Language string
	Stored   bool // taken from the settings store
	Saved    bool // persisted by this call
}
