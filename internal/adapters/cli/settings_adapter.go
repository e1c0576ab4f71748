// Package cli contains output adapters that translate CLI operations into
// primary port calls and render the results.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/example/tabmagnet/internal/core/tabs"
	"github.com/example/tabmagnet/internal/ports/primary"
)

// SettingsAdapter is a thin adapter that translates CLI operations to SettingsService calls.
type SettingsAdapter struct {
	service primary.SettingsService
	out     io.Writer
}

// NewSettingsAdapter creates a new SettingsAdapter with the given service.
func NewSettingsAdapter(service primary.SettingsService, out io.Writer) *SettingsAdapter {
	return &SettingsAdapter{
		service: service,
		out:     out,
	}
}

// settingsDocument uses the key names of the settings store.
type settingsDocument struct {
	Position         string `yaml:"position"`
	CloseTabBehavior string `yaml:"closeTabBehavior"`
	Language         string `yaml:"language"`
}

// Show displays the effective settings, as YAML when asYAML is set.
func (a *SettingsAdapter) Show(ctx context.Context, asYAML bool) (tabs.Settings, error) {
	settings, err := a.service.GetSettings(ctx)
	if err != nil {
		return tabs.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	if asYAML {
		data, err := yaml.Marshal(settingsDocument{
			Position:         string(settings.Position),
			CloseTabBehavior: string(settings.CloseBehavior),
			Language:         settings.Language,
		})
		if err != nil {
			return tabs.Settings{}, err
		}
		_, err = a.out.Write(data)
		return settings, err
	}

	fmt.Fprintf(a.out, "Position:       %s\n", settings.Position)
	fmt.Fprintf(a.out, "Close behavior: %s\n", settings.CloseBehavior)
	fmt.Fprintf(a.out, "Language:       %s\n", settings.Language)
	return settings, nil
}

// Set stores the provided values and prints the result.
func (a *SettingsAdapter) Set(ctx context.Context, req primary.UpdateSettingsRequest) (tabs.Settings, error) {
	settings, err := a.service.UpdateSettings(ctx, req)
	if err != nil {
		return tabs.Settings{}, err
	}

	fmt.Fprintf(a.out, "%s Settings saved\n", color.New(color.FgGreen).Sprint("✓"))
	fmt.Fprintf(a.out, "  position=%s closeTabBehavior=%s language=%s\n",
		settings.Position, settings.CloseBehavior, settings.Language)
	return settings, nil
}

// Reset removes stored preferences.
func (a *SettingsAdapter) Reset(ctx context.Context) error {
	if err := a.service.ResetSettings(ctx); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	defaults := tabs.DefaultSettings()
	fmt.Fprintf(a.out, "%s Settings reset to defaults (position=%s, closeTabBehavior=%s)\n",
		color.New(color.FgGreen).Sprint("✓"), defaults.Position, defaults.CloseBehavior)
	return nil
}

// Language resolves and prints the interface language for a UI locale.
func (a *SettingsAdapter) Language(ctx context.Context, uiLocale string) (*primary.LanguageResolution, error) {
	resolution, err := a.service.ResolveLanguage(ctx, uiLocale)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve language: %w", err)
	}
	source := "detected"
	if resolution.Stored {
		source = "stored"
	}
	fmt.Fprintf(a.out, "%s (%s)\n", resolution.Language, source)
	return resolution, nil
}
