package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/tabmagnet/internal/core/tabs"
	"github.com/example/tabmagnet/internal/logx"
	"github.com/example/tabmagnet/internal/ports/primary"
	"github.com/example/tabmagnet/internal/ports/secondary"
)

// SettingsServiceImpl implements the SettingsService interface.
type SettingsServiceImpl struct {
	repo      secondary.SettingsRepository
	languages []string
}

// NewSettingsService creates a new SettingsService. An empty language list
// means tabs.DefaultLanguages.
func NewSettingsService(repo secondary.SettingsRepository, languages []string) *SettingsServiceImpl {
	if len(languages) == 0 {
		languages = tabs.DefaultLanguages
	}
	return &SettingsServiceImpl{repo: repo, languages: languages}
}

// GetSettings returns the stored settings. Missing or unknown values fall
// back to their defaults.
func (s *SettingsServiceImpl) GetSettings(ctx context.Context) (tabs.Settings, error) {
	stored, err := s.repo.All(ctx)
	if err != nil {
		return tabs.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	settings := tabs.Settings{
		Position:      tabs.PositionPolicy(stored[secondary.SettingPosition]),
		CloseBehavior: tabs.CloseBehaviorPolicy(stored[secondary.SettingCloseBehavior]),
		Language:      stored[secondary.SettingLanguage],
	}
	return settings.Normalize(), nil
}

// UpdateSettings validates and stores the provided fields.
func (s *SettingsServiceImpl) UpdateSettings(ctx context.Context, req primary.UpdateSettingsRequest) (tabs.Settings, error) {
	updates := make(map[string]string)

	if req.Position != nil {
		position, err := tabs.ParsePositionPolicy(*req.Position)
		if err != nil {
			return tabs.Settings{}, err
		}
		updates[secondary.SettingPosition] = string(position)
	}
	if req.CloseBehavior != nil {
		behavior, err := tabs.ParseCloseBehaviorPolicy(*req.CloseBehavior)
		if err != nil {
			return tabs.Settings{}, err
		}
		updates[secondary.SettingCloseBehavior] = string(behavior)
	}
	if req.Language != nil {
		lang := strings.TrimSpace(*req.Language)
		if !tabs.SupportsLanguage(lang, s.languages) {
			return tabs.Settings{}, fmt.Errorf("unsupported language %q (expected one of %s)", lang, strings.Join(s.languages, ", "))
		}
		resolved, _ := tabs.ResolveLanguage("", lang, s.languages)
		updates[secondary.SettingLanguage] = resolved
	}

	for key, value := range updates {
		if err := s.repo.Set(ctx, key, value); err != nil {
			return tabs.Settings{}, fmt.Errorf("failed to save %s: %w", key, err)
		}
		logx.Ctx(ctx).Debug("setting saved", "key", key, "value", value)
	}
	return s.GetSettings(ctx)
}

// ResolveLanguage returns the interface language: the stored one, else the
// UI locale or its base language when supported, else the default. A
// resolved value is saved when nothing was stored yet.
func (s *SettingsServiceImpl) ResolveLanguage(ctx context.Context, uiLocale string) (*primary.LanguageResolution, error) {
	stored, ok, err := s.repo.Get(ctx, secondary.SettingLanguage)
	if err != nil {
		return nil, fmt.Errorf("failed to read language: %w", err)
	}

	lang, fromStored := tabs.ResolveLanguage(stored, uiLocale, s.languages)
	resolution := &primary.LanguageResolution{Language: lang, Stored: fromStored}
	if ok && strings.TrimSpace(stored) != "" {
		return resolution, nil
	}

	if err := s.repo.Set(ctx, secondary.SettingLanguage, lang); err != nil {
		return nil, fmt.Errorf("failed to save language: %w", err)
	}
	resolution.Saved = true
	return resolution, nil
}

// ResetSettings removes every stored preference.
func (s *SettingsServiceImpl) ResetSettings(ctx context.Context) error {
	for _, key := range []string{secondary.SettingPosition, secondary.SettingCloseBehavior, secondary.SettingLanguage} {
		if err := s.repo.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	return nil
}

// Ensure SettingsServiceImpl implements the interface
var _ primary.SettingsService = (*SettingsServiceImpl)(nil)
