package tabs

import "strings"

// DefaultLanguages is the set of UI languages offered when config does not override it.
var DefaultLanguages = []string{"en", "zh-CN", "zh-TW", "ja", "ko", "de", "fr", "es"}

// NormalizeLocale turns an environment style locale ("de_DE.UTF-8", "C")
// into a BCP 47 like tag ("de-DE"). Empty and POSIX locales yield "".
func NormalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(locale, "_", "-")
}

// ResolveLanguage picks the UI language.
// A stored value always wins. Otherwise the full UI locale is tried, then its
// base language, and finally DefaultLanguage. The returned bool is true when
// the value came from storage.
func ResolveLanguage(stored, uiLocale string, supported []string) (string, bool) {
	if stored = strings.TrimSpace(stored); stored != "" {
		return stored, true
	}
	locale := NormalizeLocale(uiLocale)
	if locale == "" {
		return DefaultLanguage, false
	}
	if match, ok := matchLanguage(locale, supported); ok {
		return match, false
	}
	base, _, _ := strings.Cut(locale, "-")
	if match, ok := matchLanguage(base, supported); ok {
		return match, false
	}
	return DefaultLanguage, false
}

// SupportsLanguage reports whether lang is in the supported list.
func SupportsLanguage(lang string, supported []string) bool {
	_, ok := matchLanguage(lang, supported)
	return ok
}

func matchLanguage(lang string, supported []string) (string, bool) {
	for _, candidate := range supported {
		if strings.EqualFold(candidate, lang) {
			return candidate, true
		}
	}
	return "", false
}
