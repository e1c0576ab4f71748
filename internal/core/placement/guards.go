// Package placement contains the pure logic deciding where a new tab goes.
// Guards are pure functions that evaluate preconditions without side effects.
package placement

import (
	"fmt"
	"strings"

	"github.com/example/tabmagnet/internal/core/tabs"
)

// DefaultNewTabURLs are the pages a host shows for a freshly opened, empty tab.
var DefaultNewTabURLs = []string{
	"chrome://newtab/",
	"edge://newtab/",
	"about:newtab",
	"about:home",
}

var extensionPrefixes = []string{"chrome-extension://", "moz-extension://"}

var systemPrefixes = []string{"chrome://", "edge://", "about:"}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CheckEligibility evaluates whether a tab is a genuinely new, user initiated
// tab that the placement decider may act on.
// Rules:
// - Pinned tabs are never moved
// - Extension pages are skipped
// - System pages other than the new tab page are skipped
// - A tab showing a real URL without an opener is a restored tab
func CheckEligibility(tab tabs.TabRecord, newTabURLs []string) GuardResult {
	if tab.Pinned {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("tab %s is pinned", tab.ID),
		}
	}

	url := strings.TrimSpace(tab.URL)
	if url == "" || isNewTabURL(url, newTabURLs) {
		return GuardResult{Allowed: true}
	}

	if hasAnyPrefix(url, extensionPrefixes) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("tab %s shows an extension page", tab.ID),
		}
	}

	if hasAnyPrefix(url, systemPrefixes) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("tab %s shows a system page", tab.ID),
		}
	}

	if !tab.HasOpener() {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("tab %s looks restored (url without opener)", tab.ID),
		}
	}

	return GuardResult{Allowed: true}
}

func isNewTabURL(url string, newTabURLs []string) bool {
	if len(newTabURLs) == 0 {
		newTabURLs = DefaultNewTabURLs
	}
	for _, candidate := range newTabURLs {
		if url == candidate {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
