package placement

import "github.com/example/tabmagnet/internal/core/tabs"

// DecidePlacement computes the index a new tab should move to.
// The source tab is the opener when it is known and lives in the same
// window, otherwise the tab that was active before the new tab appeared.
// It returns move=false when no source resolves, for the "end" policy
// (callers issue a dedicated move-to-end instead) and when the tab already
// sits at the computed index.
func DecidePlacement(newTab tabs.TabRecord, openerTab, activeTabFallback *tabs.TabRecord, policy tabs.PositionPolicy) (int, bool) {
	if newTab.WindowID == "" || newTab.Index < 0 {
		return 0, false
	}
	source, ok := resolveSource(newTab, openerTab, activeTabFallback)
	if !ok {
		return 0, false
	}

	var target int
	switch policy {
	case tabs.PositionRight:
		target = source.Index + 1
	case tabs.PositionLeft:
		target = source.Index
	case tabs.PositionStart:
		target = 0
	default:
		return 0, false
	}

	if target == newTab.Index {
		return 0, false
	}
	return target, true
}

// resolveSource picks the reference tab for index arithmetic.
func resolveSource(newTab tabs.TabRecord, openerTab, activeTabFallback *tabs.TabRecord) (tabs.TabRecord, bool) {
	if usableSource(newTab, openerTab) {
		return *openerTab, true
	}
	if usableSource(newTab, activeTabFallback) {
		return *activeTabFallback, true
	}
	return tabs.TabRecord{}, false
}

func usableSource(newTab tabs.TabRecord, candidate *tabs.TabRecord) bool {
	if candidate == nil || candidate.ID == "" || candidate.ID == newTab.ID {
		return false
	}
	return candidate.WindowID == newTab.WindowID
}
