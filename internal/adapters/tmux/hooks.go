package tmux

import (
	"fmt"

	"github.com/example/tabmagnet/internal/ports/secondary"
)

// Hook names installed by tabmagnet.
const (
	HookNewWindow     = "after-new-window"
	HookWindowUnlink  = "window-unlinked"
	HookWindowChanged = "session-window-changed"
)

// DefaultHooks returns the hooks that feed tmux lifecycle events to the
// tabmagnet binary at executable. tmux has no close hook carrying the closed
// window id, so removals go through reconcile.
func DefaultHooks(executable string) []secondary.Hook {
	return []secondary.Hook{
		{Name: HookNewWindow, Command: runShell(executable, "hook created --window '#{session_id}' --tab '#{window_id}'")},
		{Name: HookWindowUnlink, Command: runShell(executable, "hook reconcile --window '#{session_id}'")},
		{Name: HookWindowChanged, Command: runShell(executable, "hook activated --window '#{session_id}' --tab '#{window_id}'")},
	}
}

// DefaultKeyBindings binds key to the open-at-end command.
func DefaultKeyBindings(executable, key string) []secondary.KeyBinding {
	if key == "" {
		return nil
	}
	return []secondary.KeyBinding{
		{Key: key, Command: fmt.Sprintf("'%s' new-tab-end --window '#{session_id}'", executable)},
	}
}

// Single quotes keep the shell from expanding session ids such as $1.
func runShell(executable, args string) string {
	return fmt.Sprintf(`run-shell -b "'%s' %s"`, executable, args)
}
