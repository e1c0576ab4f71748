package secondary

import "context"

// Hook defines a tmux hook that runs a shell command.
type Hook struct {
	Name    string // e.g., "after-new-window"
	Command string // shell command, may use tmux formats like #{window_id}
}

// KeyBinding defines a tmux key binding.
type KeyBinding struct {
	Key     string // e.g., "T"
	Command string // shell command to run
}

// HookInstaller defines the secondary port for wiring a host's lifecycle
// notifications to the tabmagnet CLI.
type HookInstaller interface {
	// InstallHooks registers global hooks, replacing earlier tabmagnet entries.
	InstallHooks(ctx context.Context, hooks []Hook) error

	// InstallKeyBindings binds keys in the prefix table.
	InstallKeyBindings(ctx context.Context, bindings []KeyBinding) error

	// UninstallHooks removes hooks previously installed.
	UninstallHooks(ctx context.Context, hooks []Hook) error
}
