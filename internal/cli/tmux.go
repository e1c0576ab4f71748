package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	tmuxadapter "github.com/example/tabmagnet/internal/adapters/tmux"
	"github.com/example/tabmagnet/internal/ports/secondary"
	"github.com/example/tabmagnet/internal/wire"
)

// TmuxCmd returns the tmux command
func TmuxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tmux",
		Short: "Wire tabmagnet into tmux",
		Long: `Install or remove the tmux hooks that report window lifecycle events
to tabmagnet, plus the key binding for new-tab-end.`,
	}

	cmd.AddCommand(tmuxInstallCmd())
	cmd.AddCommand(tmuxUninstallCmd())

	return cmd
}

func tmuxInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install tmux hooks and key bindings",
		Long: `Register global tmux hooks that call this binary.

Hooks:
  after-new-window        -> tabmagnet hook created
  window-unlinked         -> tabmagnet hook reconcile
  session-window-changed  -> tabmagnet hook activated

The key binding (tmux.key_binding, default prefix + T) runs new-tab-end.
Safe to run repeatedly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := wire.Config()
			if err != nil {
				return err
			}
			installer, err := wire.HookInstaller()
			if err != nil {
				return err
			}
			executable, err := os.Executable()
			if err != nil {
				return fmt.Errorf("failed to locate tabmagnet binary: %w", err)
			}
			return runTmuxInstall(commandContext(cmd), cmd, installer, executable, cfg.Tmux.KeyBinding)
		},
	}
}

func tmuxUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove tmux hooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			installer, err := wire.HookInstaller()
			if err != nil {
				return err
			}
			executable, err := os.Executable()
			if err != nil {
				return fmt.Errorf("failed to locate tabmagnet binary: %w", err)
			}
			hooks := tmuxadapter.DefaultHooks(executable)
			if err := installer.UninstallHooks(commandContext(cmd), hooks); err != nil {
				return fmt.Errorf("failed to remove hooks: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %d hooks\n", color.New(color.FgGreen).Sprint("✓"), len(hooks))
			return nil
		},
	}
}

func runTmuxInstall(ctx context.Context, cmd *cobra.Command, installer secondary.HookInstaller, executable, key string) error {
	hooks := tmuxadapter.DefaultHooks(executable)
	if err := installer.InstallHooks(ctx, hooks); err != nil {
		return fmt.Errorf("failed to install hooks: %w", err)
	}
	bindings := tmuxadapter.DefaultKeyBindings(executable, key)
	if err := installer.InstallKeyBindings(ctx, bindings); err != nil {
		return fmt.Errorf("failed to install key bindings: %w", err)
	}

	out := cmd.OutOrStdout()
	check := color.New(color.FgGreen).Sprint("✓")
	for _, h := range hooks {
		fmt.Fprintf(out, "%s hook %s\n", check, h.Name)
	}
	for _, b := range bindings {
		fmt.Fprintf(out, "%s key prefix+%s -> new-tab-end\n", check, b.Key)
	}
	return nil
}
