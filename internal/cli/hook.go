package cli

import (
	"context"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/tabmagnet/internal/adapters/cli"
	"github.com/example/tabmagnet/internal/core/tabs"
	"github.com/example/tabmagnet/internal/logx"
	"github.com/example/tabmagnet/internal/ports/primary"
	"github.com/example/tabmagnet/internal/wire"
)

// arrangerFunc resolves the arranger lazily so hook commands can fail open
// on configuration errors.
type arrangerFunc func() (primary.ArrangerService, error)

// HookCmd returns the hook command - parent for host lifecycle handlers
func HookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook <event>",
		Short: "Handle host tab lifecycle events",
		Long: `Process tab lifecycle events reported by the host.

These commands are installed as tmux hooks by 'tabmagnet tmux install'.
They never fail: errors are logged and the command exits 0.

Available events:
  created    - a tab was opened
  removed    - a tab was closed
  activated  - focus moved to a tab
  reconcile  - compare the window with the stored snapshot

Example:
  tabmagnet hook created --window '$1' --tab @7`,
	}

	cmd.AddCommand(hookCreatedCmd(wire.ArrangerService))
	cmd.AddCommand(hookRemovedCmd(wire.ArrangerService))
	cmd.AddCommand(hookActivatedCmd(wire.ArrangerService))
	cmd.AddCommand(hookReconcileCmd(wire.ArrangerService))

	return cmd
}

func hookCreatedCmd(arranger arrangerFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "created",
		Short: "Place a new tab according to the position policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			windowID, tabID := hookFlags(cmd)
			return runHookCreated(commandContext(cmd), arranger, windowID, tabID)
		},
	}
	addHookFlags(cmd)
	return cmd
}

func hookRemovedCmd(arranger arrangerFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "removed",
		Short: "Pick the next active tab according to the close behavior",
		RunE: func(cmd *cobra.Command, args []string) error {
			windowID, tabID := hookFlags(cmd)
			closing, _ := cmd.Flags().GetBool("closing")
			return runHookRemoved(commandContext(cmd), arranger, windowID, tabID, closing)
		},
	}
	addHookFlags(cmd)
	cmd.Flags().Bool("closing", false, "The tab closed because its window closed")
	return cmd
}

func hookActivatedCmd(arranger arrangerFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activated",
		Short: "Record a focus change",
		RunE: func(cmd *cobra.Command, args []string) error {
			windowID, tabID := hookFlags(cmd)
			return runHookActivated(commandContext(cmd), arranger, windowID, tabID)
		},
	}
	addHookFlags(cmd)
	return cmd
}

func hookReconcileCmd(arranger arrangerFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Handle tabs that closed without a removal event",
		RunE: func(cmd *cobra.Command, args []string) error {
			windowID, _ := cmd.Flags().GetString("window")
			return runHookReconcile(commandContext(cmd), arranger, tabs.WindowID(windowID))
		},
	}
	cmd.Flags().String("window", "", "Window id")
	return cmd
}

func addHookFlags(cmd *cobra.Command) {
	cmd.Flags().String("window", "", "Window id")
	cmd.Flags().String("tab", "", "Tab id")
}

func hookFlags(cmd *cobra.Command) (tabs.WindowID, tabs.TabID) {
	windowID, _ := cmd.Flags().GetString("window")
	tabID, _ := cmd.Flags().GetString("tab")
	return tabs.WindowID(windowID), tabs.TabID(tabID)
}

func runHookCreated(ctx context.Context, arranger arrangerFunc, windowID tabs.WindowID, tabID tabs.TabID) error {
	log := logx.WithWindowTab(ctx, windowID, tabID)
	if tabID == "" {
		log.Warn("hook created without tab id")
		return nil
	}
	service, err := arranger()
	if err != nil {
		log.Warn("hook skipped: services unavailable", "err", err)
		return nil //nolint:nilerr // intentional fail-open design
	}
	result, err := service.TabCreated(ctx, primary.TabCreatedEvent{TabID: tabID, WindowID: windowID})
	if err != nil {
		log.Warn("hook created failed", "err", err)
		return nil //nolint:nilerr // intentional fail-open design
	}
	log.Debug("hook created handled", "result", cliadapter.DescribeResult(result))
	return nil
}

func runHookRemoved(ctx context.Context, arranger arrangerFunc, windowID tabs.WindowID, tabID tabs.TabID, closing bool) error {
	log := logx.WithWindowTab(ctx, windowID, tabID)
	if tabID == "" || windowID == "" {
		log.Warn("hook removed without window or tab id")
		return nil
	}
	service, err := arranger()
	if err != nil {
		log.Warn("hook skipped: services unavailable", "err", err)
		return nil //nolint:nilerr // intentional fail-open design
	}
	result, err := service.TabRemoved(ctx, primary.TabRemovedEvent{TabID: tabID, WindowID: windowID, IsWindowClosing: closing})
	if err != nil {
		log.Warn("hook removed failed", "err", err)
		return nil //nolint:nilerr // intentional fail-open design
	}
	log.Debug("hook removed handled", "result", cliadapter.DescribeResult(result))
	return nil
}

func runHookActivated(ctx context.Context, arranger arrangerFunc, windowID tabs.WindowID, tabID tabs.TabID) error {
	log := logx.WithWindowTab(ctx, windowID, tabID)
	if tabID == "" || windowID == "" {
		log.Warn("hook activated without window or tab id")
		return nil
	}
	service, err := arranger()
	if err != nil {
		log.Warn("hook skipped: services unavailable", "err", err)
		return nil //nolint:nilerr // intentional fail-open design
	}
	if err := service.TabActivated(ctx, primary.TabActivatedEvent{TabID: tabID, WindowID: windowID}); err != nil {
		log.Warn("hook activated failed", "err", err)
	}
	return nil
}

func runHookReconcile(ctx context.Context, arranger arrangerFunc, windowID tabs.WindowID) error {
	log := logx.WithWindow(ctx, windowID)
	if windowID == "" {
		log.Warn("hook reconcile without window id")
		return nil
	}
	service, err := arranger()
	if err != nil {
		log.Warn("hook skipped: services unavailable", "err", err)
		return nil //nolint:nilerr // intentional fail-open design
	}
	result, err := service.Reconcile(ctx, windowID)
	if err != nil {
		log.Warn("hook reconcile failed", "err", err)
		return nil //nolint:nilerr // intentional fail-open design
	}
	for _, r := range result.Results {
		log.Debug("reconciled removal", "result", cliadapter.DescribeResult(r))
	}
	return nil
}
