package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/tabmagnet/internal/ports/primary"
	"github.com/example/tabmagnet/internal/wire"
)

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the moves and activations tabmagnet applied",
		Long: `Show the activity log, newest first.

Examples:
  tabmagnet log
  tabmagnet log --window '$1' --limit 20
  tabmagnet log prune --keep 100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			windowID, _ := cmd.Flags().GetString("window")
			limit, _ := cmd.Flags().GetInt("limit")
			if limit <= 0 {
				limit = 50
			}
			adapter, err := wire.ActivityAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.List(commandContext(cmd), primary.ActivityFilters{
				WindowID: windowID,
				Limit:    limit,
			})
			return err
		},
	}
	cmd.Flags().String("window", "", "Only entries for this window")
	cmd.Flags().IntP("limit", "n", 50, "Number of entries")

	cmd.AddCommand(logPruneCmd())
	return cmd
}

func logPruneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old activity entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			keep, _ := cmd.Flags().GetInt("keep")
			if !cmd.Flags().Changed("keep") {
				cfg, err := wire.Config()
				if err != nil {
					return err
				}
				keep = cfg.Activity.Keep
			}
			if keep < 0 {
				return fmt.Errorf("--keep must not be negative")
			}
			adapter, err := wire.ActivityAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.Prune(commandContext(cmd), keep)
			return err
		},
	}
	cmd.Flags().Int("keep", 0, "Entries to keep (default from config activity.keep)")
	return cmd
}
