package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/tabmagnet/internal/ports/primary"
	"github.com/example/tabmagnet/internal/wire"
)

// TabsCmd returns the tabs command
func TabsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tabs",
		Short: "List the tabs of a window",
		Long: `List a window's tabs left to right with their openers.

Examples:
  tabmagnet tabs --window '$1'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			windowID, err := requiredWindow(cmd)
			if err != nil {
				return err
			}
			adapter, err := wire.TabsAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.List(commandContext(cmd), windowID)
			return err
		},
	}
	cmd.Flags().String("window", "", "Window id (required)")
	return cmd
}

// NewTabEndCmd returns the new-tab-end command
func NewTabEndCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new-tab-end",
		Short: "Open a new tab at the end of a window",
		Long: `Open a new tab and place it last, regardless of the position policy.

Bound to a key by 'tabmagnet tmux install'.

Examples:
  tabmagnet new-tab-end --window '$1'
  tabmagnet new-tab-end --window '$1' --url ~/src`,
		RunE: func(cmd *cobra.Command, args []string) error {
			windowID, err := requiredWindow(cmd)
			if err != nil {
				return err
			}
			url, _ := cmd.Flags().GetString("url")
			adapter, err := wire.TabsAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.OpenAtEnd(commandContext(cmd), primary.OpenTabAtEndRequest{
				WindowID: windowID,
				URL:      url,
			})
			return err
		},
	}
	cmd.Flags().String("window", "", "Window id (required)")
	cmd.Flags().String("url", "", "Address of the new tab (start directory for tmux)")
	return cmd
}
