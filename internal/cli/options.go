package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/tabmagnet/internal/ports/primary"
	"github.com/example/tabmagnet/internal/wire"
)

// OptionsCmd returns the options command
func OptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Show and change tab placement preferences",
		Long: `Show and change the position and close behavior policies.

Position policies:        right (default), left, start, end
Close behavior policies:  left (default), right, smart

Examples:
  tabmagnet options show
  tabmagnet options set --position end --close-behavior smart
  tabmagnet options reset`,
	}

	cmd.AddCommand(optionsShowCmd())
	cmd.AddCommand(optionsSetCmd())
	cmd.AddCommand(optionsResetCmd())
	cmd.AddCommand(optionsLanguageCmd())

	return cmd
}

func optionsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			asYAML, _ := cmd.Flags().GetBool("yaml")
			adapter, err := wire.SettingsAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.Show(commandContext(cmd), asYAML)
			return err
		},
	}
	cmd.Flags().Bool("yaml", false, "Print as YAML")
	return cmd
}

func optionsSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := settingsRequestFromFlags(cmd)
			if req.Position == nil && req.CloseBehavior == nil && req.Language == nil {
				return fmt.Errorf("nothing to set: pass --position, --close-behavior or --language")
			}
			adapter, err := wire.SettingsAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.Set(commandContext(cmd), req)
			return err
		},
	}
	cmd.Flags().String("position", "", "Where new tabs go: right, left, start, end")
	cmd.Flags().String("close-behavior", "", "Which tab gains focus on close: left, right, smart")
	cmd.Flags().String("language", "", "Interface language")
	return cmd
}

// settingsRequestFromFlags sets only the fields whose flags were given.
func settingsRequestFromFlags(cmd *cobra.Command) primary.UpdateSettingsRequest {
	var req primary.UpdateSettingsRequest
	if cmd.Flags().Changed("position") {
		v, _ := cmd.Flags().GetString("position")
		req.Position = &v
	}
	if cmd.Flags().Changed("close-behavior") {
		v, _ := cmd.Flags().GetString("close-behavior")
		req.CloseBehavior = &v
	}
	if cmd.Flags().Changed("language") {
		v, _ := cmd.Flags().GetString("language")
		req.Language = &v
	}
	return req
}

func optionsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.SettingsAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Reset(commandContext(cmd))
		},
	}
}

func optionsLanguageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "language",
		Short: "Resolve the interface language for a UI locale",
		Long: `Resolve the interface language. A stored choice wins; otherwise the
locale (or its base language) is used when supported and saved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			locale, _ := cmd.Flags().GetString("locale")
			adapter, err := wire.SettingsAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			res, err := adapter.Language(commandContext(cmd), locale)
			if err != nil {
				return err
			}
			if res.Saved {
				fmt.Fprintln(cmd.ErrOrStderr(), color.New(color.Faint).Sprint("saved as preference"))
			}
			return nil
		},
	}
	cmd.Flags().String("locale", "", "UI locale, e.g. de-AT")
	return cmd
}
