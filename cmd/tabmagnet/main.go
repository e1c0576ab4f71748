package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"pkt.systems/psi"
	"pkt.systems/pslog"

	"github.com/example/tabmagnet/internal/cli"
	"github.com/example/tabmagnet/internal/version"
	"github.com/example/tabmagnet/internal/wire"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("tabmagnet command failed")
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:     "tabmagnet",
		Short:   "TabMagnet - keeps new tabs next to the tab that opened them",
		Version: version.String(),
		Long: `TabMagnet places newly opened tabs relative to the tab that opened them
and chooses which tab gains focus when the active tab closes.

It drives tmux windows through hooks ('tabmagnet tmux install') and can
run its scenarios against a simulated browser ('tabmagnet simulate').`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			wire.SetConfigPath(configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $TABMAGNET_CONFIG or ~/.config/tabmagnet/config.yaml)")

	root.AddCommand(cli.OptionsCmd())
	root.AddCommand(cli.HookCmd())
	root.AddCommand(cli.NewTabEndCmd())
	root.AddCommand(cli.TabsCmd())
	root.AddCommand(cli.LogCmd())
	root.AddCommand(cli.TmuxCmd())

	// Developer tools
	root.AddCommand(cli.SimulateCmd())
	root.AddCommand(cli.ConfigCmd())
	root.AddCommand(cli.VersionCmd())

	return root
}
