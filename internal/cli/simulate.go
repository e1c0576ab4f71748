package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/tabmagnet/internal/config"
	"github.com/example/tabmagnet/internal/harness"
	"github.com/example/tabmagnet/internal/wire"
)

// SimulateCmd returns the simulate command
func SimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [scenario...]",
		Short: "Run tab scenarios against a simulated browser",
		Long: `Run the built-in scenarios against an in-memory tab host and report
which pass. Each scenario starts from a fresh window and database; the
real settings store is not touched.

Examples:
  tabmagnet simulate
  tabmagnet simulate close-smart new-tab-at-end
  tabmagnet simulate --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, err := selectScenarios(harness.Scenarios(), args)
			if err != nil {
				return err
			}
			if list, _ := cmd.Flags().GetBool("list"); list {
				for _, sc := range scenarios {
					fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s\n", sc.Name, sc.Description)
				}
				return nil
			}

			cfg, err := config.Load(wire.ConfigPath())
			if err != nil {
				return err
			}
			results := harness.Run(commandContext(cmd), cfg, scenarios)
			printResults(cmd.OutOrStdout(), results)
			if failed := len(results) - harness.Passed(results); failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().Bool("list", false, "List scenarios without running them")
	return cmd
}

// selectScenarios keeps the named scenarios in the order given. No names
// selects all.
func selectScenarios(all []harness.Scenario, names []string) ([]harness.Scenario, error) {
	if len(names) == 0 {
		return all, nil
	}
	byName := make(map[string]harness.Scenario, len(all))
	for _, sc := range all {
		byName[sc.Name] = sc
	}
	selected := make([]harness.Scenario, 0, len(names))
	for _, name := range names {
		sc, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q", name)
		}
		selected = append(selected, sc)
	}
	return selected, nil
}

func printResults(out io.Writer, results []harness.Result) {
	pass := color.New(color.FgGreen).Sprint("PASS")
	fail := color.New(color.FgRed).Sprint("FAIL")
	for _, r := range results {
		status := pass
		if !r.Passed {
			status = fail
		}
		fmt.Fprintf(out, "%s  %-22s %s\n", status, r.Name, color.New(color.Faint).Sprint(r.Duration.Round(time.Microsecond)))
		if r.Err != nil {
			fmt.Fprintf(out, "      %s\n", strings.TrimSpace(r.Err.Error()))
		}
	}
	fmt.Fprintf(out, "\n%d/%d passed\n", harness.Passed(results), len(results))
}
