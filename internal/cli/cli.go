// Package cli contains the cobra commands of the tabmagnet binary.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/tabmagnet/internal/core/tabs"
)

// commandContext returns the context set by ExecuteContext, or Background
// when a command runs outside of it (tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// requiredWindow reads the --window flag.
func requiredWindow(cmd *cobra.Command) (tabs.WindowID, error) {
	windowID, _ := cmd.Flags().GetString("window")
	if windowID == "" {
		return "", fmt.Errorf("--window is required")
	}
	return tabs.WindowID(windowID), nil
}
