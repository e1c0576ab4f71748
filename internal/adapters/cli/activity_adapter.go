package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/tabmagnet/internal/ports/primary"
)

// ActivityAdapter renders the mutation activity log.
type ActivityAdapter struct {
	service primary.ActivityService
	out     io.Writer
}

// NewActivityAdapter creates a new ActivityAdapter with the given service.
func NewActivityAdapter(service primary.ActivityService, out io.Writer) *ActivityAdapter {
	return &ActivityAdapter{
		service: service,
		out:     out,
	}
}

// List prints recent activity, newest first.
func (a *ActivityAdapter) List(ctx context.Context, filters primary.ActivityFilters) ([]*primary.ActivityEntry, error) {
	entries, err := a.service.ListActivity(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No activity recorded.")
		return entries, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TIME\tWINDOW\tTAB\tACTION\tDETAIL")
	fmt.Fprintln(w, "----\t------\t---\t------\t------")

	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt,
			dash(e.WindowID),
			dash(e.TabID),
			e.Action,
			dash(e.Detail),
		)
	}

	w.Flush()
	return entries, nil
}

// Prune deletes old entries and reports how many were removed.
func (a *ActivityAdapter) Prune(ctx context.Context, keep int) (int, error) {
	removed, err := a.service.PruneActivity(ctx, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune activity: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Pruned %d entries (kept newest %d)\n", removed, keep)
	return removed, nil
}
