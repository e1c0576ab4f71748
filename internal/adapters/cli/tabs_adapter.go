package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/tabmagnet/internal/core/tabs"
	"github.com/example/tabmagnet/internal/ports/primary"
)

// TabsAdapter renders ArrangerService results.
type TabsAdapter struct {
	service primary.ArrangerService
	out     io.Writer
}

// NewTabsAdapter creates a new TabsAdapter with the given service.
func NewTabsAdapter(service primary.ArrangerService, out io.Writer) *TabsAdapter {
	return &TabsAdapter{
		service: service,
		out:     out,
	}
}

// List prints a window's tab strip.
func (a *TabsAdapter) List(ctx context.Context, windowID tabs.WindowID) ([]tabs.TabRecord, error) {
	records, err := a.service.ListTabs(ctx, windowID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tabs: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintf(a.out, "No tabs in window %s.\n", windowID)
		return records, nil
	}

	WriteTabTable(a.out, records)
	return records, nil
}

// OpenAtEnd runs the end command and prints the placed tab.
func (a *TabsAdapter) OpenAtEnd(ctx context.Context, req primary.OpenTabAtEndRequest) (*primary.OpenTabAtEndResponse, error) {
	resp, err := a.service.OpenTabAtEnd(ctx, req)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "%s Opened %s at index %d\n", color.New(color.FgGreen).Sprint("✓"), resp.Tab.ID, resp.Tab.Index)
	return resp, nil
}

// WriteTabTable prints records as an aligned table.
func WriteTabTable(out io.Writer, records []tabs.TabRecord) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "INDEX\tID\tOPENER\tFLAGS\tURL")
	fmt.Fprintln(w, "-----\t--\t------\t-----\t---")

	for _, r := range tabs.SortByIndex(records) {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			r.Index,
			r.ID,
			dash(string(r.OpenerID)),
			flags(r),
			dash(r.URL),
		)
	}

	w.Flush()
}

// DescribeResult renders an event handler result on one line.
func DescribeResult(result *primary.ArrangeResult) string {
	if result == nil {
		return "no result"
	}
	switch result.Outcome {
	case primary.OutcomeMoved:
		target := fmt.Sprintf("index %d", result.Index)
		if result.Index < 0 {
			target = "end"
		}
		return fmt.Sprintf("%s %s to %s", color.New(color.FgGreen).Sprint("moved"), result.TabID, target)
	case primary.OutcomeActivated:
		return fmt.Sprintf("%s %s", color.New(color.FgGreen).Sprint("activated"), result.TabID)
	case primary.OutcomeSkipped:
		return fmt.Sprintf("%s (%s)", color.New(color.FgYellow).Sprint("skipped"), result.Reason)
	default:
		return fmt.Sprintf("no action (%s)", result.Reason)
	}
}

func flags(r tabs.TabRecord) string {
	s := ""
	if r.Active {
		s += color.New(color.FgHiMagenta).Sprint("active")
	}
	if r.Pinned {
		if s != "" {
			s += ","
		}
		s += "pinned"
	}
	return dash(s)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
