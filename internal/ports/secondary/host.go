package secondary

import (
	"context"
	"errors"

	"github.com/example/tabmagnet/internal/core/tabs"
)

// Stale reference errors. A mutation that fails with one of these targeted a
// tab or window that closed in the meantime and is treated as a no-op.
var (
	ErrTabNotFound    = errors.New("tab not found")
	ErrWindowNotFound = errors.New("window not found")
)

// IsStaleReference reports whether err is a benign stale reference failure.
func IsStaleReference(err error) bool {
	return errors.Is(err, ErrTabNotFound) || errors.Is(err, ErrWindowNotFound)
}

// MoveToEnd is the index value asking the host to place a tab last.
const MoveToEnd = -1

// CreateTabRequest contains parameters for opening a tab.
type CreateTabRequest struct {
	WindowID tabs.WindowID
	URL      string     // optional, host default page when empty
	OpenerID tabs.TabID // optional
	Active   bool
}

// TabHost defines the secondary port for querying and mutating the tab strip.
// Records returned by a host always carry dense indices.
type TabHost interface {
	// GetTab retrieves one tab. Returns ErrTabNotFound when it is gone.
	GetTab(ctx context.Context, id tabs.TabID) (*tabs.TabRecord, error)

	// QueryTabs lists a window's tabs ordered by index.
	QueryTabs(ctx context.Context, windowID tabs.WindowID) ([]tabs.TabRecord, error)

	// ActiveTab returns the focused tab of a window, or nil when none is focused.
	ActiveTab(ctx context.Context, windowID tabs.WindowID) (*tabs.TabRecord, error)

	// Move places a tab at index within its window. MoveToEnd places it last.
	Move(ctx context.Context, id tabs.TabID, index int) error

	// Activate focuses a tab.
	Activate(ctx context.Context, id tabs.TabID) error

	// CreateTab opens a tab and returns its record as the host placed it.
	CreateTab(ctx context.Context, req CreateTabRequest) (*tabs.TabRecord, error)
}
