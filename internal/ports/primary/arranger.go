package primary

import (
	"context"

	"github.com/example/tabmagnet/internal/core/tabs"
)

// ArrangerService defines the primary port for reacting to tab lifecycle events.
type ArrangerService interface {
	// TabCreated places a newly created tab according to the position policy.
	TabCreated(ctx context.Context, event TabCreatedEvent) (*ArrangeResult, error)

	// TabRemoved chooses the next active tab according to the close behavior.
	TabRemoved(ctx context.Context, event TabRemovedEvent) (*ArrangeResult, error)

	// TabActivated records a focus change.
	TabActivated(ctx context.Context, event TabActivatedEvent) error

	// Reconcile compares the stored view of a window with the host and
	// handles tabs that disappeared without a removal event carrying their id.
	Reconcile(ctx context.Context, windowID tabs.WindowID) (*ReconcileResult, error)

	// OpenTabAtEnd opens a tab and places it last, ignoring the position policy.
	OpenTabAtEnd(ctx context.Context, req OpenTabAtEndRequest) (*OpenTabAtEndResponse, error)

	// ListTabs returns the window's tabs ordered by index.
	ListTabs(ctx context.Context, windowID tabs.WindowID) ([]tabs.TabRecord, error)
}

// TabCreatedEvent is the notification for a new tab.
type TabCreatedEvent struct {
	TabID    tabs.TabID
	WindowID tabs.WindowID
}

// TabRemovedEvent is the notification for a closed tab.
type TabRemovedEvent struct {
	TabID           tabs.TabID
	WindowID        tabs.WindowID
	IsWindowClosing bool
}

// TabActivatedEvent is the notification for a focus change.
type TabActivatedEvent struct {
	TabID    tabs.TabID
	WindowID tabs.WindowID
}

// Arrange outcomes.
const (
	OutcomeMoved     = "moved"
	OutcomeActivated = "activated"
	OutcomeSkipped   = "skipped"
	OutcomeNone      = "none"
)

// ArrangeResult describes what an event handler did.
type ArrangeResult struct {
	TabID   tabs.TabID // tab that was moved or activated
	Outcome string
	Index   int // target index for moves, -1 for end
	Reason  string
}

// ReconcileResult lists the tabs found missing during reconciliation.
type ReconcileResult struct {
	Removed []tabs.TabID
	Results []*ArrangeResult
}

// OpenTabAtEndRequest contains parameters for the end command.
type OpenTabAtEndRequest struct {
	WindowID tabs.WindowID
	URL      string
}

// OpenTabAtEndResponse contains the tab as placed.
type OpenTabAtEndResponse struct {
	Tab tabs.TabRecord
}
