package secondary

import "context"

// Activity actions.
const (
	ActionMove      = "move"
	ActionMoveToEnd = "move_to_end"
	ActionActivate  = "activate"
	ActionCreate    = "create"
)

// ActivityLog defines the interface for recording applied tab mutations.
type ActivityLog interface {
	// Record appends an entry. ID and CreatedAt are assigned when empty.
	Record(ctx context.Context, entry *ActivityRecord) error

	// List returns entries newest first.
	List(ctx context.Context, filters ActivityFilters) ([]*ActivityRecord, error)

	// Prune removes all but the newest keep entries.
	Prune(ctx context.Context, keep int) (int, error)
}

// ActivityRecord represents an applied mutation as stored in persistence.
type ActivityRecord struct {
	ID        string
	WindowID  string
	TabID     string
	Action    string
	Detail    string
	CreatedAt string
}

// ActivityFilters contains filter options for querying activity.
type ActivityFilters struct {
	WindowID string
	Limit    int
}
