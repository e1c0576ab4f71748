package primary

import "context"

// ActivityService defines the primary port for the mutation activity log.
type ActivityService interface {
	// ListActivity retrieves entries matching the given filters, newest first.
	ListActivity(ctx context.Context, filters ActivityFilters) ([]*ActivityEntry, error)

	// PruneActivity keeps the newest keep entries and deletes the rest.
	PruneActivity(ctx context.Context, keep int) (int, error)
}

// ActivityEntry represents an applied mutation at the port boundary.
type ActivityEntry struct {
	ID        string
	WindowID  string
	TabID     string
	Action    string // 'move', 'move_to_end', 'activate', 'create'
	Detail    string
	CreatedAt string
}

// ActivityFilters contains filter options for querying activity.
type ActivityFilters struct {
	WindowID string
	Limit    int
}
