package app

import (
	"context"
	"fmt"

	"github.com/example/tabmagnet/internal/ports/primary"
	"github.com/example/tabmagnet/internal/ports/secondary"
)

// ActivityServiceImpl implements the ActivityService interface.
type ActivityServiceImpl struct {
	activity secondary.ActivityLog
}

// NewActivityService creates a new ActivityService with injected dependencies.
func NewActivityService(activity secondary.ActivityLog) *ActivityServiceImpl {
	return &ActivityServiceImpl{
		activity: activity,
	}
}

// ListActivity retrieves entries matching the given filters.
func (s *ActivityServiceImpl) ListActivity(ctx context.Context, filters primary.ActivityFilters) ([]*primary.ActivityEntry, error) {
	records, err := s.activity.List(ctx, secondary.ActivityFilters{
		WindowID: filters.WindowID,
		Limit:    filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}

	entries := make([]*primary.ActivityEntry, len(records))
	for i, r := range records {
		entries[i] = s.recordToEntry(r)
	}
	return entries, nil
}

// PruneActivity keeps the newest keep entries.
func (s *ActivityServiceImpl) PruneActivity(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must not be negative, got %d", keep)
	}
	return s.activity.Prune(ctx, keep)
}

// Helper methods

func (s *ActivityServiceImpl) recordToEntry(r *secondary.ActivityRecord) *primary.ActivityEntry {
	return &primary.ActivityEntry{
		ID:        r.ID,
		WindowID:  r.WindowID,
		TabID:     r.TabID,
		Action:    r.Action,
		Detail:    r.Detail,
		CreatedAt: r.CreatedAt,
	}
}

// Ensure ActivityServiceImpl implements the interface
var _ primary.ActivityService = (*ActivityServiceImpl)(nil)
