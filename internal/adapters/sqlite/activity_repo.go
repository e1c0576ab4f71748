package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/tabmagnet/internal/ports/secondary"
)

// ActivityRepository implements secondary.ActivityLog with SQLite.
type ActivityRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewActivityRepository creates a new SQLite activity repository.
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db, now: time.Now}
}

// Record appends an entry, assigning ID and CreatedAt when empty.
func (r *ActivityRepository) Record(ctx context.Context, entry *secondary.ActivityRecord) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	createdAt := r.now().UTC()
	if entry.CreatedAt != "" {
		parsed, err := time.Parse(time.RFC3339, entry.CreatedAt)
		if err != nil {
			return fmt.Errorf("invalid created_at %q: %w", entry.CreatedAt, err)
		}
		createdAt = parsed.UTC()
	}
	entry.CreatedAt = createdAt.Format(time.RFC3339)

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO activity_log (id, window_id, tab_id, action, detail, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		entry.ID, nullString(entry.WindowID), nullString(entry.TabID), entry.Action, nullString(entry.Detail), createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// List returns entries newest first.
func (r *ActivityRepository) List(ctx context.Context, filters secondary.ActivityFilters) ([]*secondary.ActivityRecord, error) {
	query := "SELECT id, window_id, tab_id, action, detail, created_at FROM activity_log WHERE 1=1"
	args := []any{}

	if filters.WindowID != "" {
		query += " AND window_id = ?"
		args = append(args, filters.WindowID)
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ActivityRecord
	for rows.Next() {
		var (
			windowID  sql.NullString
			tabID     sql.NullString
			detail    sql.NullString
			createdAt time.Time
		)
		record := &secondary.ActivityRecord{}
		if err := rows.Scan(&record.ID, &windowID, &tabID, &record.Action, &detail, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		record.WindowID = windowID.String
		record.TabID = tabID.String
		record.Detail = detail.String
		record.CreatedAt = createdAt.Format(time.RFC3339)
		records = append(records, record)
	}
	return records, rows.Err()
}

// Prune removes all but the newest keep entries.
func (r *ActivityRepository) Prune(ctx context.Context, keep int) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM activity_log WHERE id NOT IN (
			SELECT id FROM activity_log ORDER BY created_at DESC, rowid DESC LIMIT ?
		)`,
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune activity: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Ensure ActivityRepository implements the interface
var _ secondary.ActivityLog = (*ActivityRepository)(nil)
