package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/tabmagnet/internal/core/tabs"
	"github.com/example/tabmagnet/internal/ports/secondary"
)

// TabStateRepository implements secondary.TabStateRepository with SQLite.
type TabStateRepository struct {
	db *sql.DB
}

// NewTabStateRepository creates a new SQLite tab state repository.
func NewTabStateRepository(db *sql.DB) *TabStateRepository {
	return &TabStateRepository{db: db}
}

// GetFocus returns the last snapshot of a window, or nil when none exists.
func (r *TabStateRepository) GetFocus(ctx context.Context, windowID tabs.WindowID) (*secondary.WindowFocusRecord, error) {
	var (
		active    sql.NullString
		previous  sql.NullString
		updatedAt time.Time
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT active_tab_id, previous_active_tab_id, updated_at FROM window_focus WHERE window_id = ?",
		string(windowID),
	).Scan(&active, &previous, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get window focus: %w", err)
	}

	record := &secondary.WindowFocusRecord{
		WindowID:            windowID,
		ActiveTabID:         tabs.TabID(active.String),
		PreviousActiveTabID: tabs.TabID(previous.String),
		UpdatedAt:           updatedAt.Format(time.RFC3339),
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT tab_id, position, opener_id, active, pinned, url
		FROM window_tabs WHERE window_id = ? ORDER BY position ASC`,
		string(windowID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list window tabs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tabID  string
			opener sql.NullString
			url    sql.NullString
			t      tabs.TabRecord
		)
		if err := rows.Scan(&tabID, &t.Index, &opener, &t.Active, &t.Pinned, &url); err != nil {
			return nil, fmt.Errorf("failed to scan window tab: %w", err)
		}
		t.ID = tabs.TabID(tabID)
		t.WindowID = windowID
		t.OpenerID = tabs.TabID(opener.String)
		t.URL = url.String
		record.Tabs = append(record.Tabs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return record, nil
}

// SaveFocus replaces the snapshot of a window.
func (r *TabStateRepository) SaveFocus(ctx context.Context, record *secondary.WindowFocusRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO window_focus (window_id, active_tab_id, previous_active_tab_id, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(window_id) DO UPDATE SET
			active_tab_id = excluded.active_tab_id,
			previous_active_tab_id = excluded.previous_active_tab_id,
			updated_at = CURRENT_TIMESTAMP`,
		string(record.WindowID), nullString(string(record.ActiveTabID)), nullString(string(record.PreviousActiveTabID)),
	)
	if err != nil {
		return fmt.Errorf("failed to save window focus: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM window_tabs WHERE window_id = ?", string(record.WindowID)); err != nil {
		return fmt.Errorf("failed to clear window tabs: %w", err)
	}
	for _, t := range record.Tabs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO window_tabs (window_id, tab_id, position, opener_id, active, pinned, url)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			string(record.WindowID), string(t.ID), t.Index, nullString(string(t.OpenerID)), t.Active, t.Pinned, nullString(t.URL),
		)
		if err != nil {
			return fmt.Errorf("failed to save window tab %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// DeleteFocus forgets a window.
func (r *TabStateRepository) DeleteFocus(ctx context.Context, windowID tabs.WindowID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM window_tabs WHERE window_id = ?", string(windowID)); err != nil {
		return fmt.Errorf("failed to delete window tabs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM window_focus WHERE window_id = ?", string(windowID)); err != nil {
		return fmt.Errorf("failed to delete window focus: %w", err)
	}
	return tx.Commit()
}

// MarkExplicit flags a tab as placed by a command.
func (r *TabStateRepository) MarkExplicit(ctx context.Context, tabID tabs.TabID) error {
	_, err := r.db.ExecContext(ctx, "INSERT OR REPLACE INTO explicit_tabs (tab_id) VALUES (?)", string(tabID))
	if err != nil {
		return fmt.Errorf("failed to mark tab %s: %w", tabID, err)
	}
	return nil
}

// IsExplicit reports whether a tab was flagged by MarkExplicit.
func (r *TabStateRepository) IsExplicit(ctx context.Context, tabID tabs.TabID) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM explicit_tabs WHERE tab_id = ?", string(tabID)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check tab %s: %w", tabID, err)
	}
	return count > 0, nil
}

// ClearExplicit removes the flag.
func (r *TabStateRepository) ClearExplicit(ctx context.Context, tabID tabs.TabID) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM explicit_tabs WHERE tab_id = ?", string(tabID)); err != nil {
		return fmt.Errorf("failed to clear tab %s: %w", tabID, err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Ensure TabStateRepository implements the interface
var _ secondary.TabStateRepository = (*TabStateRepository)(nil)
