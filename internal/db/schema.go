package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Repository
// tests load it via GetSchemaSQL() instead of declaring their own tables, so
// a column referenced by repository code but missing here fails immediately
// with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- User preferences, one row per key
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Last observed focus of each window
CREATE TABLE IF NOT EXISTS window_focus (
	window_id TEXT PRIMARY KEY,
	active_tab_id TEXT,
	previous_active_tab_id TEXT,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Tab strip of each window at the time of the focus snapshot
CREATE TABLE IF NOT EXISTS window_tabs (
	window_id TEXT NOT NULL,
	tab_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	opener_id TEXT,
	active INTEGER NOT NULL DEFAULT 0,
	pinned INTEGER NOT NULL DEFAULT 0,
	url TEXT,
	PRIMARY KEY (window_id, tab_id),
	FOREIGN KEY (window_id) REFERENCES window_focus(window_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_window_tabs_position ON window_tabs(window_id, position);

-- Tabs placed by the end command, excluded from policy placement
CREATE TABLE IF NOT EXISTS explicit_tabs (
	tab_id TEXT PRIMARY KEY,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Applied tab mutations
CREATE TABLE IF NOT EXISTS activity_log (
	id TEXT PRIMARY KEY,
	window_id TEXT,
	tab_id TEXT,
	action TEXT NOT NULL CHECK(action IN ('move', 'move_to_end', 'activate', 'create')),
	detail TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_activity_log_window ON activity_log(window_id);
CREATE INDEX IF NOT EXISTS idx_activity_log_created ON activity_log(created_at);
`

const schemaVersionSQL = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// InitSchema creates the database schema, or migrates an existing one.
func InitSchema(db *sql.DB) error {
	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		return RunMigrations(db)
	}

	// Fresh install - create the current schema directly and mark every
	// migration as applied
	if _, err := db.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := db.Exec(schemaVersionSQL); err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}
	for _, m := range migrations {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
