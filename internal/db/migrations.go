package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_settings_and_activity_log",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_window_focus_snapshots",
		Up:      migrationV2,
	},
}

// RunMigrations applies all pending migrations in order.
func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(schemaVersionSQL); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	current, err := currentVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := m.Up(db); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}
	return nil
}

// CurrentVersion returns the highest applied migration.
func CurrentVersion(db *sql.DB) (int, error) {
	return currentVersion(db)
}

func currentVersion(db *sql.DB) (int, error) {
	var version sql.NullInt64
	if err := db.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return int(version.Int64), nil
}

// migrationV1 creates the tables of the first release.
func migrationV1(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS explicit_tabs (
			tab_id TEXT PRIMARY KEY,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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
	`)
	return err
}

// migrationV2 adds window focus snapshots used to resolve closed tabs.
func migrationV2(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS window_focus (
			window_id TEXT PRIMARY KEY,
			active_tab_id TEXT,
			previous_active_tab_id TEXT,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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
	`)
	return err
}
