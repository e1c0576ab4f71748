package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestOpen_FreshInstall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tabmagnet.db")

	conn, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer conn.Close()

	version, err := CurrentVersion(conn)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("expected version %d, got %d", len(migrations), version)
	}

	for _, table := range []string{"settings", "window_focus", "window_tabs", "explicit_tabs", "activity_log"} {
		var count int
		if err := conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count); err != nil {
			t.Fatalf("query %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("expected table %s", table)
		}
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabmagnet.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := first.Exec("INSERT INTO settings (key, value) VALUES ('position', 'left')"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	var value string
	if err := second.QueryRow("SELECT value FROM settings WHERE key = 'position'").Scan(&value); err != nil {
		t.Fatalf("select: %v", err)
	}
	if value != "left" {
		t.Errorf("expected left, got %q", value)
	}
}

func TestRunMigrations_UpgradesFromV1(t *testing.T) {
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	conn.SetMaxOpenConns(1)
	defer conn.Close()

	if _, err := conn.Exec(schemaVersionSQL); err != nil {
		t.Fatalf("schema_version: %v", err)
	}
	if err := migrationV1(conn); err != nil {
		t.Fatalf("v1: %v", err)
	}
	if _, err := conn.Exec("INSERT INTO schema_version (version) VALUES (1)"); err != nil {
		t.Fatalf("record v1: %v", err)
	}

	if err := InitSchema(conn); err != nil {
		t.Fatalf("init: %v", err)
	}

	version, _ := CurrentVersion(conn)
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}
	if _, err := conn.Exec("INSERT INTO window_focus (window_id) VALUES ('w1')"); err != nil {
		t.Errorf("window_focus should exist after migration: %v", err)
	}
}
