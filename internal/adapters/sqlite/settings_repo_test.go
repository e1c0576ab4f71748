package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/tabmagnet/internal/adapters/sqlite"
)

func TestSettingsRepository_GetMissing(t *testing.T) {
	repo := sqlite.NewSettingsRepository(setupTestDB(t))

	value, ok, err := repo.Get(context.Background(), "position")

	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok || value != "" {
		t.Errorf("expected missing key, got %q (ok=%v)", value, ok)
	}
}

func TestSettingsRepository_SetOverwrites(t *testing.T) {
	db := setupTestDB(t)
	seedSetting(t, db, "position", "left")
	repo := sqlite.NewSettingsRepository(db)
	ctx := context.Background()

	if err := repo.Set(ctx, "position", "end"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, ok, err := repo.Get(ctx, "position")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || value != "end" {
		t.Errorf("expected end, got %q (ok=%v)", value, ok)
	}
}

func TestSettingsRepository_AllAndDelete(t *testing.T) {
	repo := sqlite.NewSettingsRepository(setupTestDB(t))
	ctx := context.Background()

	_ = repo.Set(ctx, "position", "start")
	_ = repo.Set(ctx, "closeTabBehavior", "smart")

	all, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 2 || all["closeTabBehavior"] != "smart" {
		t.Errorf("unexpected settings: %v", all)
	}

	if err := repo.Delete(ctx, "position"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(ctx, "position"); err != nil {
		t.Fatalf("deleting a missing key should not fail: %v", err)
	}
	all, _ = repo.All(ctx)
	if _, ok := all["position"]; ok {
		t.Error("expected position to be deleted")
	}
}
