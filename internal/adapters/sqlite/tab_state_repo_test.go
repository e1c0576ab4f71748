package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/tabmagnet/internal/adapters/sqlite"
	"github.com/example/tabmagnet/internal/core/tabs"
	"github.com/example/tabmagnet/internal/ports/secondary"
)

func TestTabStateRepository_FocusRoundTrip(t *testing.T) {
	repo := sqlite.NewTabStateRepository(setupTestDB(t))
	ctx := context.Background()

	record := &secondary.WindowFocusRecord{
		WindowID:            "$1",
		ActiveTabID:         "@3",
		PreviousActiveTabID: "@1",
		Tabs: []tabs.TabRecord{
			{ID: "@1", WindowID: "$1", Index: 0},
			{ID: "@3", WindowID: "$1", Index: 1, OpenerID: "@1", Active: true, URL: "about:newtab"},
			{ID: "@2", WindowID: "$1", Index: 2, Pinned: true},
		},
	}
	if err := repo.SaveFocus(ctx, record); err != nil {
		t.Fatalf("SaveFocus failed: %v", err)
	}

	got, err := repo.GetFocus(ctx, "$1")
	if err != nil {
		t.Fatalf("GetFocus failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected snapshot")
	}
	if got.ActiveTabID != "@3" || got.PreviousActiveTabID != "@1" {
		t.Errorf("unexpected focus: %+v", got)
	}
	if len(got.Tabs) != 3 {
		t.Fatalf("expected 3 tabs, got %d", len(got.Tabs))
	}
	second := got.Tabs[1]
	if second.ID != "@3" || second.OpenerID != "@1" || !second.Active || second.URL != "about:newtab" {
		t.Errorf("unexpected tab: %+v", second)
	}
	if !got.Tabs[2].Pinned {
		t.Error("expected pinned flag to survive")
	}
}

func TestTabStateRepository_SaveReplacesTabs(t *testing.T) {
	repo := sqlite.NewTabStateRepository(setupTestDB(t))
	ctx := context.Background()

	_ = repo.SaveFocus(ctx, &secondary.WindowFocusRecord{
		WindowID: "w1",
		Tabs:     []tabs.TabRecord{{ID: "a", Index: 0}, {ID: "b", Index: 1}},
	})
	_ = repo.SaveFocus(ctx, &secondary.WindowFocusRecord{
		WindowID:    "w1",
		ActiveTabID: "a",
		Tabs:        []tabs.TabRecord{{ID: "a", Index: 0}},
	})

	got, err := repo.GetFocus(ctx, "w1")
	if err != nil {
		t.Fatalf("GetFocus failed: %v", err)
	}
	if len(got.Tabs) != 1 || got.ActiveTabID != "a" {
		t.Errorf("expected replaced snapshot, got %+v", got)
	}
}

func TestTabStateRepository_MissingAndDelete(t *testing.T) {
	repo := sqlite.NewTabStateRepository(setupTestDB(t))
	ctx := context.Background()

	got, err := repo.GetFocus(ctx, "nope")
	if err != nil || got != nil {
		t.Fatalf("expected nil snapshot without error, got %+v, %v", got, err)
	}

	_ = repo.SaveFocus(ctx, &secondary.WindowFocusRecord{WindowID: "w1", Tabs: []tabs.TabRecord{{ID: "a"}}})
	if err := repo.DeleteFocus(ctx, "w1"); err != nil {
		t.Fatalf("DeleteFocus failed: %v", err)
	}
	got, _ = repo.GetFocus(ctx, "w1")
	if got != nil {
		t.Errorf("expected snapshot to be deleted, got %+v", got)
	}
}

func TestTabStateRepository_ExplicitMarks(t *testing.T) {
	repo := sqlite.NewTabStateRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.MarkExplicit(ctx, "t1"); err != nil {
		t.Fatalf("MarkExplicit failed: %v", err)
	}
	if err := repo.MarkExplicit(ctx, "t1"); err != nil {
		t.Fatalf("marking twice should not fail: %v", err)
	}

	ok, err := repo.IsExplicit(ctx, "t1")
	if err != nil || !ok {
		t.Fatalf("expected t1 explicit, got %v, %v", ok, err)
	}
	ok, _ = repo.IsExplicit(ctx, "t2")
	if ok {
		t.Error("expected t2 not explicit")
	}

	if err := repo.ClearExplicit(ctx, "t1"); err != nil {
		t.Fatalf("ClearExplicit failed: %v", err)
	}
	ok, _ = repo.IsExplicit(ctx, "t1")
	if ok {
		t.Error("expected t1 cleared")
	}
}
