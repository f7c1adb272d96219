package decisions

import (
	"context"
	"testing"
	"time"

	"hardsub/internal/analysis"
	"hardsub/internal/config"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	tmp := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = tmp
	cfg.Paths.LogDir = tmp

	store, err := Open(&cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleReport(id, source string) *analysis.Report {
	return &analysis.Report{
		ScanID:           id,
		Source:           source,
		HasSubtitles:     true,
		Confidence:       92.5,
		Reason:           "2 track(s) with changing subtitle-like text",
		Conflict:         false,
		ConflictSeverity: "none",
		Uncertainty:      "low",
		Votes: []analysis.Vote{
			{Strategy: "tesseract", HasSubtitles: true, Confidence: 0.92, Weight: 1},
		},
		StartedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
	}
}

func TestSaveAndGet(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.SaveReport(ctx, sampleReport("scan-1", "movie.mkv")); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	record, found, err := store.Get(ctx, "scan-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("expected record to exist")
	}
	if record.Source != "movie.mkv" {
		t.Errorf("Source = %q, want movie.mkv", record.Source)
	}
	if !record.HasSubtitles {
		t.Error("expected positive verdict")
	}
	if record.Confidence != 92.5 {
		t.Errorf("Confidence = %v, want 92.5", record.Confidence)
	}
	if len(record.Votes) != 1 || record.Votes[0].Strategy != "tesseract" {
		t.Errorf("unexpected votes: %+v", record.Votes)
	}
	if record.CreatedAt.IsZero() {
		t.Error("expected created_at to round-trip")
	}
}

func TestGetMissing(t *testing.T) {
	store := testStore(t)

	_, found, err := store.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Fatal("expected missing record")
	}
}

func TestListNewestFirst(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	older := sampleReport("scan-old", "a.mkv")
	older.StartedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := sampleReport("scan-new", "b.mkv")
	newer.StartedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	if err := store.SaveReport(ctx, older); err != nil {
		t.Fatalf("SaveReport older: %v", err)
	}
	if err := store.SaveReport(ctx, newer); err != nil {
		t.Fatalf("SaveReport newer: %v", err)
	}

	records, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "scan-new" || records[1].ID != "scan-old" {
		t.Errorf("unexpected order: %s, %s", records[0].ID, records[1].ID)
	}

	limited, err := store.List(ctx, 1)
	if err != nil {
		t.Fatalf("List limited: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "scan-new" {
		t.Errorf("limited list = %+v, want only scan-new", limited)
	}
}

func TestClear(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := store.SaveReport(ctx, sampleReport(id, id+".mkv")); err != nil {
			t.Fatalf("SaveReport %s: %v", id, err)
		}
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}

	records, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List after clear: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty store, got %d records", len(records))
	}
}

func TestSaveRejectsInvalidReports(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if err := store.SaveReport(ctx, nil); err == nil {
		t.Error("expected error for nil report")
	}
	if err := store.SaveReport(ctx, sampleReport("  ", "x.mkv")); err == nil {
		t.Error("expected error for missing scan id")
	}
}

func TestOpenRejectsSecondProcess(t *testing.T) {
	tmp := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = tmp
	cfg.Paths.LogDir = tmp

	first, err := Open(&cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer first.Close()

	if _, err := Open(&cfg); err == nil {
		t.Fatal("expected second Open to fail while the lock is held")
	}
}

func TestReopenPersists(t *testing.T) {
	tmp := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = tmp
	cfg.Paths.LogDir = tmp

	store, err := Open(&cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.SaveReport(context.Background(), sampleReport("persisted", "keep.mkv")); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(&cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	_, found, err := reopened.Get(context.Background(), "persisted")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("expected record to survive reopen")
	}
}
