package catalog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"danmuflow/internal/catalog"
	"danmuflow/internal/testsupport"
)

func TestAddAndGetRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.NewStore(t, cfg)

	entry, err := store.Add(context.Background(), "  Weekly uploads ", filepath.Join(cfg.Paths.LibraryDir, "weekly"), []string{
		"https://example.com/a",
		"  ",
		"https://example.com/b",
	})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if entry.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if entry.Description != "Weekly uploads" {
		t.Fatalf("description not trimmed: %q", entry.Description)
	}
	if len(entry.URLs) != 2 {
		t.Fatalf("blank URL not dropped: %v", entry.URLs)
	}
	if entry.LastStatus != catalog.StatusNever {
		t.Fatalf("unexpected initial status: %q", entry.LastStatus)
	}
	if entry.LastRunAt != nil {
		t.Fatal("expected no last run time")
	}

	got, err := store.GetByID(context.Background(), entry.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.Description != entry.Description || got.DownloadDir != entry.DownloadDir {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, entry)
	}
}

func TestAddRejectsIncompleteEntries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.NewStore(t, cfg)

	if _, err := store.Add(context.Background(), "", "/tmp/x", []string{"u"}); err == nil {
		t.Fatal("expected error for missing description")
	}
	if _, err := store.Add(context.Background(), "d", "", []string{"u"}); err == nil {
		t.Fatal("expected error for missing directory")
	}
	if _, err := store.Add(context.Background(), "d", "/tmp/x", nil); err == nil {
		t.Fatal("expected error for missing URLs")
	}
}

func TestSubsetPreservesOrderAndReportsMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.NewStore(t, cfg)

	first := testsupport.SeedEntry(t, store, "one", filepath.Join(cfg.Paths.LibraryDir, "one"))
	second := testsupport.SeedEntry(t, store, "two", filepath.Join(cfg.Paths.LibraryDir, "two"))

	entries, err := store.Subset(context.Background(), []int64{second.ID, first.ID, first.ID})
	if err != nil {
		t.Fatalf("Subset returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != first.ID || entries[1].ID != second.ID {
		t.Fatalf("expected ascending id order, got %d,%d", entries[0].ID, entries[1].ID)
	}

	_, err = store.Subset(context.Background(), []int64{first.ID, 9999})
	if !errors.Is(err, catalog.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestMarkResultUpdatesStatus(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.NewStore(t, cfg)

	entry := testsupport.SeedEntry(t, store, "mark", filepath.Join(cfg.Paths.LibraryDir, "mark"))
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	if err := store.MarkResult(context.Background(), entry.ID, catalog.StatusOK, at); err != nil {
		t.Fatalf("MarkResult returned error: %v", err)
	}

	got, err := store.GetByID(context.Background(), entry.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.LastStatus != catalog.StatusOK {
		t.Fatalf("unexpected status: %q", got.LastStatus)
	}
	if got.LastRunAt == nil || !got.LastRunAt.Equal(at) {
		t.Fatalf("unexpected last run time: %v", got.LastRunAt)
	}

	if err := store.MarkResult(context.Background(), 9999, catalog.StatusFailed, at); !errors.Is(err, catalog.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestRemoveDeletesEntry(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.NewStore(t, cfg)

	entry := testsupport.SeedEntry(t, store, "gone", filepath.Join(cfg.Paths.LibraryDir, "gone"))
	if err := store.Remove(context.Background(), entry.ID); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := store.GetByID(context.Background(), entry.ID); !errors.Is(err, catalog.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound after removal, got %v", err)
	}
	if err := store.Remove(context.Background(), entry.ID); !errors.Is(err, catalog.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound on double removal, got %v", err)
	}
}

func TestImportLegacyConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.NewStore(t, cfg)

	legacy := `{
  "download_configs": [
    {"download_path": "/tmp/anime", "description": "anime", "urls": ["https://example.com/1"]},
    {"download_path": "", "description": "broken", "urls": ["https://example.com/2"]},
    {"download_path": "/tmp/music", "description": "music", "urls": ["https://example.com/3", "https://example.com/4"]}
  ],
  "yt_dlp_options": {"format": "best"}
}`
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatalf("write legacy config: %v", err)
	}

	imported, skipped, err := store.ImportLegacy(context.Background(), path)
	if err != nil {
		t.Fatalf("ImportLegacy returned error: %v", err)
	}
	if imported != 2 || skipped != 1 {
		t.Fatalf("unexpected import counts: imported=%d skipped=%d", imported, skipped)
	}

	entries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Description != "music" || len(entries[1].URLs) != 2 {
		t.Fatalf("unexpected imported entry: %+v", entries[1])
	}
}
