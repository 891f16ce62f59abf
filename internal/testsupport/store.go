package testsupport

import (
	"context"
	"testing"

	"danmuflow/internal/catalog"
	"danmuflow/internal/config"
)

// NewStore opens a catalog store against the test config and closes it when
// the test finishes.
func NewStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("open catalog store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// SeedEntry inserts a catalog entry with sensible defaults for tests.
func SeedEntry(t testing.TB, store *catalog.Store, description, dir string, urls ...string) *catalog.Entry {
	t.Helper()

	if len(urls) == 0 {
		urls = []string{"https://example.com/video/1"}
	}
	entry, err := store.Add(context.Background(), description, dir, urls)
	if err != nil {
		t.Fatalf("seed catalog entry: %v", err)
	}
	return entry
}
