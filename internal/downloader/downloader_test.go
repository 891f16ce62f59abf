package downloader_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"danmuflow/internal/catalog"
	"danmuflow/internal/downloader"
	"danmuflow/internal/logging"
	"danmuflow/internal/testsupport"
)

type fakeClient struct {
	failURLs map[string]bool
	calls    []string
}

func (f *fakeClient) Download(ctx context.Context, url, downloadDir string) error {
	f.calls = append(f.calls, url)
	if f.failURLs[url] {
		return errors.New("download failed")
	}
	return nil
}

func TestDownloadAllTalliesAndMarksEntries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.NewStore(t, cfg)

	good := testsupport.SeedEntry(t, store, "good", filepath.Join(cfg.Paths.LibraryDir, "good"),
		"https://example.com/1", "https://example.com/2")
	mixed := testsupport.SeedEntry(t, store, "mixed", filepath.Join(cfg.Paths.LibraryDir, "mixed"),
		"https://example.com/3", "https://example.com/4")

	client := &fakeClient{failURLs: map[string]bool{"https://example.com/3": true}}
	runner := downloader.New(cfg, store, client, logging.NewNop())

	summary, err := runner.DownloadAll(context.Background())
	if err != nil {
		t.Fatalf("DownloadAll returned error: %v", err)
	}
	if summary.Entries != 2 || summary.Succeeded != 3 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(client.calls) != 4 {
		t.Fatalf("expected all URLs attempted, got %v", client.calls)
	}

	goodEntry, err := store.GetByID(context.Background(), good.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if goodEntry.LastStatus != catalog.StatusOK {
		t.Fatalf("expected ok status, got %q", goodEntry.LastStatus)
	}
	mixedEntry, err := store.GetByID(context.Background(), mixed.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if mixedEntry.LastStatus != catalog.StatusFailed {
		t.Fatalf("expected failed status, got %q", mixedEntry.LastStatus)
	}
	if mixedEntry.LastRunAt == nil {
		t.Fatal("expected last run time to be recorded")
	}
}

func TestDownloadSubsetOnlyFetchesSelectedEntries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.NewStore(t, cfg)

	testsupport.SeedEntry(t, store, "skip", filepath.Join(cfg.Paths.LibraryDir, "skip"), "https://example.com/skip")
	want := testsupport.SeedEntry(t, store, "want", filepath.Join(cfg.Paths.LibraryDir, "want"), "https://example.com/want")

	client := &fakeClient{}
	runner := downloader.New(cfg, store, client, logging.NewNop())

	summary, err := runner.DownloadSubset(context.Background(), []int64{want.ID})
	if err != nil {
		t.Fatalf("DownloadSubset returned error: %v", err)
	}
	if summary.Entries != 1 || summary.Succeeded != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(client.calls) != 1 || !strings.HasSuffix(client.calls[0], "want") {
		t.Fatalf("unexpected calls: %v", client.calls)
	}
}

func TestDownloadSubsetReportsUnknownIDs(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.NewStore(t, cfg)

	runner := downloader.New(cfg, store, &fakeClient{}, logging.NewNop())
	_, err := runner.DownloadSubset(context.Background(), []int64{42})
	if !errors.Is(err, catalog.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestRunRefusesWhenLockHeld(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.NewStore(t, cfg)
	testsupport.SeedEntry(t, store, "locked", filepath.Join(cfg.Paths.LibraryDir, "locked"))

	held := flock.New(cfg.LockPath())
	locked, err := held.TryLock()
	if err != nil || !locked {
		t.Fatalf("prepare lock: locked=%v err=%v", locked, err)
	}
	defer func() { _ = held.Unlock() }()

	runner := downloader.New(cfg, store, &fakeClient{}, logging.NewNop())
	if _, err := runner.DownloadAll(context.Background()); !errors.Is(err, downloader.ErrRunInProgress) {
		t.Fatalf("expected ErrRunInProgress, got %v", err)
	}
}

func TestEmptyCatalogIsANoOp(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.NewStore(t, cfg)

	runner := downloader.New(cfg, store, &fakeClient{}, logging.NewNop())
	summary, err := runner.DownloadAll(context.Background())
	if err != nil {
		t.Fatalf("DownloadAll returned error: %v", err)
	}
	if summary.Entries != 0 || summary.Succeeded != 0 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
