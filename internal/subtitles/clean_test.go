package subtitles_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"danmuflow/internal/logging"
	"danmuflow/internal/subtitles"
)

func TestFindMergedAndDelete(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "show")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	keep := filepath.Join(dir, "ep01.danmaku.ass")
	gone := []string{
		filepath.Join(dir, "ep01.zh-CN.merged.ass"),
		filepath.Join(nested, "ep02.merged.ass"),
	}
	for _, path := range append([]string{keep}, gone...) {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	found, err := subtitles.FindMerged(dir)
	if err != nil {
		t.Fatalf("FindMerged returned error: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 merged files, got %v", found)
	}

	result := subtitles.DeleteMerged(context.Background(), logging.NewNop(), found)
	if result.Deleted != 2 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	for _, path := range gone {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatalf("expected %s to be deleted", path)
		}
	}
	if _, err := os.Stat(keep); err != nil {
		t.Fatalf("danmaku source should survive: %v", err)
	}
}

func TestDeleteMergedCountsFailures(t *testing.T) {
	result := subtitles.DeleteMerged(context.Background(), logging.NewNop(), []string{filepath.Join(t.TempDir(), "absent.merged.ass")})
	if result.Deleted != 0 || result.Failed != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}
