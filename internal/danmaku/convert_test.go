package danmaku_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"danmuflow/internal/danmaku"
	"danmuflow/internal/logging"
)

type fakeConverter struct {
	failOn string
	inputs []string
}

func (f *fakeConverter) Convert(ctx context.Context, xmlPath string) (string, error) {
	f.inputs = append(f.inputs, xmlPath)
	if f.failOn != "" && strings.Contains(xmlPath, f.failOn) {
		return "", errors.New("render failed")
	}
	return strings.TrimSuffix(xmlPath, ".xml") + ".ass", nil
}

func writeFixtures(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("<xml/>"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
}

func TestRunConvertsEveryXMLFile(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir, "a.xml", "nested/b.XML", "ignore.ass", "notes.txt")

	conv := &fakeConverter{}
	summary, err := danmaku.NewBatch(conv, logging.NewNop()).Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Found != 2 || summary.Converted != 2 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(conv.inputs) != 2 {
		t.Fatalf("unexpected inputs: %v", conv.inputs)
	}
}

func TestRunTalliesFailuresAndContinues(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir, "a.xml", "bad.xml", "c.xml")

	conv := &fakeConverter{failOn: "bad"}
	summary, err := danmaku.NewBatch(conv, logging.NewNop()).Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Converted != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunWithNoXMLFilesIsANoOp(t *testing.T) {
	summary, err := danmaku.NewBatch(&fakeConverter{}, logging.NewNop()).Run(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Found != 0 || summary.Converted != 0 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
