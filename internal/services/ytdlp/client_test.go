package ytdlp_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"danmuflow/internal/config"
	"danmuflow/internal/services"
	"danmuflow/internal/services/ytdlp"
)

type stubExecutor struct {
	err    error
	stdout string
	dirs   []string
	args   [][]string
}

func (s *stubExecutor) Run(ctx context.Context, dir, binary string, args []string) error {
	s.dirs = append(s.dirs, dir)
	s.args = append(s.args, append([]string(nil), args...))
	return s.err
}

func (s *stubExecutor) Output(ctx context.Context, binary string, args []string) (string, error) {
	s.args = append(s.args, append([]string(nil), args...))
	return s.stdout, s.err
}

func testOptions() config.YtDlp {
	return config.YtDlp{
		Binary:            "yt-dlp",
		Format:            "bestvideo+bestaudio/best",
		FormatSort:        "res,fps",
		MergeOutputFormat: "mp4",
		WriteThumbnail:    true,
		AllSubs:           true,
		OutputTemplate:    "%(title)s.%(ext)s",
	}
}

func TestBuildArgsAssemblesConfiguredFlags(t *testing.T) {
	client, err := ytdlp.New(testOptions(), ytdlp.WithExecutor(&stubExecutor{}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	got := client.BuildArgs("https://example.com/v", "/tmp/dl")
	want := []string{
		"-f", "bestvideo+bestaudio/best",
		"--format-sort", "res,fps",
		"--merge-output-format", "mp4",
		"--write-thumbnail",
		"--all-subs",
		"-o", filepath.Join("/tmp/dl", "%(title)s.%(ext)s"),
		"https://example.com/v",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected args:\n got %v\nwant %v", got, want)
	}
}

func TestDownloadCreatesDirectoryAndRunsInIt(t *testing.T) {
	exec := &stubExecutor{}
	client, err := ytdlp.New(testOptions(), ytdlp.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "nested", "dl")
	if err := client.Download(context.Background(), "https://example.com/v", dir); err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected download dir to be created: %v", err)
	}
	if len(exec.dirs) != 1 || exec.dirs[0] != dir {
		t.Fatalf("expected run in %q, got %v", dir, exec.dirs)
	}
}

func TestDownloadWrapsExecutorFailure(t *testing.T) {
	client, err := ytdlp.New(testOptions(), ytdlp.WithExecutor(&stubExecutor{err: errors.New("exit status 1")}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	err = client.Download(context.Background(), "https://example.com/v", t.TempDir())
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestDownloadRejectsEmptyURL(t *testing.T) {
	client, err := ytdlp.New(testOptions(), ytdlp.WithExecutor(&stubExecutor{}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := client.Download(context.Background(), "  ", t.TempDir()); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestVersionTrimsOutput(t *testing.T) {
	client, err := ytdlp.New(testOptions(), ytdlp.WithExecutor(&stubExecutor{stdout: "2026.02.01\n"}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	version, err := client.Version(context.Background())
	if err != nil {
		t.Fatalf("Version returned error: %v", err)
	}
	if version != "2026.02.01" {
		t.Fatalf("unexpected version: %q", version)
	}
}
