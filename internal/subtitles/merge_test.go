package subtitles_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"

	"danmuflow/internal/config"
	"danmuflow/internal/logging"
	"danmuflow/internal/subtitles"
)

const sampleASS = `[Script Info]
Title: danmaku

[V4+ Styles]
Format: Name, Fontname, Fontsize
Style: Danmaku,黑体,32

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:01.00,0:00:05.00,Danmaku,,0,0,0,,fly-by comment
`

const sampleSRT = `1
00:00:07,560 --> 00:00:08,300
你好
`

func mergeStyle() config.Merge {
	cfg := config.Default()
	return cfg.Merge
}

func TestInjectCuesAddsStyleAndDialogues(t *testing.T) {
	cues := subtitles.ParseSRT(sampleSRT)
	merged, err := subtitles.InjectCues(sampleASS, cues, mergeStyle())
	if err != nil {
		t.Fatalf("InjectCues returned error: %v", err)
	}

	lines := strings.Split(merged, "\n")
	styleIdx, eventsIdx, dialogueIdx := -1, -1, -1
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "Style: Subtitle,黑体,42,"):
			styleIdx = i
		case strings.TrimSpace(line) == "[Events]":
			eventsIdx = i
		case strings.HasPrefix(line, "Dialogue: 0,0:00:07.56,0:00:08.30,Subtitle,"):
			dialogueIdx = i
		}
	}
	if styleIdx == -1 {
		t.Fatalf("subtitle style missing:\n%s", merged)
	}
	if eventsIdx == -1 || styleIdx > eventsIdx {
		t.Fatalf("style should precede [Events]: style=%d events=%d", styleIdx, eventsIdx)
	}
	if dialogueIdx == -1 || dialogueIdx < eventsIdx {
		t.Fatalf("SRT dialogue should land inside events: dialogue=%d events=%d", dialogueIdx, eventsIdx)
	}
	if !strings.Contains(merged, ",90,1") {
		t.Fatalf("expected configured vertical margin in style line:\n%s", merged)
	}
}

func TestInjectCuesRejectsInputWithoutEvents(t *testing.T) {
	if _, err := subtitles.InjectCues("[Script Info]\nTitle: x\n", subtitles.ParseSRT(sampleSRT), mergeStyle()); err == nil {
		t.Fatal("expected error for ASS input without [Events]")
	}
}

func TestMergedPathCarriesLanguageSuffix(t *testing.T) {
	got := subtitles.MergedPath("/v/ep01.danmaku.ass", "/v/ep01.zh-CN.srt")
	if got != "/v/ep01.zh-CN.merged.ass" {
		t.Fatalf("unexpected path: %q", got)
	}
	got = subtitles.MergedPath("/v/ep01.danmaku.ass", "/v/other.srt")
	if got != "/v/ep01.merged.ass" {
		t.Fatalf("unexpected fallback path: %q", got)
	}
}

func TestMatchingSubtitlesFindsLanguageVariants(t *testing.T) {
	dir := t.TempDir()
	ass := filepath.Join(dir, "ep01.danmaku.ass")
	for _, name := range []string{"ep01.danmaku.ass", "ep01.zh-CN.srt", "ep01.ai-zh.srt", "ep02.zh-CN.srt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	matches, err := subtitles.MatchingSubtitles(ass)
	if err != nil {
		t.Fatalf("MatchingSubtitles returned error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %v", matches)
	}
	for _, match := range matches {
		if strings.Contains(match, "ep02") {
			t.Fatalf("matched wrong episode: %v", matches)
		}
	}
}

func TestMergerRunWritesMergedOutputs(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "season1")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "ep01.danmaku.ass"), []byte(sampleASS), 0o644); err != nil {
		t.Fatalf("write ass: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "ep01.zh-CN.srt"), []byte(sampleSRT), 0o644); err != nil {
		t.Fatalf("write srt: %v", err)
	}
	// No subtitles for this one; it must count as skipped.
	if err := os.WriteFile(filepath.Join(sub, "ep02.danmaku.ass"), []byte(sampleASS), 0o644); err != nil {
		t.Fatalf("write ass: %v", err)
	}

	merger := subtitles.NewMerger(mergeStyle(), logging.NewNop())
	summary, err := merger.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Merged != 1 || summary.Skipped != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	out := filepath.Join(sub, "ep01.zh-CN.merged.ass")
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read merged output: %v", err)
	}
	if !strings.Contains(string(data), "你好") {
		t.Fatalf("merged output missing subtitle text:\n%s", data)
	}
}

func TestReadTextFileFallsBackToGBK(t *testing.T) {
	encoded, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte("弹幕测试"))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "gbk.srt")
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	content, err := subtitles.ReadTextFile(path)
	if err != nil {
		t.Fatalf("ReadTextFile returned error: %v", err)
	}
	if content != "弹幕测试" {
		t.Fatalf("unexpected decoded content: %q", content)
	}
}
