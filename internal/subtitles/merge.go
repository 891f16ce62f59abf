package subtitles

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"danmuflow/internal/config"
	"danmuflow/internal/logging"
)

// DanmakuSuffix marks ASS files produced from danmaku XML.
const DanmakuSuffix = ".danmaku.ass"

// MergedSuffix marks merged overlay files so the cleaner can find them.
const MergedSuffix = ".merged.ass"

// SubtitleStyleName is the ASS style the merger binds SRT cues to.
const SubtitleStyleName = "Subtitle"

// Summary tallies one merge run.
type Summary struct {
	Merged  int
	Skipped int
}

// Merger combines danmaku ASS tracks with sibling SRT subtitle files.
type Merger struct {
	style  config.Merge
	logger *slog.Logger
}

// NewMerger constructs a merger using the [merge] style settings.
func NewMerger(style config.Merge, logger *slog.Logger) *Merger {
	return &Merger{style: style, logger: logging.WithComponent(logger, "merger")}
}

// Run scans root for danmaku ASS files and merges each with every matching
// SRT sibling, writing .merged.ass outputs next to the sources. Existing
// outputs are overwritten. Files that cannot be read or parsed are counted
// as skipped; the run keeps going.
func (m *Merger) Run(ctx context.Context, root string) (Summary, error) {
	var summary Summary

	assFiles, err := FindWithSuffix(root, DanmakuSuffix)
	if err != nil {
		return summary, err
	}
	m.logger.Info("scan complete", slog.String("dir", root), slog.Int("danmaku_files", len(assFiles)))

	for _, assPath := range assFiles {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		srtFiles, err := MatchingSubtitles(assPath)
		if err != nil {
			m.logger.Warn("subtitle lookup failed", slog.String("file", assPath), slog.Any("error", err))
			summary.Skipped++
			continue
		}
		if len(srtFiles) == 0 {
			m.logger.Info("no matching subtitles", slog.String("file", assPath))
			summary.Skipped++
			continue
		}

		for _, srtPath := range srtFiles {
			outPath := MergedPath(assPath, srtPath)
			if err := m.mergeOne(assPath, srtPath, outPath); err != nil {
				m.logger.Warn("merge failed", slog.String("ass", assPath), slog.String("srt", srtPath), slog.Any("error", err))
				summary.Skipped++
				continue
			}
			m.logger.Info("merged", slog.String("output", outPath))
			summary.Merged++
		}
	}
	return summary, nil
}

func (m *Merger) mergeOne(assPath, srtPath, outPath string) error {
	assContent, err := ReadTextFile(assPath)
	if err != nil {
		return err
	}
	srtContent, err := ReadTextFile(srtPath)
	if err != nil {
		return err
	}

	cues := ParseSRT(srtContent)
	if len(cues) == 0 {
		return fmt.Errorf("no cues found in %s", srtPath)
	}

	merged, err := InjectCues(assContent, cues, m.style)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, []byte(merged), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}

// InjectCues adds a Subtitle style under [V4+ Styles] and appends the cues as
// Dialogue lines inside the [Events] section.
func InjectCues(assContent string, cues []Cue, style config.Merge) (string, error) {
	lines := strings.Split(assContent, "\n")

	stylesSeen := false
	eventsSeen := false
	injected := false
	out := make([]string, 0, len(lines)+len(cues)+1)

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "[V4+ Styles]":
			stylesSeen = true
			out = append(out, line)
		case trimmed == "[Events]":
			eventsSeen = true
			if stylesSeen {
				out = append(out, styleLine(style))
			}
			out = append(out, line)
		case eventsSeen && !injected && strings.HasPrefix(trimmed, "["):
			// A section follows [Events]; the cues belong before it.
			for _, cue := range cues {
				out = append(out, cue.Dialogue(SubtitleStyleName))
			}
			injected = true
			out = append(out, line)
		default:
			out = append(out, line)
		}
	}

	if !eventsSeen {
		return "", fmt.Errorf("no [Events] section in ASS input")
	}
	if !injected {
		for _, cue := range cues {
			out = append(out, cue.Dialogue(SubtitleStyleName))
		}
	}
	return strings.Join(out, "\n"), nil
}

func styleLine(style config.Merge) string {
	return fmt.Sprintf(
		"Style: %s,%s,%d,&H00FFFFFF,&H00FFFFFF,&H00000000,&H80000000,1,0,0,0,100,100,0.00,0.00,1,2.0,0,2,20,20,%d,1",
		SubtitleStyleName, style.SubtitleFont, style.SubtitleFontSize, style.SubtitleMarginV,
	)
}

// MatchingSubtitles returns the SRT files that share the danmaku file's base
// name, sorted and deduplicated.
func MatchingSubtitles(assPath string) ([]string, error) {
	base := strings.TrimSuffix(assPath, DanmakuSuffix)
	matches, err := filepath.Glob(base + ".*.srt")
	if err != nil {
		return nil, fmt.Errorf("glob subtitles for %s: %w", assPath, err)
	}
	if direct, err := filepath.Glob(base + ".srt"); err == nil {
		matches = append(matches, direct...)
	}

	seen := make(map[string]struct{}, len(matches))
	unique := matches[:0]
	for _, match := range matches {
		if _, ok := seen[match]; ok {
			continue
		}
		seen[match] = struct{}{}
		unique = append(unique, match)
	}
	sort.Strings(unique)
	return unique, nil
}

// MergedPath builds the output name, carrying the SRT's language suffix when
// present: ep01.danmaku.ass + ep01.zh-CN.srt -> ep01.zh-CN.merged.ass.
func MergedPath(assPath, srtPath string) string {
	dir := filepath.Dir(assPath)
	assBase := strings.TrimSuffix(filepath.Base(assPath), DanmakuSuffix)
	srtBase := strings.TrimSuffix(filepath.Base(srtPath), ".srt")

	if strings.HasPrefix(srtBase, assBase) {
		lang := strings.TrimPrefix(strings.TrimPrefix(srtBase, assBase), ".")
		if lang != "" {
			return filepath.Join(dir, assBase+"."+lang+MergedSuffix)
		}
	}
	return filepath.Join(dir, assBase+MergedSuffix)
}

// FindWithSuffix walks root collecting files whose names end in suffix.
func FindWithSuffix(root, suffix string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), suffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}
