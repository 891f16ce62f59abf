package danmaku

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"danmuflow/internal/logging"
)

// Converter turns one danmaku XML file into an ASS track. The danmu2ass
// client satisfies this.
type Converter interface {
	Convert(ctx context.Context, xmlPath string) (string, error)
}

// Summary tallies one batch conversion run.
type Summary struct {
	Found     int
	Converted int
	Failed    int
}

// Batch walks a directory tree converting every danmaku XML file it finds.
type Batch struct {
	converter Converter
	logger    *slog.Logger
}

// NewBatch constructs a batch conversion run over the provided converter.
func NewBatch(converter Converter, logger *slog.Logger) *Batch {
	return &Batch{converter: converter, logger: logging.WithComponent(logger, "converter")}
}

// Run converts all XML files under root. Individual failures are logged and
// tallied; the walk continues. Finding no XML files is a successful no-op.
func (b *Batch) Run(ctx context.Context, root string) (Summary, error) {
	var summary Summary

	xmlFiles, err := findXML(root)
	if err != nil {
		return summary, err
	}
	summary.Found = len(xmlFiles)
	b.logger.Info("scan complete", slog.String("dir", root), slog.Int("xml_files", len(xmlFiles)))

	for _, xmlPath := range xmlFiles {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		assPath, err := b.converter.Convert(ctx, xmlPath)
		if err != nil {
			b.logger.Warn("conversion failed", slog.String("file", xmlPath), slog.Any("error", err))
			summary.Failed++
			continue
		}
		b.logger.Info("converted", slog.String("input", filepath.Base(xmlPath)), slog.String("output", filepath.Base(assPath)))
		summary.Converted++
	}
	return summary, nil
}

func findXML(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(d.Name()), ".xml") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
