package subtitles

import (
	"context"
	"log/slog"
	"os"
)

// CleanResult reports a cleanup run over generated merge outputs.
type CleanResult struct {
	Deleted int
	Failed  int
}

// FindMerged returns every .merged.ass file under root.
func FindMerged(root string) ([]string, error) {
	return FindWithSuffix(root, MergedSuffix)
}

// DeleteMerged removes the provided files, logging and counting failures
// instead of stopping at the first one.
func DeleteMerged(ctx context.Context, logger *slog.Logger, files []string) CleanResult {
	var result CleanResult
	for _, path := range files {
		if ctx.Err() != nil {
			return result
		}
		if err := os.Remove(path); err != nil {
			logger.Warn("delete failed", slog.String("file", path), slog.Any("error", err))
			result.Failed++
			continue
		}
		logger.Info("deleted", slog.String("file", path))
		result.Deleted++
	}
	return result
}
