package downloader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"danmuflow/internal/catalog"
	"danmuflow/internal/config"
	"danmuflow/internal/logging"
)

// ErrRunInProgress indicates another download run holds the library lock.
var ErrRunInProgress = errors.New("another download run is in progress")

// URLDownloader fetches one URL into a directory. The ytdlp client satisfies
// this.
type URLDownloader interface {
	Download(ctx context.Context, url, downloadDir string) error
}

// Summary tallies one download run across catalog entries.
type Summary struct {
	Entries   int
	Succeeded int
	Failed    int
}

// Runner executes download runs over catalog entries, one URL at a time.
type Runner struct {
	store    *catalog.Store
	client   URLDownloader
	logger   *slog.Logger
	lockPath string
}

// New constructs a download runner.
func New(cfg *config.Config, store *catalog.Store, client URLDownloader, logger *slog.Logger) *Runner {
	return &Runner{
		store:    store,
		client:   client,
		logger:   logging.WithComponent(logger, "downloader"),
		lockPath: cfg.LockPath(),
	}
}

// DownloadAll fetches every catalog entry in id order.
func (r *Runner) DownloadAll(ctx context.Context) (Summary, error) {
	entries, err := r.store.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	return r.run(ctx, entries)
}

// DownloadSubset fetches only the entries with the provided ids.
func (r *Runner) DownloadSubset(ctx context.Context, ids []int64) (Summary, error) {
	entries, err := r.store.Subset(ctx, ids)
	if err != nil {
		return Summary{}, err
	}
	return r.run(ctx, entries)
}

// run walks the entries sequentially. A URL failure fails the entry but does
// not stop the remaining URLs or entries. The file lock serializes runs over
// the same library.
func (r *Runner) run(ctx context.Context, entries []catalog.Entry) (Summary, error) {
	var summary Summary
	if len(entries) == 0 {
		r.logger.Warn("no download entries configured")
		return summary, nil
	}

	lock := flock.New(r.lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return summary, fmt.Errorf("acquire download lock: %w", err)
	}
	if !locked {
		return summary, ErrRunInProgress
	}
	defer func() { _ = lock.Unlock() }()

	runLogger := r.logger.With(slog.String(logging.FieldRunID, uuid.NewString()))
	runLogger.Info("download run started", slog.Int("entries", len(entries)))

	summary.Entries = len(entries)
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		entryLogger := runLogger.With(slog.Int64("entry_id", entry.ID))
		entryLogger.Info("processing entry",
			slog.Int("position", i+1),
			slog.String("description", entry.Description),
			slog.Int("urls", len(entry.URLs)),
		)

		entryOK := true
		for j, url := range entry.URLs {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			entryLogger.Info("downloading", slog.Int("url_index", j+1), slog.String("url", url))
			if err := r.client.Download(ctx, url, entry.DownloadDir); err != nil {
				entryLogger.Error("download failed", slog.String("url", url), slog.Any("error", err))
				summary.Failed++
				entryOK = false
				continue
			}
			summary.Succeeded++
		}

		status := catalog.StatusOK
		if !entryOK {
			status = catalog.StatusFailed
		}
		if err := r.store.MarkResult(ctx, entry.ID, status, time.Now()); err != nil {
			entryLogger.Warn("record run result", slog.Any("error", err))
		}
	}

	runLogger.Info("download run finished",
		slog.Int("succeeded", summary.Succeeded),
		slog.Int("failed", summary.Failed),
	)
	return summary, nil
}
