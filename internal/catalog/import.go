package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// legacyConfig matches the config.json layout the Python downloader kept its
// entries in before the catalog moved to SQLite.
type legacyConfig struct {
	DownloadConfigs []legacyEntry `json:"download_configs"`
}

type legacyEntry struct {
	DownloadPath string   `json:"download_path"`
	Description  string   `json:"description"`
	URLs         []string `json:"urls"`
}

// ImportLegacy reads a legacy config.json and inserts its download_configs as
// catalog entries. Entries missing a path, description, or URLs are skipped.
// It returns the number imported and the number skipped.
func (s *Store) ImportLegacy(ctx context.Context, path string) (imported, skipped int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("read legacy config: %w", err)
	}

	var legacy legacyConfig
	if err := json.Unmarshal(data, &legacy); err != nil {
		return 0, 0, fmt.Errorf("parse legacy config: %w", err)
	}

	for _, entry := range legacy.DownloadConfigs {
		if _, addErr := s.Add(ctx, entry.Description, entry.DownloadPath, entry.URLs); addErr != nil {
			skipped++
			continue
		}
		imported++
	}
	return imported, skipped, nil
}
