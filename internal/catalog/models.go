package catalog

import (
	"strings"
	"time"
)

// RunStatus records the outcome of the most recent download run for an entry.
type RunStatus string

const (
	StatusNever  RunStatus = "never"
	StatusOK     RunStatus = "ok"
	StatusFailed RunStatus = "failed"
)

var statusSet = map[RunStatus]struct{}{
	StatusNever:  {},
	StatusOK:     {},
	StatusFailed: {},
}

// Valid reports whether the status is one of the known values.
func (s RunStatus) Valid() bool {
	_, ok := statusSet[s]
	return ok
}

// Entry is one configured download group: a destination directory, a
// human-readable description, and the URLs fetched into it.
type Entry struct {
	ID          int64
	Description string
	DownloadDir string
	URLs        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastStatus  RunStatus
	LastRunAt   *time.Time
}

// Normalize trims fields and drops blank URLs in place.
func (e *Entry) Normalize() {
	e.Description = strings.TrimSpace(e.Description)
	e.DownloadDir = strings.TrimSpace(e.DownloadDir)
	urls := e.URLs[:0]
	for _, u := range e.URLs {
		if trimmed := strings.TrimSpace(u); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	e.URLs = urls
	if !e.LastStatus.Valid() {
		e.LastStatus = StatusNever
	}
}
