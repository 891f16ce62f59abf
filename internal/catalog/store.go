package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"danmuflow/internal/config"
)

// ErrEntryNotFound indicates a lookup for an entry id that does not exist.
var ErrEntryNotFound = errors.New("catalog entry not found")

// Store manages download entry persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk database location.
func (s *Store) Path() string {
	return s.path
}

// Add inserts a new download entry and returns the stored row.
func (s *Store) Add(ctx context.Context, description, downloadDir string, urls []string) (*Entry, error) {
	entry := Entry{Description: description, DownloadDir: downloadDir, URLs: urls}
	entry.Normalize()
	if entry.DownloadDir == "" {
		return nil, errors.New("download directory is required")
	}
	if entry.Description == "" {
		return nil, errors.New("description is required")
	}
	if len(entry.URLs) == 0 {
		return nil, errors.New("at least one URL is required")
	}

	urlsJSON, err := json.Marshal(entry.URLs)
	if err != nil {
		return nil, fmt.Errorf("encode urls: %w", err)
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO entries (description, download_dir, urls, created_at, updated_at, last_status)
         VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Description,
		entry.DownloadDir,
		string(urlsJSON),
		timestamp,
		timestamp,
		StatusNever,
	)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID returns the entry with the provided id.
func (s *Store) GetByID(ctx context.Context, id int64) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" FROM entries WHERE id = ?", id)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrEntryNotFound, id)
		}
		return nil, err
	}
	return entry, nil
}

// List returns all entries ordered by id.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" FROM entries ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// Subset returns the entries matching the provided ids, in ascending id
// order. Any id without a matching entry produces ErrEntryNotFound.
func (s *Store) Subset(ctx context.Context, ids []int64) ([]Entry, error) {
	if len(ids) == 0 {
		return nil, errors.New("no entry ids provided")
	}

	unique := make(map[int64]struct{}, len(ids))
	ordered := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := unique[id]; ok {
			continue
		}
		unique[id] = struct{}{}
		ordered = append(ordered, id)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ordered)), ",")
	args := make([]any, len(ordered))
	for i, id := range ordered {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, selectColumns+" FROM entries WHERE id IN ("+placeholders+") ORDER BY id", args...)
	if err != nil {
		return nil, fmt.Errorf("select subset: %w", err)
	}
	defer rows.Close()

	found := make(map[int64]struct{}, len(ordered))
	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		found[entry.ID] = struct{}{}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, id := range ordered {
		if _, ok := found[id]; !ok {
			return nil, fmt.Errorf("%w: id %d", ErrEntryNotFound, id)
		}
	}
	return entries, nil
}

// MarkResult records the outcome of a download run for an entry.
func (s *Store) MarkResult(ctx context.Context, id int64, status RunStatus, at time.Time) error {
	if !status.Valid() {
		return fmt.Errorf("invalid run status %q", status)
	}
	timestamp := at.UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		"UPDATE entries SET last_status = ?, last_run_at = ?, updated_at = ? WHERE id = ?",
		status, timestamp, timestamp, id,
	)
	if err != nil {
		return fmt.Errorf("mark result: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrEntryNotFound, id)
	}
	return nil
}

// Remove deletes an entry.
func (s *Store) Remove(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrEntryNotFound, id)
	}
	return nil
}

const selectColumns = "SELECT id, description, download_dir, urls, created_at, updated_at, last_status, last_run_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var (
		entry     Entry
		urlsJSON  string
		createdAt string
		updatedAt string
		status    string
		lastRunAt sql.NullString
	)
	if err := row.Scan(&entry.ID, &entry.Description, &entry.DownloadDir, &urlsJSON, &createdAt, &updatedAt, &status, &lastRunAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(urlsJSON), &entry.URLs); err != nil {
		return nil, fmt.Errorf("decode urls for entry %d: %w", entry.ID, err)
	}
	var err error
	if entry.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("entry %d created_at: %w", entry.ID, err)
	}
	if entry.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("entry %d updated_at: %w", entry.ID, err)
	}
	entry.LastStatus = RunStatus(status)
	if !entry.LastStatus.Valid() {
		entry.LastStatus = StatusNever
	}
	if lastRunAt.Valid && strings.TrimSpace(lastRunAt.String) != "" {
		at, err := parseTimestamp(lastRunAt.String)
		if err != nil {
			return nil, fmt.Errorf("entry %d last_run_at: %w", entry.ID, err)
		}
		entry.LastRunAt = &at
	}
	return &entry, nil
}

func parseTimestamp(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, value)
}
