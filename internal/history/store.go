package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users then need to delete the history database.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Entry records one completed rename.
type Entry struct {
	ID          int64
	BatchID     string
	SourcePath  string
	TargetPath  string
	Action      string
	DisplayName string
	Reverted    bool
	CreatedAt   time.Time
}

// Store manages rename history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("history database path required")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
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

	store := &Store{db: db, path: path}
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

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// NewBatchID returns a fresh identifier grouping the entries of one run.
func NewBatchID() string {
	return uuid.NewString()
}

// Append records completed renames under the given batch id.
func (s *Store) Append(ctx context.Context, batchID string, entries []Entry) error {
	ctx = ensureContext(ctx)
	if strings.TrimSpace(batchID) == "" {
		return errors.New("batch id required")
	}
	if len(entries) == 0 {
		return nil
	}

	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin history tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		now := time.Now().UTC().Format(time.RFC3339)
		for _, e := range entries {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO renames (batch_id, source_path, target_path, action, display_name, created_at)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				batchID, e.SourcePath, e.TargetPath, e.Action, e.DisplayName, now,
			); err != nil {
				return fmt.Errorf("insert history entry: %w", err)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit history: %w", err)
		}
		return nil
	})
}

// List returns the most recent entries, newest first. A non-positive limit
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	ctx = ensureContext(ctx)
	query := `SELECT id, batch_id, source_path, target_path, action, display_name, reverted, created_at
	          FROM renames ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Batch returns the entries of one batch in insertion order.
func (s *Store) Batch(ctx context.Context, batchID string) ([]Entry, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, batch_id, source_path, target_path, action, display_name, reverted, created_at
		 FROM renames WHERE batch_id = ? ORDER BY id ASC`, batchID)
	if err != nil {
		return nil, fmt.Errorf("query batch: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// LatestBatchID returns the batch id of the most recent non-reverted entry.
func (s *Store) LatestBatchID(ctx context.Context) (string, error) {
	ctx = ensureContext(ctx)
	var batchID string
	err := s.db.QueryRowContext(ctx,
		"SELECT batch_id FROM renames WHERE reverted = 0 ORDER BY id DESC LIMIT 1",
	).Scan(&batchID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errors.New("history is empty")
	}
	if err != nil {
		return "", fmt.Errorf("query latest batch: %w", err)
	}
	return batchID, nil
}

// MarkReverted flags every entry of a batch as undone.
func (s *Store) MarkReverted(ctx context.Context, batchID string) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			"UPDATE renames SET reverted = 1 WHERE batch_id = ?", batchID)
		return err
	})
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		entry     Entry
		reverted  int
		createdAt string
	)
	if err := rows.Scan(&entry.ID, &entry.BatchID, &entry.SourcePath, &entry.TargetPath,
		&entry.Action, &entry.DisplayName, &reverted, &createdAt); err != nil {
		return Entry{}, fmt.Errorf("scan history entry: %w", err)
	}
	entry.Reverted = reverted != 0
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		entry.CreatedAt = ts
	}
	return entry, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
