package journal

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
// changes; existing databases must be removed to adopt the new schema.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by an incompatible
// version of this tool.
var ErrSchemaMismatch = errors.New("journal schema version mismatch")

// Entry is one journaled operation.
type Entry struct {
	ID        string
	Operation string
	Detail    string
	Inputs    []string
	Outputs   []string
	CreatedAt time.Time
}

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
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

// Path returns the database location.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create journal schema: %w", err)
		}
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// Append records one completed operation.
func (s *Store) Append(ctx context.Context, operation, detail string, inputs, outputs []string) (*Entry, error) {
	entry := &Entry{
		ID:        uuid.NewString(),
		Operation: operation,
		Detail:    detail,
		Inputs:    inputs,
		Outputs:   outputs,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO operations (id, operation, detail, inputs, outputs, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Operation,
		entry.Detail,
		joinPaths(entry.Inputs),
		joinPaths(entry.Outputs),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("append journal entry: %w", err)
	}
	return entry, nil
}

// List returns the most recent entries, newest first. limit <= 0 lists all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := "SELECT id, operation, detail, inputs, outputs, created_at FROM operations ORDER BY created_at DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var inputs, outputs, created string
		if err := rows.Scan(&entry.ID, &entry.Operation, &entry.Detail, &inputs, &outputs, &created); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entry.Inputs = splitPaths(inputs)
		entry.Outputs = splitPaths(outputs)
		if ts, parseErr := time.Parse(time.RFC3339Nano, created); parseErr == nil {
			entry.CreatedAt = ts
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Paths are newline-joined; file paths cannot contain newlines.
func joinPaths(paths []string) string { return strings.Join(paths, "\n") }

func splitPaths(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, "\n")
}
