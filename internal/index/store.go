// ============================================================================
// tabwerk - Robot Framework Testdaten-Werkzeug
// ============================================================================
//
// Package:     index
// Description: SQLite index of the section trees of parsed files
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package index stores the section trees of test data files in SQLite so
// tools can list files and look up sections without parsing again.
package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/msto63/tabwerk/internal/robot/section"
	"github.com/msto63/tabwerk/pkg/core/logging"
)

// ErrEmptyPath is returned for operations without a file path
var ErrEmptyPath = errors.New("empty file path")

// FileInfo describes an indexed file
type FileInfo struct {
	Path      string
	Format    string
	IndexedAt time.Time
	RunID     string
	Sections  int
}

// Entry is one section of an indexed file. Parent is the ordinal of the
// enclosing section, -1 for top level sections.
type Entry struct {
	Ordinal   int
	Parent    int
	Depth     int
	Type      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// Store defines the interface for section persistence
type Store interface {
	IndexFile(ctx context.Context, path, format string, roots []*section.Section) (string, error)
	Sections(ctx context.Context, path string) ([]Entry, error)
	Files(ctx context.Context) ([]FileInfo, error)
	Remove(ctx context.Context, path string) error
	Vacuum(ctx context.Context) error
	Close() error
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	logger *logging.Logger
}

// Config holds configuration for the SQLite store
type Config struct {
	Path   string
	Logger *logging.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path: "./data/index.db",
	}
}

// NewSQLiteStore creates a new SQLite-based section index
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("index database: %w", ErrEmptyPath)
	}

	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{
		db:     db,
		logger: logging.OrDiscard(cfg.Logger).With("component", "index"),
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS files (
		path TEXT PRIMARY KEY,
		format TEXT NOT NULL,
		indexed_at DATETIME NOT NULL,
		run_id TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sections (
		file_path TEXT NOT NULL REFERENCES files(path) ON DELETE CASCADE,
		ordinal INTEGER NOT NULL,
		parent INTEGER NOT NULL,
		depth INTEGER NOT NULL,
		type TEXT NOT NULL,
		start_line INTEGER NOT NULL,
		start_col INTEGER NOT NULL,
		end_line INTEGER NOT NULL,
		end_col INTEGER NOT NULL,
		PRIMARY KEY (file_path, ordinal)
	);

	CREATE INDEX IF NOT EXISTS idx_sections_type ON sections(type);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Flatten numbers the sections of a tree in depth first order
func Flatten(roots []*section.Section) []Entry {
	var out []Entry
	var walk func(s *section.Section, parent, depth int)
	walk = func(s *section.Section, parent, depth int) {
		ordinal := len(out)
		out = append(out, Entry{
			Ordinal:   ordinal,
			Parent:    parent,
			Depth:     depth,
			Type:      s.Type.String(),
			StartLine: s.Start.Line,
			StartCol:  s.Start.Column,
			EndLine:   s.End.Line,
			EndCol:    s.End.Column,
		})
		for _, c := range s.Children {
			walk(c, ordinal, depth+1)
		}
	}
	for _, r := range roots {
		walk(r, -1, 0)
	}
	return out
}

// IndexFile replaces the sections stored for path and returns the run id
// of this indexing run
func (s *SQLiteStore) IndexFile(ctx context.Context, path, format string, roots []*section.Section) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	runID := uuid.NewString()
	entries := Flatten(roots)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sections WHERE file_path = ?`, path); err != nil {
		return "", fmt.Errorf("failed to clear sections: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO files (path, format, indexed_at, run_id) VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET format = excluded.format,
			indexed_at = excluded.indexed_at, run_id = excluded.run_id
	`, path, format, time.Now().UTC(), runID); err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sections (file_path, ordinal, parent, depth, type, start_line, start_col, end_line, end_col)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, path, e.Ordinal, e.Parent, e.Depth, e.Type,
			e.StartLine, e.StartCol, e.EndLine, e.EndCol); err != nil {
			return "", fmt.Errorf("failed to insert section %d: %w", e.Ordinal, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Debug("file indexed", "file", path, "run_id", runID, "sections", len(entries))
	return runID, nil
}

// Sections returns the stored sections of path in depth first order
func (s *SQLiteStore) Sections(ctx context.Context, path string) ([]Entry, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT ordinal, parent, depth, type, start_line, start_col, end_line, end_col
		FROM sections WHERE file_path = ? ORDER BY ordinal
	`, path)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Ordinal, &e.Parent, &e.Depth, &e.Type,
			&e.StartLine, &e.StartCol, &e.EndLine, &e.EndCol); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Files returns all indexed files ordered by path
func (s *SQLiteStore) Files(ctx context.Context) ([]FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT f.path, f.format, f.indexed_at, f.run_id, COUNT(s.ordinal)
		FROM files f LEFT JOIN sections s ON s.file_path = f.path
		GROUP BY f.path ORDER BY f.path
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	var files []FileInfo
	for rows.Next() {
		var f FileInfo
		if err := rows.Scan(&f.Path, &f.Format, &f.IndexedAt, &f.RunID, &f.Sections); err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// Remove deletes path and its sections from the index
func (s *SQLiteStore) Remove(ctx context.Context, path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sections WHERE file_path = ?`, path); err != nil {
		return fmt.Errorf("failed to delete sections: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM files WHERE path = ?`, path); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return tx.Commit()
}

// Vacuum compacts the database
func (s *SQLiteStore) Vacuum(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "VACUUM")
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
