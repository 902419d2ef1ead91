package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/replaca-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/replaca-cli/internal/core/domain"
	"github.com/custodia-labs/replaca-cli/internal/core/ports/driven"
)

// Ensure Store implements the container interface.
var _ driven.Container = (*Store)(nil)

// Store is a SQLite-backed book: documents in display order plus
// checkpoint snapshots.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.replaca/data/book.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".replaca", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "book.db")

	// WAL mode for better concurrency with the host
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Checkpoints returns a CheckpointCoordinator backed by this store.
func (s *Store) Checkpoints() driven.CheckpointCoordinator {
	return &checkpointStore{store: s}
}

// KeptCheckpoints returns the committed checkpoints, oldest first.
func (s *Store) KeptCheckpoints(ctx context.Context) ([]domain.Checkpoint, error) {
	return (&checkpointStore{store: s}).Kept(ctx)
}

// RestoreCheckpoint rewinds the documents to the kept checkpoint with
// the given ID and removes it.
func (s *Store) RestoreCheckpoint(ctx context.Context, id string) error {
	return (&checkpointStore{store: s}).Restore(ctx, domain.Checkpoint{ID: id})
}

// Import loads documents into the store in the given order, replacing
// any existing book.
func (s *Store) Import(ctx context.Context, refs []domain.DocumentRef, text map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return fmt.Errorf("clearing documents: %w", err)
	}
	for i, ref := range refs {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO documents (name, category, position, content) VALUES (?, ?, ?, ?)",
			ref.Name, ref.Category.String(), i, text[ref.Name])
		if err != nil {
			return fmt.Errorf("inserting %s: %w", ref.Name, err)
		}
	}
	return tx.Commit()
}

// List returns every document in display order.
func (s *Store) List(ctx context.Context) ([]domain.DocumentRef, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, category FROM documents ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var refs []domain.DocumentRef
	for rows.Next() {
		var name, category string
		if err := rows.Scan(&name, &category); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		refs = append(refs, domain.DocumentRef{Name: name, Category: domain.Category(category)})
	}
	return refs, rows.Err()
}

// RawText reads a document's persisted text.
func (s *Store) RawText(ctx context.Context, name string) (string, error) {
	var content string
	err := s.db.QueryRowContext(ctx,
		"SELECT content FROM documents WHERE name = ?", name).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("document %s: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return content, nil
}

// WriteRawText overwrites a document's persisted text.
func (s *Store) WriteRawText(ctx context.Context, name string, text string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE documents SET content = ?, updated_at = CURRENT_TIMESTAMP WHERE name = ?",
		text, name)
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("document %s: %w", name, domain.ErrNotFound)
	}
	return nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}
