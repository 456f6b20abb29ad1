package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/veilworks/anoncheck-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/veilworks/anoncheck-cli/internal/core/domain"
	"github.com/veilworks/anoncheck-cli/internal/core/ports/driven"
)

// Store is a SQLite-based storage that provides the corpus store
// interface through a wrapper type.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.anoncheck/data/corpus.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".anoncheck", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "corpus.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
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

// CorpusStore returns a CorpusStore interface backed by this store.
func (s *Store) CorpusStore() driven.CorpusStore {
	return &corpusStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_corpus.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
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

// ==================== Corpus Store ====================

// corpusStore implements driven.CorpusStore.
type corpusStore struct {
	store *Store
}

var _ driven.CorpusStore = (*corpusStore)(nil)

// Append adds an entry at the end of the corpus.
func (s *corpusStore) Append(ctx context.Context, entry domain.CorpusEntry) error {
	entitiesJSON, err := json.Marshal(entry.Entities)
	if err != nil {
		return fmt.Errorf("marshalling entities: %w", err)
	}
	patternsJSON, err := json.Marshal(entry.LegalPatterns)
	if err != nil {
		return fmt.Errorf("marshalling legal patterns: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO corpus_entries (id, filename, text, entities, legal_patterns)
		VALUES (?, ?, ?, ?, ?)
	`, entry.ID, entry.Filename, entry.Text, string(entitiesJSON), string(patternsJSON))
	if err != nil {
		return fmt.Errorf("appending corpus entry: %w", err)
	}
	return nil
}

// All returns every entry in insertion order.
func (s *corpusStore) All(ctx context.Context) ([]domain.CorpusEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, filename, text, entities, legal_patterns
		FROM corpus_entries
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying corpus: %w", err)
	}
	defer rows.Close()

	var entries []domain.CorpusEntry
	for rows.Next() {
		var (
			entry        domain.CorpusEntry
			entitiesJSON string
			patternsJSON string
		)
		if err := rows.Scan(&entry.ID, &entry.Filename, &entry.Text, &entitiesJSON, &patternsJSON); err != nil {
			return nil, fmt.Errorf("scanning corpus entry: %w", err)
		}
		if err := json.Unmarshal([]byte(entitiesJSON), &entry.Entities); err != nil {
			return nil, fmt.Errorf("unmarshalling entities: %w", err)
		}
		if err := json.Unmarshal([]byte(patternsJSON), &entry.LegalPatterns); err != nil {
			return nil, fmt.Errorf("unmarshalling legal patterns: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating corpus: %w", err)
	}
	return entries, nil
}

// Count returns the number of entries.
func (s *corpusStore) Count(ctx context.Context) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM corpus_entries")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting corpus entries: %w", err)
	}
	return count, nil
}
