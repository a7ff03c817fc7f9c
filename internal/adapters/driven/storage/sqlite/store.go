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
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/graphidx/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
)

// dbFile is the database file name inside the base directory.
const dbFile = "storage.db"

// Store owns the SQLite database connection.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the database at dataDir/storage.db and runs migrations.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("%w: sqlite storage requires a base directory", domain.ErrInvalidInput)
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
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

// New builds a sqlite storage from registry options.
// Supported options:
//   - base_dir (string): directory holding storage.db
func New(opts map[string]any) (driven.Storage, error) {
	dir, _ := opts["base_dir"].(string)
	store, err := NewStore(dir)
	if err != nil {
		return nil, err
	}
	return store.Storage(), nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Storage returns the root storage backed by this store.
func (s *Store) Storage() *Storage {
	return &Storage{store: s}
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
		// Extract version number (e.g., "001_storage_items.up.sql" -> 1)
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

// ==================== Storage ====================

// Ensure Storage implements the interface.
var _ driven.Storage = (*Storage)(nil)

// Storage implements driven.Storage over the storage_items table.
type Storage struct {
	store  *Store
	prefix string
}

// Has reports whether key exists.
func (s *Storage) Has(ctx context.Context, key string) (bool, error) {
	var one int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT 1 FROM storage_items WHERE key = ?", s.prefix+key).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", key, err)
	}
	return true, nil
}

// Get returns the value stored at key.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.store.db.QueryRowContext(ctx,
		"SELECT value FROM storage_items WHERE key = ?", s.prefix+key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

// Set stores value at key.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO storage_items (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, s.prefix+key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if _, err := s.store.db.ExecContext(ctx,
		"DELETE FROM storage_items WHERE key = ?", s.prefix+key); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// Keys returns keys with the given prefix, sorted, relative to this storage.
func (s *Storage) Keys(ctx context.Context, prefix string) ([]string, error) {
	full := s.prefix + prefix
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT key FROM storage_items
		WHERE substr(key, 1, length(?)) = ?
		ORDER BY key
	`, full, full)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, strings.TrimPrefix(key, s.prefix))
	}
	return keys, rows.Err()
}

// Clear removes every key in this storage, including keys of child storages.
func (s *Storage) Clear(ctx context.Context) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM storage_items WHERE substr(key, 1, length(?)) = ?", s.prefix, s.prefix)
	if err != nil {
		return fmt.Errorf("clearing storage: %w", err)
	}
	return nil
}

// Child returns a storage whose keys live under name/ in this storage.
func (s *Storage) Child(name string) driven.Storage {
	if name == "" {
		return s
	}
	return &Storage{
		store:  s.store,
		prefix: s.prefix + strings.Trim(name, "/") + "/",
	}
}

// Close closes the underlying database.
func (s *Storage) Close() error {
	return s.store.Close()
}
