package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/OpertusMundi/frontend-admin-sub000/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driven"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/logger"
)

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// timeLayout is fixed-width UTC so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store owns the drafter.db connection shared by the draft and scheduler stores.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens drafter.db in dataDir, creating the directory and
// migrating the schema as needed. An empty dataDir means ~/.drafter/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".drafter", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "drafter.db")

	// WAL lets the autosave scheduler write while the CLI reads.
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

// DraftStore returns the offline Persistence API.
func (s *Store) DraftStore() driven.DraftStore {
	return newDraftStore(s)
}

// SchedulerStore returns the autosave task store.
func (s *Store) SchedulerStore() driven.SchedulerStore {
	return &schedulerStore{store: s}
}

// migration is one NNN_name.up.sql file.
type migration struct {
	version int
	name    string
}

// pendingMigrations lists the up migrations in fsys newer than after,
// oldest first. Files without a numeric prefix are ignored.
func pendingMigrations(fsys fs.FS, after int) ([]migration, error) {
	names, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return nil, err
	}
	var out []migration
	for _, name := range names {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil || version <= after {
			continue
		}
		out = append(out, migration{version: version, name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

// SchemaVersion returns the newest applied migration, or 0.
func (s *Store) SchemaVersion() (int, error) {
	var v int
	err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v)
	return v, err
}

// migrate brings the schema up to the newest migration in fsys.
func (s *Store) migrate(fsys fs.FS) error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}

	current, err := s.SchemaVersion()
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	pending, err := pendingMigrations(fsys, current)
	if err != nil {
		return fmt.Errorf("listing migrations: %w", err)
	}
	for _, m := range pending {
		script, err := fs.ReadFile(fsys, m.name)
		if err != nil {
			return fmt.Errorf("reading %s: %w", m.name, err)
		}
		if err := s.apply(m.version, string(script)); err != nil {
			return fmt.Errorf("applying %s: %w", m.name, err)
		}
		logger.Debug("sqlite: applied migration %s", m.name)
	}
	return nil
}

// apply runs one migration script and records its version atomically.
func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}
