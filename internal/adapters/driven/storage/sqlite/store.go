package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/servilink/servilink-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/servilink/servilink-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.SessionStore = (*Store)(nil)

const (
	// DBFileName is the database file inside the data directory.
	DBFileName = "session.db"

	keyToken   = "token"
	keyProfile = "user"
)

// Store is a SQLite-backed SessionStore.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.servilink/data/session.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".servilink", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)

	// WAL lets the TUI read while the CLI writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// migrate applies pending migrations. The migrate instance is not closed
// because that would close the shared *sql.DB.
func (s *Store) migrate() error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("reading migrations: %w", err)
	}
	drv, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", drv)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored token and profile. Missing entries are empty.
func (s *Store) Load(ctx context.Context) (string, []byte, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM session_entries WHERE key IN (?, ?)`, keyToken, keyProfile)
	if err != nil {
		return "", nil, fmt.Errorf("loading session: %w", err)
	}
	defer rows.Close()

	var token string
	var profile []byte
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return "", nil, fmt.Errorf("scanning session entry: %w", err)
		}
		switch key {
		case keyToken:
			token = string(value)
		case keyProfile:
			profile = value
		}
	}
	if err := rows.Err(); err != nil {
		return "", nil, fmt.Errorf("iterating session entries: %w", err)
	}
	return token, profile, nil
}

// Save writes token and profile in one transaction.
func (s *Store) Save(ctx context.Context, token string, profile []byte) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := upsert(ctx, tx, keyToken, token); err != nil {
			return err
		}
		return upsert(ctx, tx, keyProfile, string(profile))
	})
}

// SaveProfile replaces the profile and keeps the token.
func (s *Store) SaveProfile(ctx context.Context, profile []byte) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return upsert(ctx, tx, keyProfile, string(profile))
	})
}

// Clear removes both entries in one transaction.
func (s *Store) Clear(ctx context.Context) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM session_entries WHERE key IN (?, ?)`, keyToken, keyProfile)
		if err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
		return nil
	})
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func upsert(ctx context.Context, tx *sql.Tx, key, value string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO session_entries (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
