package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/msomdec/freshshop/internal/domain"
	"github.com/msomdec/freshshop/internal/repository/migrate"
	"github.com/msomdec/freshshop/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection and hands out the repositories built on it.
type DB struct {
	SqlDB *sql.DB

	users    *UserRepository
	contacts *ContactRepository
	sessions *SessionStore
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite allows one writer; a single pooled connection also keeps
	// :memory: databases shared across queries.
	sqlDB.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read performance.
	if _, err := sqlDB.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := sqlDB.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := sqlDB.PingContext(context.Background()); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db := &DB{SqlDB: sqlDB}
	db.users = NewUserRepository(db)
	db.contacts = NewContactRepository(db)
	db.sessions = NewSessionStore(db)
	return db, nil
}

// Migrate applies the embedded SQLite migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrate.Run(ctx, db.SqlDB, migrations.FS, migrate.SQLite)
}

func (db *DB) Users() domain.UserRepository {
	return db.users
}

func (db *DB) Contacts() domain.ContactRepository {
	return db.contacts
}

func (db *DB) Sessions() domain.SessionStore {
	return db.sessions
}

func (db *DB) Close() error {
	return db.SqlDB.Close()
}
