// Package postgres implements the storefront repositories on PostgreSQL
// through lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/msomdec/freshshop/internal/domain"
	"github.com/msomdec/freshshop/internal/repository/migrate"
	"github.com/msomdec/freshshop/internal/repository/postgres/migrations"
)

// PoolConfig bounds the connection pool.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DB wraps a PostgreSQL connection pool and hands out repositories.
type DB struct {
	SqlDB *sql.DB

	users    *UserRepository
	contacts *ContactRepository
	sessions *SessionStore
}

// Open connects to PostgreSQL with the given connection string.
func Open(ctx context.Context, dsn string, pool PoolConfig) (*DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return Wrap(sqlDB), nil
}

// Wrap builds a DB around an existing handle.
func Wrap(sqlDB *sql.DB) *DB {
	return &DB{
		SqlDB:    sqlDB,
		users:    &UserRepository{db: sqlDB},
		contacts: &ContactRepository{db: sqlDB},
		sessions: &SessionStore{db: sqlDB},
	}
}

// Migrate applies the embedded PostgreSQL migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrate.Run(ctx, db.SqlDB, migrations.FS, migrate.Postgres)
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

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation pq.ErrorCode = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
