// Package migrate applies embedded SQL migration files and records them in a
// schema_migrations table. Each database backend supplies its own files.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
)

// Dialect holds the statements that differ between backends.
type Dialect struct {
	CreateTable string
	Record      string
}

var SQLite = Dialect{
	CreateTable: `CREATE TABLE IF NOT EXISTS schema_migrations (
		filename TEXT PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	Record: "INSERT INTO schema_migrations (filename) VALUES (?)",
}

var Postgres = Dialect{
	CreateTable: `CREATE TABLE IF NOT EXISTS schema_migrations (
		filename TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	Record: "INSERT INTO schema_migrations (filename) VALUES ($1)",
}

// Run applies all unapplied .sql files from files to the database in
// filename order. Each file runs in its own transaction.
func Run(ctx context.Context, db *sql.DB, files fs.FS, d Dialect) error {
	if _, err := db.ExecContext(ctx, d.CreateTable); err != nil {
		return fmt.Errorf("ensure migrations table: %w", err)
	}

	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		return fmt.Errorf("get applied migrations: %w", err)
	}

	names, err := listFiles(files)
	if err != nil {
		return fmt.Errorf("list migration files: %w", err)
	}

	for _, name := range names {
		if applied[name] {
			slog.Debug("migration already applied", "file", name)
			continue
		}

		if err := apply(ctx, db, files, name, d); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		slog.Info("migration applied", "file", name)
	}

	return nil
}

func appliedMigrations(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT filename FROM schema_migrations ORDER BY filename")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

func listFiles(files fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func apply(ctx context.Context, db *sql.DB, files fs.FS, name string, d Dialect) error {
	content, err := fs.ReadFile(files, name)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("execute sql: %w", err)
	}

	if _, err := tx.ExecContext(ctx, d.Record, name); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}

	return tx.Commit()
}
