package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"esgwatch/internal/migrations"
)

type DB struct {
	SQL *sql.DB
}

// Open opens (or creates) a SQLite feed database. ":memory:" keeps a single
// connection so every query sees the same database.
func Open(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" || strings.Contains(path, "mode=memory") {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite open %s: %w", path, err)
	}
	return &DB{SQL: db}, nil
}

func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Up(ctx, db.SQL, "sqlite3")
}

func (db *DB) Close() error { return db.SQL.Close() }
