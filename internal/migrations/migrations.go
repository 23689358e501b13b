// Package migrations carries the schema of the SQL-backed feed sources.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var files embed.FS

// goose keeps its dialect and filesystem in package globals.
var mu sync.Mutex

// Up applies pending migrations. dialect is a goose dialect name such as
// "postgres" or "sqlite3".
func Up(ctx context.Context, db *sql.DB, dialect string) error {
	mu.Lock()
	defer mu.Unlock()
	goose.SetBaseFS(files)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	if err := goose.UpContext(ctx, db, "sql"); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}
