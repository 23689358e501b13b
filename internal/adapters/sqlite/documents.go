package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"esgwatch/internal/ports"
)

func (db *DB) Fetch(ctx context.Context, r ports.Resource) ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("fetch %q: %w", r, ports.ErrUnknownResource)
	}
	var body string
	err := db.SQL.QueryRowContext(ctx, `SELECT body FROM feed_documents WHERE name = ?`, string(r)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("fetch %s: %w", r, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", r, err)
	}
	return []byte(body), nil
}

func (db *DB) Put(ctx context.Context, r ports.Resource, body []byte) error {
	if !r.Valid() {
		return fmt.Errorf("put %q: %w", r, ports.ErrUnknownResource)
	}
	_, err := db.SQL.ExecContext(ctx, `
		INSERT INTO feed_documents (name, body, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP
	`, string(r), string(body))
	if err != nil {
		return fmt.Errorf("put %s: %w", r, err)
	}
	return nil
}
