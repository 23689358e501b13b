package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"esgwatch/internal/ports"
)

// Fetch reads one feed document from feed_documents.
func (db *DB) Fetch(ctx context.Context, r ports.Resource) ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("fetch %q: %w", r, ports.ErrUnknownResource)
	}
	var body string
	err := db.Pool.QueryRow(ctx, `SELECT body FROM feed_documents WHERE name = $1`, string(r)).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("fetch %s: %w", r, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", r, err)
	}
	return []byte(body), nil
}

// Put replaces a feed document.
func (db *DB) Put(ctx context.Context, r ports.Resource, body []byte) error {
	if !r.Valid() {
		return fmt.Errorf("put %q: %w", r, ports.ErrUnknownResource)
	}
	_, err := db.Pool.Exec(ctx, `
        INSERT INTO feed_documents (name, body, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = now()
    `, string(r), string(body))
	if err != nil {
		return fmt.Errorf("put %s: %w", r, err)
	}
	return nil
}
