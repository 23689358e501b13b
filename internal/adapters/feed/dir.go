package feed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"esgwatch/internal/ports"
)

// Dir serves documents from <root>/<resource>.json.
type Dir struct {
	Root string
}

func NewDir(root string) *Dir { return &Dir{Root: root} }

func (d *Dir) Path(r ports.Resource) string {
	return filepath.Join(d.Root, string(r)+".json")
}

func (d *Dir) Fetch(ctx context.Context, r ports.Resource) ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("fetch %q: %w", r, ports.ErrUnknownResource)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := os.ReadFile(d.Path(r))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("fetch %s: %w", r, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", r, err)
	}
	return body, nil
}
