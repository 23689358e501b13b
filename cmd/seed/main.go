// Command seed copies a directory of feed documents into the SQL document
// table used by the postgres and sqlite sources.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"

	"esgwatch/internal/adapters/feed"
	pg "esgwatch/internal/adapters/postgres"
	"esgwatch/internal/adapters/sqlite"
	"esgwatch/internal/config"
	"esgwatch/internal/logging"
	"esgwatch/internal/ports"
)

func main() {
	from := flag.String("from", "data", "directory holding <resource>.json files")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	ctx := context.Background()

	var target ports.DocumentStore
	switch cfg.Source.Kind {
	case config.SourcePostgres:
		db, err := pg.Connect(ctx, cfg.Source.DatabaseURL)
		if err != nil {
			logger.Fatal("connect", zap.Error(err))
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			logger.Fatal("migrate", zap.Error(err))
		}
		target = db
	case config.SourceSQLite:
		db, err := sqlite.Open(ctx, cfg.Source.SQLitePath)
		if err != nil {
			logger.Fatal("open", zap.Error(err))
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			logger.Fatal("migrate", zap.Error(err))
		}
		target = db
	default:
		logger.Fatal("SOURCE_KIND must be postgres or sqlite", zap.String("kind", cfg.Source.Kind))
	}

	n, err := seed(ctx, feed.NewDir(*from), target, logger)
	if err != nil {
		logger.Fatal("seed", zap.Error(err))
	}
	logger.Info("seeded", zap.Int("documents", n), zap.String("from", *from))
}

// seed copies every document the source has. Missing documents are skipped;
// malformed JSON aborts before anything further is written.
func seed(ctx context.Context, from ports.Source, to ports.DocumentStore, logger *zap.Logger) (int, error) {
	n := 0
	for _, r := range ports.Resources {
		body, err := from.Fetch(ctx, r)
		if errors.Is(err, ports.ErrNotFound) {
			logger.Warn("no document", zap.String("resource", string(r)))
			continue
		}
		if err != nil {
			return n, err
		}
		if !json.Valid(body) {
			return n, fmt.Errorf("%s: not valid JSON", r)
		}
		if err := to.Put(ctx, r, body); err != nil {
			return n, fmt.Errorf("%s: %w", r, err)
		}
		n++
	}
	return n, nil
}
