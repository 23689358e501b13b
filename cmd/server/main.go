package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"esgwatch/internal/adapters/feed"
	httpadapter "esgwatch/internal/adapters/http"
	pg "esgwatch/internal/adapters/postgres"
	"esgwatch/internal/adapters/sqlite"
	"esgwatch/internal/config"
	"esgwatch/internal/critical"
	"esgwatch/internal/logging"
	"esgwatch/internal/metrics"
	"esgwatch/internal/ports"
	"esgwatch/internal/services/catalog"
	"esgwatch/internal/services/history"
	"esgwatch/internal/services/incidents"
	"esgwatch/internal/services/overview"
	"esgwatch/internal/store"
	"esgwatch/internal/workers/loader"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	source, closeSource, err := openSource(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open feed source", zap.String("kind", cfg.Source.Kind), zap.Error(err))
	}
	defer closeSource()
	if cfg.Demo.Enabled() {
		source = feed.NewDemo(source, cfg.Demo.Delay, cfg.Demo.ErrorRate)
		logger.Info("demo mode",
			zap.Duration("delay", cfg.Demo.Delay),
			zap.Float64("errorRate", cfg.Demo.ErrorRate),
		)
	}

	state := store.New()
	m := metrics.NewCollector("esgwatch")
	ld := loader.New(source, state, m, logger.Named("loader"))

	srv := httpadapter.New(
		overview.New(state),
		incidents.New(state, critical.NewSelector(critical.DefaultCriteria(), logger.Named("critical")), time.Now, logger.Named("incidents")),
		history.New(state, logger.Named("history")),
		catalog.New(state),
		ld, state, m, logger.Named("http"),
	)
	srv.CORSOrigins = cfg.CORSOrigins

	opts := loader.RunOptions{Schedule: cfg.RefreshSchedule}
	if cfg.Source.Watch && cfg.Source.Kind == config.SourceDir {
		opts.WatchDir = cfg.Source.Dir
	}
	errCh := make(chan error, 2)
	go func() {
		if err := ld.Run(ctx, opts); err != nil {
			errCh <- fmt.Errorf("loader: %w", err)
		}
	}()

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server: %w", err)
		}
	}()
	logger.Info("listening", zap.String("addr", cfg.ListenAddr), zap.String("source", cfg.Source.Kind))

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		logger.Error("fatal", zap.Error(err))
		cancel()
	}
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func openSource(ctx context.Context, cfg config.Config, logger *zap.Logger) (ports.Source, func(), error) {
	switch cfg.Source.Kind {
	case config.SourceHTTP:
		bc := feed.BreakerConfig{
			MaxRequests:      cfg.Breaker.MaxRequests,
			Interval:         cfg.Breaker.Interval,
			Timeout:          cfg.Breaker.Timeout,
			FailureThreshold: cfg.Breaker.FailureThreshold,
			MinRequests:      cfg.Breaker.MinRequests,
		}
		return feed.NewHTTP(cfg.Source.URL, cfg.Source.FetchTimeout, bc, logger.Named("feed")), func() {}, nil
	case config.SourcePostgres:
		db, err := pg.Connect(ctx, cfg.Source.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return db, db.Close, nil
	case config.SourceSQLite:
		db, err := sqlite.Open(ctx, cfg.Source.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	default:
		if _, err := os.Stat(cfg.Source.Dir); err != nil {
			return nil, nil, err
		}
		return feed.NewDir(cfg.Source.Dir), func() {}, nil
	}
}
