// Package loader pulls every feed document into the dashboard state, on start,
// on a schedule, on file changes and on demand.
package loader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"esgwatch/internal/adapters/feed"
	"esgwatch/internal/domain"
	"esgwatch/internal/metrics"
	"esgwatch/internal/ports"
	"esgwatch/internal/store"
	"esgwatch/internal/taxonomy"
)

type Loader struct {
	source  ports.Source
	state   *store.State
	metrics *metrics.Collector
	log     *zap.Logger

	requests chan struct{}
	running  chan struct{}
}

func New(source ports.Source, state *store.State, m *metrics.Collector, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		source:   source,
		state:    state,
		metrics:  m,
		log:      log,
		requests: make(chan struct{}, 1),
		running:  make(chan struct{}, 1),
	}
}

// LoadAll loads every resource concurrently and waits for all of them. Each
// failure is recorded on its own resource and never stops the others. The
// returned id tags the run in logs. Runs never overlap; if ctx ends while
// waiting for a previous run, nothing is loaded and the id is empty.
func (l *Loader) LoadAll(ctx context.Context) string {
	select {
	case l.running <- struct{}{}:
		defer func() { <-l.running }()
	case <-ctx.Done():
		return ""
	}

	runID := uuid.NewString()
	log := l.log.With(zap.String("run", runID))
	start := time.Now()

	var wg sync.WaitGroup
	for _, r := range ports.Resources {
		l.state.MarkLoading(r)
		wg.Add(1)
		go func(r ports.Resource) {
			defer wg.Done()
			began := time.Now()
			err := l.load(ctx, r)
			status := "ok"
			if err != nil {
				status = "error"
				l.state.MarkError(r, err.Error())
				log.Warn("feed load failed", zap.String("resource", string(r)), zap.Error(err))
			}
			if l.metrics != nil {
				l.metrics.ObserveFeed(string(r), status, time.Since(began))
			}
		}(r)
	}
	wg.Wait()

	l.checkTaxonomy(log)
	if l.metrics != nil {
		l.metrics.Refreshes.Inc()
	}
	log.Info("feed refresh finished", zap.Duration("took", time.Since(start)))
	return runID
}

func (l *Loader) load(ctx context.Context, r ports.Resource) error {
	body, err := l.source.Fetch(ctx, r)
	if err != nil {
		return err
	}
	switch r {
	case ports.ResourceOverview:
		o, err := feed.DecodeObject[domain.RiskOverview](r, body)
		if err != nil {
			return err
		}
		l.state.SetOverview(o)
		return nil
	case ports.ResourceIncidents:
		list, err := feed.DecodeList[domain.Incident](r, body)
		if err != nil {
			return err
		}
		list, dropped := domain.DedupeIncidents(list)
		for _, err := range dropped {
			l.log.Warn("dropping incident", zap.Error(err))
		}
		return l.state.SetIncidents(list)
	case ports.ResourceHistory:
		list, err := feed.DecodeList[domain.HistoricalPoint](r, body)
		if err != nil {
			return err
		}
		return l.state.SetHistory(list)
	case ports.ResourceCategories:
		list, err := feed.DecodeList[domain.EsgCategory](r, body)
		if err != nil {
			return err
		}
		return l.state.SetCategories(list)
	case ports.ResourceSeverities:
		list, err := feed.DecodeList[domain.SeverityLevel](r, body)
		if err != nil {
			return err
		}
		return l.state.SetSeverities(list)
	case ports.ResourceCritical:
		list, err := feed.DecodeList[domain.CriticalIncident](r, body)
		if err != nil {
			return err
		}
		return l.state.SetCritical(list)
	default:
		return fmt.Errorf("load %q: %w", r, ports.ErrUnknownResource)
	}
}

// checkTaxonomy logs incidents that do not fit the loaded taxonomies. They
// stay in the state; labels fall back to raw ids.
func (l *Loader) checkTaxonomy(log *zap.Logger) {
	snap := l.state.Snapshot()
	reg := taxonomy.New(snap.Categories, snap.Severities)
	for _, inc := range snap.Incidents {
		for _, err := range reg.Check(inc) {
			log.Warn("incident outside taxonomy", zap.String("id", inc.ID), zap.Error(err))
		}
	}
}

// Trigger asks the Run loop for a refresh. Requests made while one is pending
// collapse into it.
func (l *Loader) Trigger() {
	select {
	case l.requests <- struct{}{}:
	default:
	}
}
