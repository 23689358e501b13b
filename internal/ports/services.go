package ports

import (
	"context"

	"esgwatch/internal/domain"
	"esgwatch/internal/present"
	"esgwatch/internal/timeline"
)

type OverviewService interface {
	Overview(ctx context.Context) (present.Overview, error)
}

type IncidentService interface {
	// Timeline filters the collection. selected is honoured only when that
	// incident is in the filtered view.
	Timeline(ctx context.Context, f timeline.Filter, selected string) (present.Timeline, error)
	Detail(ctx context.Context, id string) (present.IncidentDetail, error)
	Critical(ctx context.Context) ([]present.CriticalRow, error)
}

type HistoryService interface {
	History(ctx context.Context) ([]domain.HistoricalPoint, error)
}

type TaxonomyService interface {
	Categories(ctx context.Context) ([]domain.EsgCategory, error)
	Severities(ctx context.Context) ([]domain.SeverityLevel, error)
}

// Refresher reloads the feed documents.
type Refresher interface {
	LoadAll(ctx context.Context) string
	Trigger()
}
