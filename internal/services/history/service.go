package history

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"esgwatch/internal/domain"
	"esgwatch/internal/ports"
	"esgwatch/internal/store"
)

type Service struct {
	state *store.State
	log   *zap.Logger
}

func New(state *store.State, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{state: state, log: log}
}

// History returns the score series in ascending date order. Points with
// unparseable dates cannot be placed on the axis and are dropped.
func (s *Service) History(ctx context.Context) ([]domain.HistoricalPoint, error) {
	snap := s.state.Snapshot()
	if err := snap.Ready(ports.ResourceHistory); err != nil {
		return nil, err
	}
	type dated struct {
		at time.Time
		p  domain.HistoricalPoint
	}
	rows := make([]dated, 0, len(snap.History))
	for _, p := range snap.History {
		at, err := domain.ParseDate(p.Date)
		if err != nil {
			s.log.Warn("dropping history point with bad date", zap.String("date", p.Date), zap.Error(err))
			continue
		}
		rows = append(rows, dated{at: at, p: p})
	}
	slices.SortStableFunc(rows, func(a, b dated) int { return a.at.Compare(b.at) })
	out := make([]domain.HistoricalPoint, len(rows))
	for i, r := range rows {
		out[i] = r.p
	}
	return out, nil
}
