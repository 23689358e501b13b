package overview

import (
	"context"

	"esgwatch/internal/ports"
	"esgwatch/internal/present"
	"esgwatch/internal/store"
)

type Service struct {
	state *store.State
}

func New(state *store.State) *Service { return &Service{state: state} }

func (s *Service) Overview(ctx context.Context) (present.Overview, error) {
	snap := s.state.Snapshot()
	if err := snap.Ready(ports.ResourceOverview); err != nil {
		return present.Overview{}, err
	}
	return present.NewOverview(*snap.Overview), nil
}
