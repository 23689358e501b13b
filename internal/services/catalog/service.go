// Package catalog serves the category and severity taxonomies as loaded.
package catalog

import (
	"context"

	"esgwatch/internal/domain"
	"esgwatch/internal/ports"
	"esgwatch/internal/store"
)

type Service struct {
	state *store.State
}

func New(state *store.State) *Service { return &Service{state: state} }

func (s *Service) Categories(ctx context.Context) ([]domain.EsgCategory, error) {
	snap := s.state.Snapshot()
	if err := snap.Ready(ports.ResourceCategories); err != nil {
		return nil, err
	}
	return nonNil(snap.Categories), nil
}

func (s *Service) Severities(ctx context.Context) ([]domain.SeverityLevel, error) {
	snap := s.state.Snapshot()
	if err := snap.Ready(ports.ResourceSeverities); err != nil {
		return nil, err
	}
	return nonNil(snap.Severities), nil
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
