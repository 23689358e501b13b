// Package store holds the dashboard state: the latest copy of every feed
// document and the load status of each one.
package store

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"esgwatch/internal/domain"
	"esgwatch/internal/ports"
)

// Status of one feed document. Error carries the fetch failure verbatim.
type Status struct {
	Loading  bool      `json:"loading"`
	Error    string    `json:"error,omitempty"`
	LoadedAt time.Time `json:"loadedAt,omitzero"`
}

// Snapshot is a point-in-time copy handed to readers.
type Snapshot struct {
	Overview   *domain.RiskOverview
	Incidents  []domain.Incident
	History    []domain.HistoricalPoint
	Categories []domain.EsgCategory
	Severities []domain.SeverityLevel
	Critical   []domain.CriticalIncident
	Status     map[ports.Resource]Status
}

// Loading reports whether any document is still loading.
func (s Snapshot) Loading() bool {
	for _, st := range s.Status {
		if st.Loading {
			return true
		}
	}
	return false
}

// FirstError returns the first failed document in resource order.
func (s Snapshot) FirstError() (ports.Resource, string, bool) {
	for _, r := range ports.Resources {
		if st := s.Status[r]; st.Error != "" {
			return r, st.Error, true
		}
	}
	return "", "", false
}

// Incident looks up a full incident by id.
func (s Snapshot) Incident(id string) (domain.Incident, bool) {
	for _, inc := range s.Incidents {
		if inc.ID == id {
			return inc, true
		}
	}
	return domain.Incident{}, false
}

// State is safe for concurrent use. Every update replaces whole fields.
type State struct {
	mu   sync.RWMutex
	snap Snapshot
	now  func() time.Time
}

func New() *State {
	return &State{
		snap: Snapshot{Status: make(map[ports.Resource]Status, len(ports.Resources))},
		now:  time.Now,
	}
}

// MarkLoading flags a document as loading and clears its previous error.
// Data from the last successful load stays visible.
func (s *State) MarkLoading(r ports.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.snap.Status[r]
	st.Loading = true
	st.Error = ""
	s.snap.Status[r] = st
}

func (s *State) MarkError(r ports.Resource, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.snap.Status[r]
	st.Loading = false
	st.Error = msg
	s.snap.Status[r] = st
}

// loaded must run with the write lock held.
func (s *State) loaded(r ports.Resource) {
	s.snap.Status[r] = Status{LoadedAt: s.now().UTC()}
}

func (s *State) SetOverview(o domain.RiskOverview) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Overview = &o
	s.loaded(ports.ResourceOverview)
}

// SetIncidents rejects the collection when a record has no id or ids repeat.
// Feed loads pass through domain.DedupeIncidents first, so a bad record is
// dropped there and never fails the whole source.
func (s *State) SetIncidents(list []domain.Incident) error {
	if err := domain.ValidateIncidents(list); err != nil {
		return fmt.Errorf("set incidents: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Incidents = list
	s.loaded(ports.ResourceIncidents)
	return nil
}

func (s *State) SetHistory(list []domain.HistoricalPoint) error {
	if err := domain.ValidateEach("history point", list); err != nil {
		return fmt.Errorf("set history: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.History = list
	s.loaded(ports.ResourceHistory)
	return nil
}

func (s *State) SetCategories(list []domain.EsgCategory) error {
	if err := domain.ValidateEach("category", list); err != nil {
		return fmt.Errorf("set categories: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Categories = list
	s.loaded(ports.ResourceCategories)
	return nil
}

func (s *State) SetSeverities(list []domain.SeverityLevel) error {
	if err := domain.ValidateEach("severity level", list); err != nil {
		return fmt.Errorf("set severities: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Severities = list
	s.loaded(ports.ResourceSeverities)
	return nil
}

// SetCritical accepts duplicate ids; the selector dedupes them.
func (s *State) SetCritical(list []domain.CriticalIncident) error {
	if err := domain.ValidateEach("critical incident", list); err != nil {
		return fmt.Errorf("set critical incidents: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Critical = list
	s.loaded(ports.ResourceCritical)
	return nil
}

// Snapshot copies the state. Slices are cloned shallowly; records are never
// mutated in place so sharing their fields is safe.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := Snapshot{
		Incidents:  slices.Clone(s.snap.Incidents),
		History:    slices.Clone(s.snap.History),
		Categories: slices.Clone(s.snap.Categories),
		Severities: slices.Clone(s.snap.Severities),
		Critical:   slices.Clone(s.snap.Critical),
		Status:     maps.Clone(s.snap.Status),
	}
	if s.snap.Overview != nil {
		o := *s.snap.Overview
		out.Overview = &o
	}
	return out
}

func (s *State) Status(r ports.Resource) Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Status[r]
}

// Ready reports whether every named document can be served: a failed load
// wins, then a document that has never loaded counts as loading. Stale data
// from an earlier load is served while a refresh is in flight.
func (s Snapshot) Ready(rs ...ports.Resource) error {
	for _, r := range rs {
		if st := s.Status[r]; st.Error != "" {
			return &ports.SourceError{Resource: r, Message: st.Error}
		}
	}
	for _, r := range rs {
		if s.Status[r].LoadedAt.IsZero() {
			return ports.ErrLoading
		}
	}
	return nil
}
