package timeline

import (
	"time"

	"esgwatch/internal/domain"
)

// Session is the interactive state of one timeline view: the active filter
// and the incident being inspected. Any filter change drops the selection
// since the incident may no longer be in view.
type Session struct {
	incidents []domain.Incident
	filter    Filter
	selected  string
}

func NewSession(incidents []domain.Incident) *Session {
	return &Session{incidents: incidents}
}

// Reset swaps in a freshly loaded collection and drops the selection.
func (s *Session) Reset(incidents []domain.Incident) {
	s.incidents = incidents
	s.selected = ""
}

func (s *Session) Filter() Filter { return s.filter }

func (s *Session) View() []domain.Incident { return s.filter.Apply(s.incidents) }

func (s *Session) SetDateRange(start, end *time.Time) {
	s.filter.Start, s.filter.End = start, end
	s.selected = ""
}

func (s *Session) SetTitle(q string) {
	s.filter.Title = q
	s.selected = ""
}

// SetCategory also resets the subcategory, which belongs to the old category.
func (s *Session) SetCategory(c string) {
	s.filter.Category = c
	s.filter.Subcategory = All
	s.selected = ""
}

func (s *Session) SetSubcategory(sub string) {
	s.filter.Subcategory = sub
	s.selected = ""
}

func (s *Session) SetSeverity(sev string) {
	s.filter.Severity = sev
	s.selected = ""
}

// Select marks an incident for inspection. It fails for ids outside the
// current view.
func (s *Session) Select(id string) bool {
	for _, inc := range s.View() {
		if inc.ID == id {
			s.selected = id
			return true
		}
	}
	return false
}

func (s *Session) ClearSelection() { s.selected = "" }

func (s *Session) Selected() (domain.Incident, bool) {
	if s.selected == "" {
		return domain.Incident{}, false
	}
	for _, inc := range s.incidents {
		if inc.ID == s.selected {
			return inc, true
		}
	}
	return domain.Incident{}, false
}
