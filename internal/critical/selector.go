// Package critical picks the incidents worth highlighting: recent, and either
// high severity or high impact.
package critical

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"esgwatch/internal/domain"
)

const (
	DefaultWindowDays = 30
	DefaultThreshold  = 7.0
)

type Criteria struct {
	// WindowDays is how many calendar days back from now an incident still
	// counts as recent.
	WindowDays int
	// HighSeverities are matched case-insensitively.
	HighSeverities []string
	// ImpactThreshold is inclusive.
	ImpactThreshold float64
}

func DefaultCriteria() Criteria {
	return Criteria{
		WindowDays:      DefaultWindowDays,
		HighSeverities:  []string{"high", "critical"},
		ImpactThreshold: DefaultThreshold,
	}
}

type Selector struct {
	criteria Criteria
	high     map[string]struct{}
	log      *zap.Logger
}

func NewSelector(c Criteria, log *zap.Logger) *Selector {
	if log == nil {
		log = zap.NewNop()
	}
	high := make(map[string]struct{}, len(c.HighSeverities))
	for _, s := range c.HighSeverities {
		high[strings.ToLower(s)] = struct{}{}
	}
	return &Selector{criteria: c, high: high, log: log}
}

// Dedupe keeps the first occurrence of every id, in input order.
func Dedupe(in []domain.CriticalIncident) []domain.CriticalIncident {
	seen := make(map[string]struct{}, len(in))
	out := make([]domain.CriticalIncident, 0, len(in))
	for _, ci := range in {
		if _, dup := seen[ci.ID]; dup {
			continue
		}
		seen[ci.ID] = struct{}{}
		out = append(out, ci)
	}
	return out
}

// FromIncidents builds candidates from the full incident list.
func FromIncidents(in []domain.Incident) []domain.CriticalIncident {
	out := make([]domain.CriticalIncident, 0, len(in))
	for _, inc := range in {
		out = append(out, inc.Critical())
	}
	return out
}

// Select dedupes the candidates and keeps those that are strictly newer than
// now minus the window and are high severity or meet the impact threshold.
// Records with unparseable dates are logged and skipped. Order is preserved.
func (s *Selector) Select(in []domain.CriticalIncident, now time.Time) []domain.CriticalIncident {
	cutoff := now.AddDate(0, 0, -s.criteria.WindowDays)
	out := make([]domain.CriticalIncident, 0)
	for _, ci := range Dedupe(in) {
		at, err := domain.ParseDate(ci.Date)
		if err != nil {
			s.log.Warn("skipping critical incident with bad date",
				zap.String("id", ci.ID),
				zap.String("date", ci.Date),
				zap.Error(err),
			)
			continue
		}
		if !at.After(cutoff) {
			continue
		}
		if s.isHigh(ci.Severity) || float64(ci.RiskScoreImpact) >= s.criteria.ImpactThreshold {
			out = append(out, ci)
		}
	}
	return out
}

func (s *Selector) isHigh(severity string) bool {
	_, ok := s.high[strings.ToLower(severity)]
	return ok
}
