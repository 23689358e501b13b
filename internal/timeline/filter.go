// Package timeline narrows the incident collection by the criteria the
// timeline view exposes: date range, title text, category, subcategory and
// severity.
package timeline

import (
	"strings"
	"time"

	"esgwatch/internal/domain"
)

// All is the sentinel a select control sends for "no restriction".
const All = "all"

// Filter is a conjunction of independent predicates. Zero value matches
// everything.
type Filter struct {
	Start       *time.Time
	End         *time.Time
	Title       string
	Category    string
	Subcategory string
	Severity    string
}

func unset(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, All)
}

// IsEmpty reports whether the filter leaves the input untouched. Subcategory
// is not checked: it only applies once a category is set.
func (f Filter) IsEmpty() bool {
	return f.Start == nil && f.End == nil && strings.TrimSpace(f.Title) == "" &&
		unset(f.Category) && unset(f.Severity)
}

// Match evaluates all predicates against one incident.
func (f Filter) Match(inc domain.Incident) bool {
	return f.inDateRange(inc) &&
		f.inTitle(inc) &&
		f.inCategory(inc) &&
		f.inSubcategory(inc) &&
		f.inSeverity(inc)
}

// Apply returns the matching incidents in input order. The result is never nil.
func (f Filter) Apply(in []domain.Incident) []domain.Incident {
	out := make([]domain.Incident, 0, len(in))
	for _, inc := range in {
		if f.Match(inc) {
			out = append(out, inc)
		}
	}
	return out
}

// Both bounds inclusive. A record whose date does not parse only passes when
// no bound is set.
func (f Filter) inDateRange(inc domain.Incident) bool {
	if f.Start == nil && f.End == nil {
		return true
	}
	at, err := domain.ParseDate(inc.Date)
	if err != nil {
		return false
	}
	if f.Start != nil && at.Before(*f.Start) {
		return false
	}
	if f.End != nil && at.After(*f.End) {
		return false
	}
	return true
}

func (f Filter) inTitle(inc domain.Incident) bool {
	q := strings.TrimSpace(f.Title)
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(inc.Title), strings.ToLower(q))
}

func (f Filter) inCategory(inc domain.Incident) bool {
	if unset(f.Category) {
		return true
	}
	return strings.EqualFold(inc.Category, strings.TrimSpace(f.Category))
}

// Subcategory only narrows within a selected category.
func (f Filter) inSubcategory(inc domain.Incident) bool {
	if unset(f.Category) || unset(f.Subcategory) {
		return true
	}
	if inc.Subcategory == "" {
		return false
	}
	return strings.EqualFold(inc.Subcategory, strings.TrimSpace(f.Subcategory))
}

func (f Filter) inSeverity(inc domain.Incident) bool {
	if unset(f.Severity) {
		return true
	}
	return strings.EqualFold(inc.Severity, strings.TrimSpace(f.Severity))
}
