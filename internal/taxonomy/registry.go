// Package taxonomy indexes the category and severity reference data used to
// label incidents and order severities.
package taxonomy

import (
	"fmt"
	"strings"

	"esgwatch/internal/domain"
)

// Registry is read-only once built.
type Registry struct {
	categories []domain.EsgCategory
	severities []domain.SeverityLevel
	catIndex   map[string]int
	sevIndex   map[string]int
}

func New(categories []domain.EsgCategory, severities []domain.SeverityLevel) *Registry {
	r := &Registry{
		categories: categories,
		severities: severities,
		catIndex:   make(map[string]int, len(categories)),
		sevIndex:   make(map[string]int, len(severities)),
	}
	for i, c := range categories {
		r.catIndex[key(c.ID)] = i
	}
	for i, s := range severities {
		r.sevIndex[key(s.ID)] = i
	}
	return r
}

func key(id string) string { return strings.ToLower(strings.TrimSpace(id)) }

func (r *Registry) Categories() []domain.EsgCategory { return r.categories }

func (r *Registry) Severities() []domain.SeverityLevel { return r.severities }

func (r *Registry) Category(id string) (domain.EsgCategory, bool) {
	i, ok := r.catIndex[key(id)]
	if !ok {
		return domain.EsgCategory{}, false
	}
	return r.categories[i], true
}

func (r *Registry) Severity(id string) (domain.SeverityLevel, bool) {
	i, ok := r.sevIndex[key(id)]
	if !ok {
		return domain.SeverityLevel{}, false
	}
	return r.severities[i], true
}

// Rank is the 1-based position of the severity in taxonomy order, 0 when unknown.
// The front end sizes timeline markers by it.
func (r *Registry) Rank(severity string) int {
	i, ok := r.sevIndex[key(severity)]
	if !ok {
		return 0
	}
	return i + 1
}

// CategoryName falls back to the raw id for unknown categories.
func (r *Registry) CategoryName(id string) string {
	if c, ok := r.Category(id); ok {
		return c.Name
	}
	return id
}

func (r *Registry) SeverityName(id string) string {
	if s, ok := r.Severity(id); ok {
		return s.Name
	}
	return id
}

func (r *Registry) SubcategoryName(categoryID, subID string) string {
	c, ok := r.Category(categoryID)
	if !ok {
		return subID
	}
	for _, s := range c.Subcategories {
		if key(s.ID) == key(subID) {
			return s.Name
		}
	}
	return subID
}

// Check reports the taxonomy violations of one incident. An empty registry
// side (not loaded yet) is not checked.
func (r *Registry) Check(inc domain.Incident) []error {
	var errs []error
	if len(r.categories) > 0 {
		c, ok := r.Category(inc.Category)
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("unknown category %q", inc.Category))
		case inc.Subcategory != "" && !hasSub(c, inc.Subcategory):
			errs = append(errs, fmt.Errorf("subcategory %q not in category %q", inc.Subcategory, c.ID))
		}
	}
	if len(r.severities) > 0 {
		if _, ok := r.Severity(inc.Severity); !ok {
			errs = append(errs, fmt.Errorf("unknown severity %q", inc.Severity))
		}
	}
	return errs
}

func hasSub(c domain.EsgCategory, sub string) bool {
	for _, s := range c.Subcategories {
		if key(s.ID) == key(sub) {
			return true
		}
	}
	return false
}
