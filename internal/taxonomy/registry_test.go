package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"esgwatch/internal/domain"
)

func fixture() *Registry {
	return New(
		[]domain.EsgCategory{
			{ID: "environmental", Name: "Environmental", Subcategories: []domain.Subcategory{
				{ID: "emissions", Name: "Emissions"}, {ID: "waste", Name: "Waste"},
			}},
			{ID: "social", Name: "Social", Subcategories: []domain.Subcategory{{ID: "labor", Name: "Labor Practices"}}},
		},
		[]domain.SeverityLevel{
			{ID: "low", Name: "Low"}, {ID: "medium", Name: "Medium"},
			{ID: "high", Name: "High"}, {ID: "critical", Name: "Critical"},
		},
	)
}

func TestRankFollowsTaxonomyOrder(t *testing.T) {
	r := fixture()
	assert.Equal(t, 1, r.Rank("low"))
	assert.Equal(t, 4, r.Rank("CRITICAL"))
	assert.Equal(t, 0, r.Rank("catastrophic"))
}

func TestNames(t *testing.T) {
	r := fixture()
	assert.Equal(t, "Environmental", r.CategoryName("Environmental"))
	assert.Equal(t, "governance", r.CategoryName("governance"))
	assert.Equal(t, "Labor Practices", r.SubcategoryName("social", "labor"))
	assert.Equal(t, "unknown", r.SubcategoryName("social", "unknown"))
	assert.Equal(t, "High", r.SeverityName("high"))
}

func TestCheck(t *testing.T) {
	r := fixture()
	assert.Empty(t, r.Check(domain.Incident{Category: "environmental", Subcategory: "emissions", Severity: "high"}))
	assert.Empty(t, r.Check(domain.Incident{Category: "social", Severity: "low"}))
	assert.Len(t, r.Check(domain.Incident{Category: "social", Subcategory: "emissions", Severity: "low"}), 1)
	assert.Len(t, r.Check(domain.Incident{Category: "governance", Severity: "extreme"}), 2)

	empty := New(nil, nil)
	assert.Empty(t, empty.Check(domain.Incident{Category: "anything", Severity: "whatever"}))
}
