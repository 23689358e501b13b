package incidents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esgwatch/internal/critical"
	"esgwatch/internal/domain"
	"esgwatch/internal/ports"
	"esgwatch/internal/present"
	"esgwatch/internal/store"
	"esgwatch/internal/timeline"
)

var now = time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

func fixture(t *testing.T) *store.State {
	t.Helper()
	st := store.New()
	require.NoError(t, st.SetCategories([]domain.EsgCategory{
		{ID: "environmental", Name: "Environmental", Subcategories: []domain.Subcategory{{ID: "emissions", Name: "Emissions"}}},
		{ID: "social", Name: "Social", Subcategories: []domain.Subcategory{}},
	}))
	require.NoError(t, st.SetSeverities([]domain.SeverityLevel{
		{ID: "low", Name: "Low"}, {ID: "medium", Name: "Medium"}, {ID: "high", Name: "High"}, {ID: "critical", Name: "Critical"},
	}))
	require.NoError(t, st.SetIncidents([]domain.Incident{
		{
			ID: "1", Title: "Emissions reporting violation", Date: "2024-01-20T10:00:00Z",
			Category: "environmental", Subcategory: "emissions", Severity: "high",
			Description: "Under-reported emissions", Location: "Berlin",
			RiskScoreImpact: domain.RiskImpact{Overall: 8, Environmental: 9},
			Sources: []domain.SourceRef{
				{Title: "BBC", URL: "https://news.bbc.co.uk/story/1", PublishDate: "2024-01-21"},
				{Title: "Local", URL: "not a url"},
			},
		},
		{ID: "2", Title: "Labour dispute", Date: "2024-01-25", Category: "social", Severity: "low", RiskScoreImpact: domain.RiskImpact{Overall: 3}},
		{ID: "3", Title: "Old spill", Date: "2023-06-01", Category: "environmental", Severity: "critical", RiskScoreImpact: domain.RiskImpact{Overall: 9}},
	}))
	return st
}

func newService(st *store.State) *Service {
	return New(st, critical.NewSelector(critical.DefaultCriteria(), nil), func() time.Time { return now }, nil)
}

func TestTimelineFiltersAndDecorates(t *testing.T) {
	svc := newService(fixture(t))

	page, err := svc.Timeline(context.Background(), timeline.Filter{Category: "environmental"}, "")
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.Matched)
	require.Len(t, page.Incidents, 2)
	assert.Equal(t, "1", page.Incidents[0].ID)
	assert.Equal(t, 3, page.Incidents[0].SeverityRank)
	assert.Equal(t, "warning", page.Incidents[0].SeverityColor)
	assert.Equal(t, 4, page.Incidents[1].SeverityRank)
	assert.Nil(t, page.Selected)
}

func TestTimelineEmptyResultIsNotAnError(t *testing.T) {
	svc := newService(fixture(t))
	page, err := svc.Timeline(context.Background(), timeline.Filter{Title: "nothing like this"}, "")
	require.NoError(t, err)
	assert.NotNil(t, page.Incidents)
	assert.Empty(t, page.Incidents)
	assert.Equal(t, 0, page.Matched)
}

func TestTimelineSelectionMustBeInView(t *testing.T) {
	svc := newService(fixture(t))

	page, err := svc.Timeline(context.Background(), timeline.Filter{Severity: "high"}, "1")
	require.NoError(t, err)
	require.NotNil(t, page.Selected)
	assert.Equal(t, "1", page.Selected.ID)

	page, err = svc.Timeline(context.Background(), timeline.Filter{Severity: "low"}, "1")
	require.NoError(t, err)
	assert.Nil(t, page.Selected)
}

func TestDetailPlaceholdersAndPublishers(t *testing.T) {
	svc := newService(fixture(t))

	d, err := svc.Detail(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Environmental", d.CategoryName)
	assert.Equal(t, "Emissions", d.SubcategoryName)
	assert.Equal(t, "High", d.SeverityName)
	assert.Equal(t, present.NotAvailable, d.DetailedDescription)
	require.Len(t, d.Sources, 2)
	assert.Equal(t, "bbc.co.uk", d.Sources[0].Publisher)
	assert.Equal(t, "2024-01-21", d.Sources[0].PublishDate)
	assert.Equal(t, present.NotAvailable, d.Sources[1].Publisher)
	assert.Equal(t, present.NotAvailable, d.Sources[1].PublishDate)
	assert.Empty(t, d.SourcesNote)

	d, err = svc.Detail(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, present.NotAvailable, d.Subcategory)
	assert.Equal(t, present.NotAvailable, d.SubcategoryName)
	assert.Empty(t, d.Sources)
	assert.Equal(t, present.NoSources, d.SourcesNote)

	_, err = svc.Detail(context.Background(), "missing")
	assert.True(t, errors.Is(err, ports.ErrNotFound))
}

func TestCriticalUsesDedicatedFeed(t *testing.T) {
	st := fixture(t)
	require.NoError(t, st.SetCritical([]domain.CriticalIncident{
		{ID: "a", Date: "2024-01-10", Severity: "Critical", RiskScoreImpact: 2},
		{ID: "a", Date: "2024-01-10", Severity: "low", RiskScoreImpact: 1},
		{ID: "b", Date: "2024-01-12", Severity: "low", RiskScoreImpact: 6.9},
		{ID: "c", Date: "2024-01-15", Severity: "medium", RiskScoreImpact: 7},
	}))
	rows, err := newService(st).Critical(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].ID)
	assert.Equal(t, "error", rows[0].SeverityColor)
	assert.Equal(t, "c", rows[1].ID)
}

func TestCriticalFallsBackToIncidents(t *testing.T) {
	st := fixture(t)
	st.MarkError(ports.ResourceCritical, "Simulated API failure for critical incidents")

	rows, err := newService(st).Critical(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0].ID)
	assert.Equal(t, "Under-reported emissions", rows[0].Summary)
}

func TestNotReady(t *testing.T) {
	st := store.New()
	svc := newService(st)

	_, err := svc.Timeline(context.Background(), timeline.Filter{}, "")
	assert.ErrorIs(t, err, ports.ErrLoading)

	st.MarkError(ports.ResourceIncidents, "Simulated API failure for incidents")
	_, err = svc.Detail(context.Background(), "1")
	var se *ports.SourceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ports.ResourceIncidents, se.Resource)

	_, err = svc.Critical(context.Background())
	assert.ErrorIs(t, err, ports.ErrLoading)
}
