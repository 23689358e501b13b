package domain_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esgwatch/internal/domain"
)

func TestRiskImpactDecodesBothShapes(t *testing.T) {
	var scalar domain.Incident
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","riskScoreImpact":8.5}`), &scalar))
	assert.Equal(t, domain.RiskImpact{Overall: 8.5}, scalar.RiskScoreImpact)

	var breakdown domain.Incident
	require.NoError(t, json.Unmarshal([]byte(`{"id":"b","riskScoreImpact":{"overall":6,"environmental":9,"social":2,"governance":1}}`), &breakdown))
	assert.Equal(t, domain.RiskImpact{Overall: 6, Environmental: 9, Social: 2, Governance: 1}, breakdown.RiskScoreImpact)
	assert.Equal(t, 6.0, breakdown.RiskScoreImpact.Scalar())

	var missing domain.Incident
	require.NoError(t, json.Unmarshal([]byte(`{"id":"c","riskScoreImpact":null}`), &missing))
	assert.Zero(t, missing.RiskScoreImpact)

	var bad domain.Incident
	assert.Error(t, json.Unmarshal([]byte(`{"id":"d","riskScoreImpact":"high"}`), &bad))
}

func TestImpactScoreTakesOverallFromBreakdown(t *testing.T) {
	var ci domain.CriticalIncident
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","riskScoreImpact":{"overall":7.2,"social":3}}`), &ci))
	assert.Equal(t, domain.ImpactScore(7.2), ci.RiskScoreImpact)

	out, err := json.Marshal(ci)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"riskScoreImpact":7.2`)
}

func TestIncidentCriticalProjection(t *testing.T) {
	inc := domain.Incident{
		ID: "inc-1", Title: "Spill", Date: "2024-01-10", Category: "environmental",
		Severity: "high", Description: "Oil spill", Location: "Rotterdam",
		RiskScoreImpact: domain.RiskImpact{Overall: 8, Environmental: 9},
	}
	ci := inc.Critical()
	assert.Equal(t, "inc-1", ci.ID)
	assert.Equal(t, "Oil spill", ci.Summary)
	assert.Equal(t, domain.ImpactScore(8), ci.RiskScoreImpact)
}

func TestParseDate(t *testing.T) {
	cases := map[string]time.Time{
		"2024-01-02T00:00:01Z":      time.Date(2024, 1, 2, 0, 0, 1, 0, time.UTC),
		"2024-01-02T10:30:00+02:00": time.Date(2024, 1, 2, 8, 30, 0, 0, time.UTC),
		"2024-01-02T10:30:00":       time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC),
		"2024-01-02":                time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := domain.ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s: got %s", in, got)
	}
	for _, in := range []string{"", "yesterday", "2024-13-45"} {
		_, err := domain.ParseDate(in)
		assert.Error(t, err, in)
	}
}

func TestValidateIncidents(t *testing.T) {
	ok := []domain.Incident{{ID: "a"}, {ID: "b"}}
	assert.NoError(t, domain.ValidateIncidents(ok))

	err := domain.ValidateIncidents([]domain.Incident{{ID: "a"}, {ID: "a"}})
	assert.True(t, errors.Is(err, domain.ErrDuplicateID))

	err = domain.ValidateIncidents([]domain.Incident{{Title: "no id"}})
	assert.True(t, errors.Is(err, domain.ErrInvalid))
	assert.Contains(t, err.Error(), "Incident.ID is required")
}

func TestDedupeIncidentsKeepsFirst(t *testing.T) {
	kept, dropped := domain.DedupeIncidents([]domain.Incident{
		{ID: "a", Title: "first"},
		{Title: "no id"},
		{ID: "a", Title: "repeat"},
		{ID: "b"},
	})
	require.Len(t, kept, 2)
	assert.Equal(t, "first", kept[0].Title)
	assert.Equal(t, "b", kept[1].ID)
	require.Len(t, dropped, 2)
	assert.True(t, errors.Is(dropped[0], domain.ErrInvalid))
	assert.True(t, errors.Is(dropped[1], domain.ErrDuplicateID))
	assert.NoError(t, domain.ValidateIncidents(kept))
}

func TestHistoryPointWithoutDateIsValid(t *testing.T) {
	assert.NoError(t, domain.ValidateEach("history point", []domain.HistoricalPoint{{Overall: 61}}))
}

func TestValidateEachCategories(t *testing.T) {
	err := domain.ValidateEach("category", []domain.EsgCategory{
		{ID: "environmental", Name: "Environmental", Subcategories: []domain.Subcategory{{Name: "no id"}}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalid))
	assert.Contains(t, err.Error(), "category 0")
}
