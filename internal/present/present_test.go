package present

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"esgwatch/internal/domain"
)

func TestTrendIndicator(t *testing.T) {
	assert.Equal(t, Indicator{Direction: Up, Color: "error"}, TrendIndicator("increasing"))
	assert.Equal(t, Indicator{Direction: Down, Color: "success"}, TrendIndicator("Decreasing"))
	for _, d := range []string{"", "stable", "up"} {
		assert.Equal(t, Flat, TrendIndicator(d).Direction, d)
	}
}

func TestScoreBand(t *testing.T) {
	cases := []struct {
		score float64
		want  Band
	}{
		{100, BandHigh},
		{70.1, BandHigh},
		{70, BandMedium},
		{50.5, BandMedium},
		{50, BandLow},
		{0, BandLow},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ScoreBand(c.score), "score %v", c.score)
	}
	assert.Equal(t, "error.main", BandColor(BandHigh))
	assert.Equal(t, "success.main", BandColor(BandLow))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "12.5%", Percent(12.5))
	assert.Equal(t, "4%", Percent(4))
	assert.Equal(t, "increasing by 5%", TrendText("increasing", 5))
	assert.Equal(t, NotAvailable, TrendText("", 5))
	assert.Equal(t, NotAvailable, OrNA(" "))
	assert.Equal(t, "Berlin", OrNA("Berlin"))
}

func TestSeverityColor(t *testing.T) {
	assert.Equal(t, "error", SeverityColor("Critical"))
	assert.Equal(t, "warning", SeverityColor("high"))
	assert.Equal(t, "info", SeverityColor("medium"))
	assert.Equal(t, "success", SeverityColor("low"))
	assert.Equal(t, "default", SeverityColor(""))
}

func TestNewOverview(t *testing.T) {
	o := NewOverview(domain.RiskOverview{
		CompanyName:      "Acme",
		OverallRiskScore: 72,
		Trend:            domain.Trend{Direction: "increasing", Percentage: 5},
		Categories: domain.CategoryScores{
			Environmental: domain.CategoryScore{Score: 55, Trend: "decreasing", ChangePercentage: 2.5},
			Social:        domain.CategoryScore{Score: 40},
		},
	})
	assert.Equal(t, "Acme", o.CompanyName)
	assert.Equal(t, NotAvailable, o.CompanyID)
	assert.Equal(t, NotAvailable, o.LastUpdated)

	assert.Equal(t, BandHigh, o.Overall.Band)
	assert.Equal(t, "error.main", o.Overall.Color)
	assert.Equal(t, Up, o.Overall.Trend.Direction)
	assert.Equal(t, "increasing by 5%", o.Overall.TrendText)

	assert.Equal(t, BandMedium, o.Environmental.Band)
	assert.Equal(t, "decreasing by 2.5%", o.Environmental.TrendText)
	assert.Equal(t, BandLow, o.Social.Band)
	assert.Equal(t, Flat, o.Social.Trend.Direction)
	assert.Equal(t, NotAvailable, o.Social.TrendText)
}
