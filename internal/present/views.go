package present

import "esgwatch/internal/domain"

// Score is one risk score with everything needed to draw it.
type Score struct {
	Value     float64   `json:"value"`
	Band      Band      `json:"band"`
	Color     string    `json:"color"`
	Trend     Indicator `json:"trend"`
	TrendText string    `json:"trendText"`
}

func NewScore(value float64, direction string, pct float64) Score {
	band := ScoreBand(value)
	return Score{
		Value:     value,
		Band:      band,
		Color:     BandColor(band),
		Trend:     TrendIndicator(direction),
		TrendText: TrendText(direction, pct),
	}
}

type Overview struct {
	CompanyID     string `json:"companyId"`
	CompanyName   string `json:"companyName"`
	LastUpdated   string `json:"lastUpdated"`
	Overall       Score  `json:"overall"`
	Environmental Score  `json:"environmental"`
	Social        Score  `json:"social"`
	Governance    Score  `json:"governance"`
}

func NewOverview(o domain.RiskOverview) Overview {
	cat := func(c domain.CategoryScore) Score { return NewScore(c.Score, c.Trend, c.ChangePercentage) }
	return Overview{
		CompanyID:     OrNA(o.CompanyID),
		CompanyName:   OrNA(o.CompanyName),
		LastUpdated:   OrNA(o.LastUpdated),
		Overall:       NewScore(o.OverallRiskScore, o.Trend.Direction, o.Trend.Percentage),
		Environmental: cat(o.Categories.Environmental),
		Social:        cat(o.Categories.Social),
		Governance:    cat(o.Categories.Governance),
	}
}

// IncidentRow is a timeline entry. SeverityRank is 0 for severities outside
// the taxonomy.
type IncidentRow struct {
	domain.Incident
	SeverityRank  int    `json:"severityRank"`
	SeverityColor string `json:"severityColor"`
}

type Timeline struct {
	Incidents []IncidentRow `json:"incidents"`

	// Total is the size of the unfiltered collection.
	Total    int             `json:"total"`
	Matched  int             `json:"matched"`
	Selected *IncidentDetail `json:"selected,omitempty"`
}

type SourceLink struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Publisher   string `json:"publisher"`
	PublishDate string `json:"publishDate"`
}

// NoSources is shown in place of an empty source list.
const NoSources = "None provided"

type IncidentDetail struct {
	ID                  string            `json:"id"`
	Title               string            `json:"title"`
	Date                string            `json:"date"`
	Category            string            `json:"category"`
	CategoryName        string            `json:"categoryName"`
	Subcategory         string            `json:"subcategory"`
	SubcategoryName     string            `json:"subcategoryName"`
	Severity            string            `json:"severity"`
	SeverityName        string            `json:"severityName"`
	SeverityColor       string            `json:"severityColor"`
	Description         string            `json:"description"`
	DetailedDescription string            `json:"detailedDescription"`
	Location            string            `json:"location"`
	RiskScoreImpact     domain.RiskImpact `json:"riskScoreImpact"`
	Sources             []SourceLink      `json:"sources"`
	SourcesNote         string            `json:"sourcesNote,omitempty"`
}

type CriticalRow struct {
	domain.CriticalIncident
	SeverityColor string `json:"severityColor"`
}
